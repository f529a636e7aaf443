package query

// Metadata 列表响应附带的查询能力说明
// 设计说明:这是端点能力的静态描述(由Schema声明推导),
// 不反映本次请求实际应用了哪些过滤条件;TotalCount由响应组装方填充
type Metadata struct {
	TotalCount       int64             `json:"total_count"`
	FilteringOptions map[string]string `json:"filtering_options"`
	SearchingOptions SearchingOptions  `json:"searching_options"`
	OrderingOptions  OrderingOptions   `json:"ordering_options"`
	Pagination       PaginationOptions `json:"pagination"`
}

// SearchingOptions 检索能力说明
type SearchingOptions struct {
	QueryParam      string   `json:"query_param"`
	AvailableFields []string `json:"available_fields"`
	SearchTypes     []string `json:"search_types"`
}

// OrderingOptions 排序能力说明
type OrderingOptions struct {
	QueryParam      string   `json:"query_param"`
	AvailableFields []string `json:"available_fields"`
	DefaultOrdering string   `json:"default_ordering"`
	Syntax          string   `json:"syntax"`
}

// PaginationOptions 分页规则说明
type PaginationOptions struct {
	PageQueryParam string `json:"page_query_param"`
	PageSize       int    `json:"page_size"`
	MaxPageSize    int    `json:"max_page_size"`
}

// Describe 生成端点的元数据块
func (s *Schema) Describe() Metadata {
	filtering := make(map[string]string, len(s.params))
	for _, p := range s.params {
		filtering[p.Key] = p.Description
	}

	searchFields := make([]string, 0, len(s.search.Fields))
	searchTypes := make([]string, 0, len(s.search.Fields))
	seenTypes := map[string]struct{}{}
	for _, f := range s.search.Fields {
		searchFields = appendUnique(searchFields, f.Field)
		if _, ok := seenTypes[f.Mode.String()]; !ok {
			seenTypes[f.Mode.String()] = struct{}{}
			searchTypes = append(searchTypes, f.Mode.String())
		}
	}

	defaultOrdering := ""
	for i, t := range s.ordering.Default {
		if i > 0 {
			defaultOrdering += ","
		}
		if t.Desc {
			defaultOrdering += "-"
		}
		defaultOrdering += t.Field
	}

	return Metadata{
		FilteringOptions: filtering,
		SearchingOptions: SearchingOptions{
			QueryParam:      s.search.Key,
			AvailableFields: searchFields,
			SearchTypes:     searchTypes,
		},
		OrderingOptions: OrderingOptions{
			QueryParam:      s.ordering.Key,
			AvailableFields: append([]string{}, s.ordering.Allowed...),
			DefaultOrdering: defaultOrdering,
			Syntax:          "Prefix with - for descending order",
		},
		Pagination: PaginationOptions{
			PageQueryParam: "page",
			PageSize:       s.page.DefaultSize,
			MaxPageSize:    s.page.MaxSize,
		},
	}
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
