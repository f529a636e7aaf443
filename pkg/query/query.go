// Package query 实现列表端点的查询解析管线
//
// 设计说明:
// 1. 每个列表端点在启动期声明一个Schema:可识别的过滤参数(类型化操作符枚举)、
//    检索字段(匹配模式静态配置)、排序白名单、分页规则
// 2. NewSchema在启动期校验声明(重复Key、操作符与字段类型不匹配等),
//    避免按请求做字符串分发带来的注入/拼写错误
// 3. Schema.Parse按请求解析查询参数:未识别的Key忽略,数值非法的过滤项跳过,
//    各过滤组之间为AND语义,检索字段之间为OR语义
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Operator 过滤操作符(类型化枚举)
type Operator int

const (
	// OpEq 精确匹配
	OpEq Operator = iota
	// OpContains 子串匹配(大小写不敏感)
	OpContains
	// OpPrefix 前缀匹配(大小写不敏感)
	OpPrefix
	// OpGt 大于
	OpGt
	// OpLt 小于
	OpLt
	// OpGte 大于等于
	OpGte
	// OpLte 小于等于
	OpLte
	// OpRange 两值闭区间(参数出现两次,或单值内以逗号分隔)
	OpRange
	// OpFlag 布尔开关过滤,具体语义由调用方解释(如recent/classic/has_books)
	OpFlag
)

// String 操作符名称(用于校验错误信息与元数据)
func (op Operator) String() string {
	switch op {
	case OpEq:
		return "eq"
	case OpContains:
		return "contains"
	case OpPrefix:
		return "prefix"
	case OpGt:
		return "gt"
	case OpLt:
		return "lt"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	case OpRange:
		return "range"
	case OpFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// numeric 该操作符是否要求整数值
func (op Operator) numeric() bool {
	switch op {
	case OpGt, OpLt, OpGte, OpLte, OpRange:
		return true
	}
	return false
}

// Kind 字段值类型
type Kind int

const (
	// KindString 字符串字段
	KindString Kind = iota
	// KindInt 整数字段
	KindInt
)

// Param 一个可识别的查询参数声明
// Key是HTTP查询参数名,Field是逻辑字段名(仓储层负责映射到列名)
type Param struct {
	Key         string
	Field       string
	Op          Operator
	Kind        Kind
	Description string // 元数据中展示的说明
}

// Condition 解析后的单个过滤谓词
// 各Condition之间恒为AND组合(冲突的过滤条件同样AND,可能得到空集)
type Condition struct {
	Field string
	Op    Operator
	Str   string // 字符串操作符的值
	Int   int    // 数值操作符的值(OpRange时为下界)
	Int2  int    // OpRange的上界
}

// MatchMode 检索字段的匹配模式(端点静态配置,调用方不可选择)
type MatchMode int

const (
	// ModeContains 子串匹配
	ModeContains MatchMode = iota
	// ModeExact 精确匹配
	ModeExact
	// ModePrefix 前缀匹配
	ModePrefix
)

// String 匹配模式名称
func (m MatchMode) String() string {
	switch m {
	case ModeContains:
		return "contains"
	case ModeExact:
		return "exact"
	case ModePrefix:
		return "starts_with"
	default:
		return "unknown"
	}
}

// SearchField 参与自由文本检索的字段
type SearchField struct {
	Field string
	Mode  MatchMode
}

// SearchSpec 自由文本检索配置
// 单个检索值应用到所有Fields,字段之间OR,与过滤条件AND,大小写不敏感
type SearchSpec struct {
	Key    string // 查询参数名,空则默认"search"
	Fields []SearchField
}

// OrderTerm 单个排序项
type OrderTerm struct {
	Field string
	Desc  bool
}

// OrderingSpec 排序配置
// 表达式中的未知字段静默丢弃;校验后为空时回退到Default;
// 恒定追加TieBreak升序作为稳定次级键,保证分页结果确定性
type OrderingSpec struct {
	Key      string      // 查询参数名,空则默认"ordering"
	Allowed  []string    // 可排序字段白名单
	Default  []OrderTerm // 兜底排序
	TieBreak string      // 稳定性次级键,空则默认"id"
}

// PageSpec 分页配置
type PageSpec struct {
	DefaultSize int // 默认每页数量,0则取20
	MaxSize     int // 每页上限,0则取100
}

// Query 一次请求解析出的完整查询
type Query struct {
	Conditions   []Condition
	Flags        map[string]bool // OpFlag参数:字段名 → 解析出的布尔值
	Search       string          // 空串表示未检索
	SearchFields []SearchField   // 来自Schema,便于仓储层直接翻译
	Order        []OrderTerm     // 已包含tie-break
	Page         int             // 从1开始
	PageSize     int
}

// Offset 转换为存储层偏移量
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Schema 一个列表端点的查询模式
// 通过NewSchema在启动期构建并校验,之后只读、并发安全
type Schema struct {
	params   []Param
	search   SearchSpec
	ordering OrderingSpec
	page     PageSpec
}

// NewSchema 构建并校验查询模式
// 校验规则:
// - 参数Key/Field非空且Key不重复
// - 数值操作符只允许KindInt字段;contains/prefix只允许KindString字段
// - 排序白名单非空,Default中的字段必须在白名单内
func NewSchema(params []Param, search SearchSpec, ordering OrderingSpec, page PageSpec) (*Schema, error) {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Key == "" || p.Field == "" {
			return nil, fmt.Errorf("query: 参数Key/Field不能为空: %+v", p)
		}
		if _, dup := seen[p.Key]; dup {
			return nil, fmt.Errorf("query: 参数Key重复: %s", p.Key)
		}
		seen[p.Key] = struct{}{}

		if p.Op.numeric() && p.Kind != KindInt {
			return nil, fmt.Errorf("query: 操作符%s要求整数字段: %s", p.Op, p.Key)
		}
		if (p.Op == OpContains || p.Op == OpPrefix) && p.Kind != KindString {
			return nil, fmt.Errorf("query: 操作符%s要求字符串字段: %s", p.Op, p.Key)
		}
	}

	if search.Key == "" {
		search.Key = "search"
	}
	for _, f := range search.Fields {
		if f.Field == "" {
			return nil, fmt.Errorf("query: 检索字段名不能为空")
		}
	}

	if ordering.Key == "" {
		ordering.Key = "ordering"
	}
	if ordering.TieBreak == "" {
		ordering.TieBreak = "id"
	}
	if len(ordering.Allowed) == 0 {
		return nil, fmt.Errorf("query: 排序白名单不能为空")
	}
	allowed := make(map[string]struct{}, len(ordering.Allowed))
	for _, f := range ordering.Allowed {
		allowed[f] = struct{}{}
	}
	for _, d := range ordering.Default {
		if _, ok := allowed[d.Field]; !ok {
			return nil, fmt.Errorf("query: 默认排序字段不在白名单内: %s", d.Field)
		}
	}

	if page.DefaultSize <= 0 {
		page.DefaultSize = 20
	}
	if page.MaxSize <= 0 {
		page.MaxSize = 100
	}

	return &Schema{
		params:   params,
		search:   search,
		ordering: ordering,
		page:     page,
	}, nil
}

// MustSchema 构建查询模式,声明非法时panic
// 用途:包级变量初始化(声明错误属于编程错误,应在启动期暴露)
func MustSchema(params []Param, search SearchSpec, ordering OrderingSpec, page PageSpec) *Schema {
	s, err := NewSchema(params, search, ordering, page)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse 解析一次请求的查询参数
// 容错策略(按请求不报错):
// - 未识别的Key忽略
// - 数值操作符的值无法解析时,跳过该过滤项
// - 布尔开关的值无法解析时,跳过该开关
func (s *Schema) Parse(values url.Values) Query {
	q := Query{
		Flags:        map[string]bool{},
		SearchFields: s.search.Fields,
	}

	// 1. 过滤条件
	for _, p := range s.params {
		raw, ok := values[p.Key]
		if !ok || len(raw) == 0 {
			continue
		}

		switch {
		case p.Op == OpFlag:
			v, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
			if err != nil {
				continue
			}
			q.Flags[p.Field] = v

		case p.Op == OpRange:
			lo, hi, ok := parseRange(raw)
			if !ok {
				continue
			}
			q.Conditions = append(q.Conditions, Condition{Field: p.Field, Op: OpRange, Int: lo, Int2: hi})

		case p.Op.numeric() || (p.Op == OpEq && p.Kind == KindInt):
			n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
			if err != nil {
				continue
			}
			q.Conditions = append(q.Conditions, Condition{Field: p.Field, Op: p.Op, Int: n})

		default:
			v := strings.TrimSpace(raw[0])
			if v == "" {
				continue
			}
			q.Conditions = append(q.Conditions, Condition{Field: p.Field, Op: p.Op, Str: v})
		}
	}

	// 2. 自由文本检索
	q.Search = strings.TrimSpace(values.Get(s.search.Key))

	// 3. 排序
	q.Order = s.parseOrdering(values.Get(s.ordering.Key))

	// 4. 分页
	q.Page, q.PageSize = s.parsePage(values)

	return q
}

// parseOrdering 解析排序表达式(如"-publication_year,title")
// 未知字段静默丢弃;结果为空时回退默认排序;恒定追加tie-break升序
func (s *Schema) parseOrdering(expr string) []OrderTerm {
	allowed := make(map[string]struct{}, len(s.ordering.Allowed))
	for _, f := range s.ordering.Allowed {
		allowed[f] = struct{}{}
	}

	var terms []OrderTerm
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if _, ok := allowed[field]; !ok {
			continue
		}
		terms = append(terms, OrderTerm{Field: field, Desc: desc})
	}

	if len(terms) == 0 {
		terms = append(terms, s.ordering.Default...)
	}

	// 稳定次级键:排序键相等时按标识符升序,保证分页确定性
	hasTieBreak := false
	for _, t := range terms {
		if t.Field == s.ordering.TieBreak {
			hasTieBreak = true
			break
		}
	}
	if !hasTieBreak {
		terms = append(terms, OrderTerm{Field: s.ordering.TieBreak})
	}

	return terms
}

// parsePage 解析分页参数
// page非法或缺失时取1;page_size非法时取默认值,超出上限时取上限
// 超出总页数的page不在此处处理:偏移超出后存储层自然返回空页(策略:空页而非报错)
func (s *Schema) parsePage(values url.Values) (page, size int) {
	page = 1
	if v := values.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}

	size = s.page.DefaultSize
	if v := values.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			size = n
		}
	}
	if size > s.page.MaxSize {
		size = s.page.MaxSize
	}

	return page, size
}

// parseRange 解析两值区间
// 支持参数出现两次(?year_range=1990&year_range=2000)或单值逗号分隔(1990,2000)
func parseRange(raw []string) (lo, hi int, ok bool) {
	var parts []string
	if len(raw) >= 2 {
		parts = []string{raw[0], raw[1]}
	} else {
		parts = strings.SplitN(raw[0], ",", 2)
		if len(parts) != 2 {
			return 0, 0, false
		}
	}

	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}
