package author

import (
	"context"
	"net/url"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

// authorSchema 作者列表端点的查询模式
// has_books开关由仓储层翻译为EXISTS/NOT EXISTS子查询
var authorSchema = query.MustSchema(
	[]query.Param{
		{Key: "name", Field: "name", Op: query.OpContains, Kind: query.KindString, Description: "按名称子串过滤(大小写不敏感)"},
		{Key: "has_books", Field: "has_books", Op: query.OpFlag, Kind: query.KindInt, Description: "true只看有著作的作者,false只看无著作的作者"},
	},
	query.SearchSpec{
		Fields: []query.SearchField{
			{Field: "name", Mode: query.ModeContains},
		},
	},
	query.OrderingSpec{
		Allowed: []string{"name", "id"},
		Default: []query.OrderTerm{{Field: "name"}},
	},
	query.PageSpec{DefaultSize: 20, MaxSize: 100},
)

// AuthorItem 作者列表项DTO
type AuthorItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ListAuthorsResponse 作者列表响应DTO
type ListAuthorsResponse struct {
	Results  []AuthorItem
	Metadata query.Metadata
}

// ListAuthorsUseCase 作者列表查询用例
type ListAuthorsUseCase struct {
	authorService author.Service
}

// NewListAuthorsUseCase 创建列表查询用例
func NewListAuthorsUseCase(authorService author.Service) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorService: authorService}
}

// Execute 执行列表查询用例
func (uc *ListAuthorsUseCase) Execute(ctx context.Context, values url.Values) (*ListAuthorsResponse, error) {
	start := time.Now()

	q := authorSchema.Parse(values)

	authors, total, err := uc.authorService.ListAuthors(ctx, q)
	if err != nil {
		return nil, err
	}

	results := make([]AuthorItem, len(authors))
	for i, a := range authors {
		results[i] = toAuthorItem(a)
	}

	meta := authorSchema.Describe()
	meta.TotalCount = total

	metrics.ObserveHistogramVec(metrics.CatalogListDuration,
		map[string]string{"resource": "authors"}, time.Since(start).Seconds())

	return &ListAuthorsResponse{
		Results:  results,
		Metadata: meta,
	}, nil
}

// toAuthorItem 领域实体 → 列表项DTO
func toAuthorItem(a *author.Author) AuthorItem {
	return AuthorItem{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
