package book

import (
	"context"
	"net/url"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

// recentYears recent_only开关的时间窗口(最近N年)
const recentYears = 10

// classicBefore classic_books开关的年份上界(早于该年份为经典)
const classicBefore = 1950

// bookSchema 图书列表端点的查询模式
// 启动期构建并校验,声明错误直接panic暴露
var bookSchema = query.MustSchema(
	[]query.Param{
		{Key: "title", Field: "title", Op: query.OpEq, Kind: query.KindString, Description: "按书名精确过滤"},
		{Key: "title__icontains", Field: "title", Op: query.OpContains, Kind: query.KindString, Description: "按书名子串过滤(大小写不敏感)"},
		{Key: "author_name", Field: "author_name", Op: query.OpContains, Kind: query.KindString, Description: "按作者名称子串过滤(大小写不敏感)"},
		{Key: "author", Field: "author_id", Op: query.OpEq, Kind: query.KindInt, Description: "按作者ID精确过滤"},
		{Key: "publication_year", Field: "publication_year", Op: query.OpEq, Kind: query.KindInt, Description: "按出版年份精确过滤"},
		{Key: "publication_year__gt", Field: "publication_year", Op: query.OpGt, Kind: query.KindInt, Description: "出版年份大于"},
		{Key: "publication_year__lt", Field: "publication_year", Op: query.OpLt, Kind: query.KindInt, Description: "出版年份小于"},
		{Key: "publication_year__gte", Field: "publication_year", Op: query.OpGte, Kind: query.KindInt, Description: "出版年份大于等于"},
		{Key: "publication_year__lte", Field: "publication_year", Op: query.OpLte, Kind: query.KindInt, Description: "出版年份小于等于"},
		{Key: "publication_year_range", Field: "publication_year", Op: query.OpRange, Kind: query.KindInt, Description: "出版年份闭区间(两值)"},
		{Key: "recent_only", Field: "recent", Op: query.OpFlag, Kind: query.KindInt, Description: "只看最近10年出版的图书"},
		{Key: "classic_books", Field: "classic", Op: query.OpFlag, Kind: query.KindInt, Description: "只看1950年以前出版的经典图书"},
	},
	query.SearchSpec{
		Fields: []query.SearchField{
			{Field: "title", Mode: query.ModeContains},
			{Field: "author_name", Mode: query.ModeContains},
			{Field: "title", Mode: query.ModeExact},
			{Field: "title", Mode: query.ModePrefix},
		},
	},
	query.OrderingSpec{
		Allowed: []string{"title", "publication_year", "author_name", "id"},
		Default: []query.OrderTerm{{Field: "title"}},
	},
	query.PageSpec{DefaultSize: 20, MaxSize: 100},
)

// BookItem 图书列表项DTO
// author为作者ID,author_name为冗余展示字段
type BookItem struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Author          uint   `json:"author"`
	AuthorName      string `json:"author_name"`
	CreatedAt       string `json:"created_at"`
}

// ListBooksResponse 图书列表响应DTO
type ListBooksResponse struct {
	Results  []BookItem
	Metadata query.Metadata
}

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 查询参数由bookSchema统一解析,未识别的参数忽略
// 2. recent/classic布尔开关在此解析为年份条件(时间相关,不下沉到仓储)
// 3. 响应附带查询能力元数据与过滤后总数
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, values url.Values) (*ListBooksResponse, error) {
	start := time.Now()

	q := bookSchema.Parse(values)
	resolveFlags(&q)

	books, total, err := uc.bookService.ListBooks(ctx, q)
	if err != nil {
		return nil, err
	}

	results := make([]BookItem, len(books))
	for i, b := range books {
		results[i] = toBookItem(b)
	}

	meta := bookSchema.Describe()
	meta.TotalCount = total

	metrics.ObserveHistogramVec(metrics.CatalogListDuration,
		map[string]string{"resource": "books"}, time.Since(start).Seconds())

	return &ListBooksResponse{
		Results:  results,
		Metadata: meta,
	}, nil
}

// resolveFlags 将布尔开关解析为年份过滤条件
// recent=true → publication_year >= 当前年份-10
// classic=true → publication_year < 1950
// 开关为false时不附加条件(与未传时行为一致)
func resolveFlags(q *query.Query) {
	if q.Flags["recent"] {
		q.Conditions = append(q.Conditions, query.Condition{
			Field: "publication_year",
			Op:    query.OpGte,
			Int:   time.Now().Year() - recentYears,
		})
	}
	if q.Flags["classic"] {
		q.Conditions = append(q.Conditions, query.Condition{
			Field: "publication_year",
			Op:    query.OpLt,
			Int:   classicBefore,
		})
	}
}

// toBookItem 领域实体 → 列表项DTO
func toBookItem(b *book.Book) BookItem {
	return BookItem{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Author:          b.AuthorID,
		AuthorName:      b.AuthorName,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
