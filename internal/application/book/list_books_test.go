package book

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// captureService 记录ListBooks收到的查询,其余方法不使用
type captureService struct {
	book.Service
	lastQuery query.Query
	books     []*book.Book
	total     int64
}

func (s *captureService) ListBooks(ctx context.Context, q query.Query) ([]*book.Book, int64, error) {
	s.lastQuery = q
	return s.books, s.total, nil
}

func findCondition(conds []query.Condition, field string, op query.Operator) (query.Condition, bool) {
	for _, c := range conds {
		if c.Field == field && c.Op == op {
			return c, true
		}
	}
	return query.Condition{}, false
}

func TestListBooksFlags(t *testing.T) {
	t.Run("recent_only解析为年份下界", func(t *testing.T) {
		svc := &captureService{}
		uc := NewListBooksUseCase(svc)

		_, err := uc.Execute(context.Background(), url.Values{"recent_only": {"true"}})
		require.NoError(t, err)

		cond, ok := findCondition(svc.lastQuery.Conditions, "publication_year", query.OpGte)
		require.True(t, ok, "缺少publication_year >=条件")
		assert.Equal(t, time.Now().Year()-recentYears, cond.Int)
	})

	t.Run("classic_books解析为年份上界", func(t *testing.T) {
		svc := &captureService{}
		uc := NewListBooksUseCase(svc)

		_, err := uc.Execute(context.Background(), url.Values{"classic_books": {"true"}})
		require.NoError(t, err)

		cond, ok := findCondition(svc.lastQuery.Conditions, "publication_year", query.OpLt)
		require.True(t, ok, "缺少publication_year <条件")
		assert.Equal(t, classicBefore, cond.Int)
	})

	t.Run("开关为false时不附加条件", func(t *testing.T) {
		svc := &captureService{}
		uc := NewListBooksUseCase(svc)

		_, err := uc.Execute(context.Background(), url.Values{
			"recent_only":   {"false"},
			"classic_books": {"false"},
		})
		require.NoError(t, err)
		assert.Empty(t, svc.lastQuery.Conditions)
	})
}

func TestListBooksMetadata(t *testing.T) {
	now := time.Now()
	svc := &captureService{
		books: []*book.Book{
			{ID: 1, Title: "三体", PublicationYear: 2008, AuthorID: 1, AuthorName: "刘慈欣", CreatedAt: now},
		},
		total: 42,
	}
	uc := NewListBooksUseCase(svc)

	resp, err := uc.Execute(context.Background(), url.Values{"page_size": {"1"}})
	require.NoError(t, err)

	// total_count为过滤后的总数,不是当前页条数
	assert.Equal(t, int64(42), resp.Metadata.TotalCount)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "三体", resp.Results[0].Title)
	assert.Equal(t, uint(1), resp.Results[0].Author)
	assert.Equal(t, now.Format("2006-01-02 15:04:05"), resp.Results[0].CreatedAt)

	// 元数据描述端点全部查询参数
	assert.Contains(t, resp.Metadata.FilteringOptions, "publication_year_range")
	assert.Equal(t, "title", resp.Metadata.OrderingOptions.DefaultOrdering)
	assert.Equal(t, []string{"title", "publication_year", "author_name", "id"},
		resp.Metadata.OrderingOptions.AvailableFields)
}

func TestListBooksOrderingByAuthorName(t *testing.T) {
	svc := &captureService{}
	uc := NewListBooksUseCase(svc)

	_, err := uc.Execute(context.Background(), url.Values{"ordering": {"author_name,-publication_year"}})
	require.NoError(t, err)

	require.Len(t, svc.lastQuery.Order, 3)
	assert.Equal(t, query.OrderTerm{Field: "author_name"}, svc.lastQuery.Order[0])
	assert.Equal(t, query.OrderTerm{Field: "publication_year", Desc: true}, svc.lastQuery.Order[1])
	assert.Equal(t, query.OrderTerm{Field: "id"}, svc.lastQuery.Order[2])
}

func TestListBooksQueryDefaults(t *testing.T) {
	svc := &captureService{}
	uc := NewListBooksUseCase(svc)

	_, err := uc.Execute(context.Background(), url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.lastQuery.Page)
	assert.Equal(t, 20, svc.lastQuery.PageSize)
	// 默认排序title升序,附带id做tie-break
	require.NotEmpty(t, svc.lastQuery.Order)
	assert.Equal(t, "title", svc.lastQuery.Order[0].Field)
	assert.False(t, svc.lastQuery.Order[0].Desc)
}
