package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema 构造一个与图书列表端点同构的测试Schema
func testSchema(t *testing.T) *Schema {
	t.Helper()

	s, err := NewSchema(
		[]Param{
			{Key: "title", Field: "title", Op: OpEq, Kind: KindString, Description: "书名精确匹配"},
			{Key: "title__icontains", Field: "title", Op: OpContains, Kind: KindString},
			{Key: "author_name", Field: "author_name", Op: OpContains, Kind: KindString},
			{Key: "author", Field: "author_id", Op: OpEq, Kind: KindInt},
			{Key: "publication_year", Field: "publication_year", Op: OpEq, Kind: KindInt},
			{Key: "publication_year__gt", Field: "publication_year", Op: OpGt, Kind: KindInt},
			{Key: "publication_year__lt", Field: "publication_year", Op: OpLt, Kind: KindInt},
			{Key: "publication_year__gte", Field: "publication_year", Op: OpGte, Kind: KindInt},
			{Key: "publication_year__lte", Field: "publication_year", Op: OpLte, Kind: KindInt},
			{Key: "publication_year_range", Field: "publication_year", Op: OpRange, Kind: KindInt},
			{Key: "recent_only", Field: "recent", Op: OpFlag},
			{Key: "classic_books", Field: "classic", Op: OpFlag},
		},
		SearchSpec{Fields: []SearchField{
			{Field: "title", Mode: ModeContains},
			{Field: "author_name", Mode: ModeContains},
			{Field: "title", Mode: ModeExact},
			{Field: "title", Mode: ModePrefix},
		}},
		OrderingSpec{
			Allowed: []string{"title", "publication_year", "author_name", "id"},
			Default: []OrderTerm{{Field: "title"}},
		},
		PageSpec{DefaultSize: 20, MaxSize: 100},
	)
	require.NoError(t, err)
	return s
}

func parse(t *testing.T, s *Schema, rawQuery string) Query {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return s.Parse(values)
}

func TestNewSchema_Validation(t *testing.T) {
	ordering := OrderingSpec{Allowed: []string{"id"}}
	page := PageSpec{}

	t.Run("合法声明", func(t *testing.T) {
		s, err := NewSchema(
			[]Param{{Key: "name", Field: "name", Op: OpContains, Kind: KindString}},
			SearchSpec{}, ordering, page,
		)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("参数Key重复", func(t *testing.T) {
		_, err := NewSchema(
			[]Param{
				{Key: "name", Field: "name", Op: OpEq, Kind: KindString},
				{Key: "name", Field: "name", Op: OpContains, Kind: KindString},
			},
			SearchSpec{}, ordering, page,
		)
		assert.Error(t, err)
	})

	t.Run("数值操作符作用于字符串字段", func(t *testing.T) {
		_, err := NewSchema(
			[]Param{{Key: "year__gt", Field: "year", Op: OpGt, Kind: KindString}},
			SearchSpec{}, ordering, page,
		)
		assert.Error(t, err)
	})

	t.Run("子串操作符作用于整数字段", func(t *testing.T) {
		_, err := NewSchema(
			[]Param{{Key: "year", Field: "year", Op: OpContains, Kind: KindInt}},
			SearchSpec{}, ordering, page,
		)
		assert.Error(t, err)
	})

	t.Run("排序白名单为空", func(t *testing.T) {
		_, err := NewSchema(nil, SearchSpec{}, OrderingSpec{}, page)
		assert.Error(t, err)
	})

	t.Run("默认排序字段不在白名单", func(t *testing.T) {
		_, err := NewSchema(nil, SearchSpec{},
			OrderingSpec{Allowed: []string{"id"}, Default: []OrderTerm{{Field: "name"}}},
			page,
		)
		assert.Error(t, err)
	})
}

func TestParse_Filters(t *testing.T) {
	s := testSchema(t)

	t.Run("字符串精确与子串匹配", func(t *testing.T) {
		q := parse(t, s, "title=1984&author_name=orwell")
		require.Len(t, q.Conditions, 2)
		assert.Equal(t, Condition{Field: "title", Op: OpEq, Str: "1984"}, q.Conditions[0])
		assert.Equal(t, Condition{Field: "author_name", Op: OpContains, Str: "orwell"}, q.Conditions[1])
	})

	t.Run("数值比较操作符", func(t *testing.T) {
		q := parse(t, s, "publication_year__gt=1990&publication_year__lte=2000&author=3")
		require.Len(t, q.Conditions, 3)
		assert.Contains(t, q.Conditions, Condition{Field: "publication_year", Op: OpGt, Int: 1990})
		assert.Contains(t, q.Conditions, Condition{Field: "publication_year", Op: OpLte, Int: 2000})
		assert.Contains(t, q.Conditions, Condition{Field: "author_id", Op: OpEq, Int: 3})
	})

	t.Run("冲突的过滤条件同样AND组合", func(t *testing.T) {
		q := parse(t, s, "publication_year__gt=2000&publication_year__lt=1990")
		assert.Len(t, q.Conditions, 2)
	})

	t.Run("区间参数出现两次", func(t *testing.T) {
		q := parse(t, s, "publication_year_range=1990&publication_year_range=2000")
		require.Len(t, q.Conditions, 1)
		assert.Equal(t, Condition{Field: "publication_year", Op: OpRange, Int: 1990, Int2: 2000}, q.Conditions[0])
	})

	t.Run("区间单值逗号分隔且自动纠正上下界", func(t *testing.T) {
		q := parse(t, s, "publication_year_range=2000,1990")
		require.Len(t, q.Conditions, 1)
		assert.Equal(t, 1990, q.Conditions[0].Int)
		assert.Equal(t, 2000, q.Conditions[0].Int2)
	})

	t.Run("数值非法时跳过该过滤项而非报错", func(t *testing.T) {
		q := parse(t, s, "publication_year__gt=abc&title=1984")
		require.Len(t, q.Conditions, 1)
		assert.Equal(t, "title", q.Conditions[0].Field)
	})

	t.Run("未识别的Key忽略", func(t *testing.T) {
		q := parse(t, s, "no_such_filter=1&isbn=978")
		assert.Empty(t, q.Conditions)
	})

	t.Run("空值跳过", func(t *testing.T) {
		q := parse(t, s, "title=")
		assert.Empty(t, q.Conditions)
	})
}

func TestParse_Flags(t *testing.T) {
	s := testSchema(t)

	t.Run("布尔开关解析", func(t *testing.T) {
		q := parse(t, s, "recent_only=true&classic_books=false")
		assert.Equal(t, map[string]bool{"recent": true, "classic": false}, q.Flags)
	})

	t.Run("布尔值非法时跳过", func(t *testing.T) {
		q := parse(t, s, "recent_only=maybe")
		assert.Empty(t, q.Flags)
	})
}

func TestParse_Search(t *testing.T) {
	s := testSchema(t)

	q := parse(t, s, "search=harry")
	assert.Equal(t, "harry", q.Search)
	assert.Len(t, q.SearchFields, 4)

	q = parse(t, s, "title=x")
	assert.Empty(t, q.Search)
}

func TestParse_Ordering(t *testing.T) {
	s := testSchema(t)

	t.Run("单字段降序并追加tie-break", func(t *testing.T) {
		q := parse(t, s, "ordering=-publication_year")
		require.Len(t, q.Order, 2)
		assert.Equal(t, OrderTerm{Field: "publication_year", Desc: true}, q.Order[0])
		assert.Equal(t, OrderTerm{Field: "id"}, q.Order[1])
	})

	t.Run("多字段排序", func(t *testing.T) {
		q := parse(t, s, "ordering=author_name,-publication_year")
		require.Len(t, q.Order, 3)
		assert.Equal(t, "author_name", q.Order[0].Field)
		assert.Equal(t, "publication_year", q.Order[1].Field)
		assert.True(t, q.Order[1].Desc)
		assert.Equal(t, "id", q.Order[2].Field)
	})

	t.Run("未知字段静默丢弃", func(t *testing.T) {
		q := parse(t, s, "ordering=price,-publication_year")
		require.Len(t, q.Order, 2)
		assert.Equal(t, "publication_year", q.Order[0].Field)
	})

	t.Run("全部未知时回退默认排序", func(t *testing.T) {
		q := parse(t, s, "ordering=price,stock")
		require.Len(t, q.Order, 2)
		assert.Equal(t, OrderTerm{Field: "title"}, q.Order[0])
		assert.Equal(t, OrderTerm{Field: "id"}, q.Order[1])
	})

	t.Run("显式按id排序时不重复追加", func(t *testing.T) {
		q := parse(t, s, "ordering=-id")
		require.Len(t, q.Order, 1)
		assert.Equal(t, OrderTerm{Field: "id", Desc: true}, q.Order[0])
	})

	t.Run("缺省时使用默认排序", func(t *testing.T) {
		q := parse(t, s, "")
		require.Len(t, q.Order, 2)
		assert.Equal(t, "title", q.Order[0].Field)
	})
}

func TestParse_Pagination(t *testing.T) {
	s := testSchema(t)

	t.Run("默认值", func(t *testing.T) {
		q := parse(t, s, "")
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 20, q.PageSize)
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("指定页码与页大小", func(t *testing.T) {
		q := parse(t, s, "page=3&page_size=10")
		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 10, q.PageSize)
		assert.Equal(t, 20, q.Offset())
	})

	t.Run("页大小超出上限时截断", func(t *testing.T) {
		q := parse(t, s, "page_size=500")
		assert.Equal(t, 100, q.PageSize)
	})

	t.Run("非法页码回退为1", func(t *testing.T) {
		q := parse(t, s, "page=0")
		assert.Equal(t, 1, q.Page)

		q = parse(t, s, "page=abc")
		assert.Equal(t, 1, q.Page)
	})
}

func TestDescribe(t *testing.T) {
	s := testSchema(t)
	md := s.Describe()

	assert.Contains(t, md.FilteringOptions, "publication_year__gt")
	assert.Contains(t, md.FilteringOptions, "recent_only")
	assert.Equal(t, "书名精确匹配", md.FilteringOptions["title"])

	assert.Equal(t, "search", md.SearchingOptions.QueryParam)
	assert.Equal(t, []string{"title", "author_name"}, md.SearchingOptions.AvailableFields)
	assert.ElementsMatch(t, []string{"contains", "exact", "starts_with"}, md.SearchingOptions.SearchTypes)

	assert.Equal(t, "title", md.OrderingOptions.DefaultOrdering)
	assert.Equal(t, []string{"title", "publication_year", "author_name", "id"}, md.OrderingOptions.AvailableFields)
	assert.Equal(t, "Prefix with - for descending order", md.OrderingOptions.Syntax)

	assert.Equal(t, 20, md.Pagination.PageSize)
	assert.Equal(t, 100, md.Pagination.MaxPageSize)
}
