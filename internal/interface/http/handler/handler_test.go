package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// memStore 内存存储,作者与图书共用,便于校验外键引用与级联删除
type memStore struct {
	nextAuthorID uint
	nextBookID   uint
	authors      map[uint]*author.Author
	books        map[uint]*book.Book
}

func newMemStore() *memStore {
	return &memStore{
		authors: make(map[uint]*author.Author),
		books:   make(map[uint]*book.Book),
	}
}

func (s *memStore) addAuthor(name string) *author.Author {
	s.nextAuthorID++
	a := author.NewAuthor(name)
	a.ID = s.nextAuthorID
	s.authors[a.ID] = a
	return a
}

func (s *memStore) addBook(title string, year int, authorID uint) *book.Book {
	s.nextBookID++
	b := book.NewBook(title, year, authorID)
	b.ID = s.nextBookID
	s.books[b.ID] = b
	return b
}

func (s *memStore) bookIDs() []uint {
	ids := make([]uint, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// memBookRepo 内存图书仓储
type memBookRepo struct {
	store *memStore
}

func (r *memBookRepo) Create(ctx context.Context, b *book.Book) error {
	if _, ok := r.store.authors[b.AuthorID]; !ok {
		return book.ErrAuthorRef
	}
	for _, existing := range r.store.books {
		if existing.Title == b.Title && existing.AuthorID == b.AuthorID {
			return book.ErrDuplicateTitleAuthor
		}
	}
	r.store.nextBookID++
	b.ID = r.store.nextBookID
	stored := *b
	r.store.books[b.ID] = &stored
	return nil
}

func (r *memBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	found := *b
	if a, ok := r.store.authors[b.AuthorID]; ok {
		found.AuthorName = a.Name
	}
	return &found, nil
}

func (r *memBookRepo) Update(ctx context.Context, b *book.Book) error {
	if _, ok := r.store.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	if _, ok := r.store.authors[b.AuthorID]; !ok {
		return book.ErrAuthorRef
	}
	for _, existing := range r.store.books {
		if existing.ID != b.ID && existing.Title == b.Title && existing.AuthorID == b.AuthorID {
			return book.ErrDuplicateTitleAuthor
		}
	}
	stored := *b
	r.store.books[b.ID] = &stored
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.store.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.store.books, id)
	return nil
}

func (r *memBookRepo) List(ctx context.Context, q query.Query) ([]*book.Book, int64, error) {
	var result []*book.Book
	for _, id := range r.store.bookIDs() {
		b, _ := r.FindByID(ctx, id)
		result = append(result, b)
	}
	return result, int64(len(result)), nil
}

func (r *memBookRepo) ListByAuthor(ctx context.Context, authorID, excludeID uint, limit int) ([]*book.Book, error) {
	var result []*book.Book
	for _, id := range r.store.bookIDs() {
		b := r.store.books[id]
		if b.AuthorID != authorID || b.ID == excludeID {
			continue
		}
		found, _ := r.FindByID(ctx, id)
		result = append(result, found)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *memBookRepo) DeleteByAuthor(ctx context.Context, authorID uint) error {
	for id, b := range r.store.books {
		if b.AuthorID == authorID {
			delete(r.store.books, id)
		}
	}
	return nil
}

// memAuthorRepo 内存作者仓储
type memAuthorRepo struct {
	store *memStore
}

func (r *memAuthorRepo) Create(ctx context.Context, a *author.Author) error {
	r.store.nextAuthorID++
	a.ID = r.store.nextAuthorID
	stored := *a
	r.store.authors[a.ID] = &stored
	return nil
}

func (r *memAuthorRepo) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	a, ok := r.store.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	found := *a
	return &found, nil
}

func (r *memAuthorRepo) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.store.authors[id]
	return ok, nil
}

func (r *memAuthorRepo) Update(ctx context.Context, a *author.Author) error {
	if _, ok := r.store.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	stored := *a
	r.store.authors[a.ID] = &stored
	return nil
}

func (r *memAuthorRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.store.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.store.authors, id)
	return nil
}

func (r *memAuthorRepo) List(ctx context.Context, q query.Query) ([]*author.Author, int64, error) {
	ids := make([]uint, 0, len(r.store.authors))
	for id := range r.store.authors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []*author.Author
	for _, id := range ids {
		a := *r.store.authors[id]
		result = append(result, &a)
	}
	return result, int64(len(result)), nil
}

func (r *memAuthorRepo) Stats(ctx context.Context, id uint) (*author.Stats, error) {
	if _, ok := r.store.authors[id]; !ok {
		return nil, author.ErrAuthorNotFound
	}

	var total int64
	yearSet := make(map[int]struct{})
	for _, b := range r.store.books {
		if b.AuthorID == id {
			total++
			yearSet[b.PublicationYear] = struct{}{}
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	return &author.Stats{TotalBooks: total, PublicationYears: years}, nil
}

// memTxManager 内存事务管理器,直接执行函数(无回滚语义)
type memTxManager struct{}

func (memTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// testEnv 测试环境:完整的handler → use case → service → 内存仓储调用链
type testEnv struct {
	router     *gin.Engine
	store      *memStore
	jwtManager *jwt.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	bookRepo := &memBookRepo{store: store}
	authorRepo := &memAuthorRepo{store: store}

	bookService := book.NewService(bookRepo, authorRepo)
	authorService := author.NewService(authorRepo)

	events := event.NopPublisher{}

	bookHandler := NewBookHandler(
		appbook.NewListBooksUseCase(bookService),
		appbook.NewGetBookUseCase(bookService),
		appbook.NewCreateBookUseCase(bookService, events),
		appbook.NewUpdateBookUseCase(bookService, events),
		appbook.NewDeleteBookUseCase(bookService, events),
	)
	authorHandler := NewAuthorHandler(
		appauthor.NewListAuthorsUseCase(authorService),
		appauthor.NewGetAuthorUseCase(authorService),
		appauthor.NewCreateAuthorUseCase(authorService, events),
		appauthor.NewUpdateAuthorUseCase(authorService, events),
		appauthor.NewDeleteAuthorUseCase(authorService, authorRepo, bookRepo, memTxManager{}, events),
	)

	jwtManager := jwt.NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)
	authMW := middleware.NewAuthMiddleware(jwtManager, nil)

	r := gin.New()
	api := r.Group("/api/v1")

	books := api.Group("/books")
	{
		books.GET("", bookHandler.List)
		books.GET("/:id", bookHandler.Get)
		books.POST("/create", authMW.RequireAuth(), bookHandler.Create)
		books.PUT("/update/:id", authMW.RequireAuth(), bookHandler.Update)
		books.PATCH("/update/:id", authMW.RequireAuth(), bookHandler.Update)
		books.DELETE("/delete/:id", authMW.RequireAuth(), bookHandler.Delete)
	}

	authors := api.Group("/authors")
	{
		authors.GET("", authorHandler.List)
		authors.GET("/:id", authorHandler.Get)
		authors.POST("/create", authMW.RequireAuth(), authorHandler.Create)
		authors.PUT("/update/:id", authMW.RequireAuth(), authorHandler.Update)
		authors.DELETE("/delete/:id", authMW.RequireAuth(), authorHandler.Delete)
	}

	return &testEnv{
		router:     r,
		store:      store,
		jwtManager: jwtManager,
	}
}

// authToken 签发测试用Access Token
func (e *testEnv) authToken(t *testing.T) string {
	t.Helper()
	pair, err := e.jwtManager.GenerateToken(1, "tester@example.com", "测试用户")
	require.NoError(t, err)
	return pair.AccessToken
}

// doRequest 执行请求并解析JSON响应
func (e *testEnv) doRequest(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	resp := make(map[string]interface{})
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
			"响应不是合法JSON: %s", w.Body.String())
	}
	return w, resp
}
