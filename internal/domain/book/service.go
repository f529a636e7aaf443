package book

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/query"
)

// RelatedBooksLimit 详情端点related_books最多返回的条数
const RelatedBooksLimit = 5

// AuthorChecker 作者存在性校验接口
// 由author仓储实现,避免book领域直接依赖author领域
type AuthorChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service 图书领域服务接口
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// 1. 书名非空且不超过200字符
	// 2. 出版年份不晚于当前年份
	// 3. 引用的作者必须存在
	CreateBook(ctx context.Context, title string, publicationYear int, authorID uint) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// RelatedBooks 获取同作者的其他图书(最多RelatedBooksLimit条)
	RelatedBooks(ctx context.Context, b *Book) ([]*Book, error)

	// UpdateBook 部分更新图书,nil字段不修改
	UpdateBook(ctx context.Context, id uint, title *string, publicationYear *int, authorID *uint) (*Book, error)

	// DeleteBook 删除图书,返回删除前的快照
	DeleteBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 按查询管线检索图书列表
	ListBooks(ctx context.Context, q query.Query) ([]*Book, int64, error)
}

type service struct {
	repo    Repository
	authors AuthorChecker
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors AuthorChecker) Service {
	return &service{
		repo:    repo,
		authors: authors,
	}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title string, publicationYear int, authorID uint) (*Book, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateYear(publicationYear); err != nil {
		return nil, err
	}
	if err := s.checkAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	book := NewBook(title, publicationYear, authorID)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	// 重新加载以填充AuthorName
	return s.repo.FindByID(ctx, book.ID)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// RelatedBooks 获取同作者的其他图书
func (s *service) RelatedBooks(ctx context.Context, b *Book) ([]*Book, error) {
	return s.repo.ListByAuthor(ctx, b.AuthorID, b.ID, RelatedBooksLimit)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, title *string, publicationYear *int, authorID *uint) (*Book, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if err := validateTitle(trimmed); err != nil {
			return nil, err
		}
		title = &trimmed
	}
	if publicationYear != nil {
		if err := validateYear(*publicationYear); err != nil {
			return nil, err
		}
	}
	if authorID != nil {
		if err := s.checkAuthor(ctx, *authorID); err != nil {
			return nil, err
		}
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Apply(title, publicationYear, authorID)
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// DeleteBook 删除图书,返回删除前的快照
func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return book, nil
}

// ListBooks 按查询管线检索图书列表
func (s *service) ListBooks(ctx context.Context, q query.Query) ([]*Book, int64, error) {
	return s.repo.List(ctx, q)
}

// checkAuthor 校验作者引用
func (s *service) checkAuthor(ctx context.Context, authorID uint) error {
	ok, err := s.authors.Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthorRef
	}
	return nil
}

// validateTitle 书名校验
func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

// validateYear 出版年份校验:不得晚于校验时的当前年份
func validateYear(year int) error {
	currentYear := time.Now().Year()
	if year > currentYear {
		return FutureYearError(currentYear)
	}
	return nil
}
