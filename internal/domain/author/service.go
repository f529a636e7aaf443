package author

import (
	"context"
	"strings"

	"github.com/xiebiao/bookcatalog/pkg/query"
)

// Service 作者领域服务接口
type Service interface {
	// CreateAuthor 创建作者
	// 业务规则:名称非空且不超过200字符
	CreateAuthor(ctx context.Context, name string) (*Author, error)

	// GetAuthor 根据ID获取作者
	GetAuthor(ctx context.Context, id uint) (*Author, error)

	// GetAuthorStats 获取作者统计信息(详情端点附带)
	GetAuthorStats(ctx context.Context, id uint) (*Stats, error)

	// UpdateAuthor 更新作者名称
	UpdateAuthor(ctx context.Context, id uint, name string) (*Author, error)

	// ListAuthors 按查询管线检索作者列表
	ListAuthors(ctx context.Context, q query.Query) ([]*Author, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	author := NewAuthor(name)
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthor 根据ID获取作者
func (s *service) GetAuthor(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// GetAuthorStats 获取作者统计信息
func (s *service) GetAuthorStats(ctx context.Context, id uint) (*Stats, error) {
	return s.repo.Stats(ctx, id)
}

// UpdateAuthor 更新作者名称
func (s *service) UpdateAuthor(ctx context.Context, id uint, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	author, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.Rename(name)
	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// ListAuthors 按查询管线检索作者列表
func (s *service) ListAuthors(ctx context.Context, q query.Query) ([]*Author, int64, error) {
	return s.repo.List(ctx, q)
}

// validateName 名称校验
func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
