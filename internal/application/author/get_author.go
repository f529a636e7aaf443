package author

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// GetAuthorUseCase 作者详情查询用例
// 详情附带statistics:名下图书总数与去重升序的出版年份列表
type GetAuthorUseCase struct {
	authorService author.Service
}

// NewGetAuthorUseCase 创建详情查询用例
func NewGetAuthorUseCase(authorService author.Service) *GetAuthorUseCase {
	return &GetAuthorUseCase{authorService: authorService}
}

// AuthorDetailResponse 作者详情响应DTO
type AuthorDetailResponse struct {
	AuthorItem
	Statistics author.Stats `json:"statistics"`
}

// Execute 执行详情查询用例
func (uc *GetAuthorUseCase) Execute(ctx context.Context, id uint) (*AuthorDetailResponse, error) {
	a, err := uc.authorService.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := uc.authorService.GetAuthorStats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AuthorDetailResponse{
		AuthorItem: toAuthorItem(a),
		Statistics: *stats,
	}, nil
}
