package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
// 详情附带related_books:同作者的其他图书,按ID升序最多5条
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// BookDetailResponse 图书详情响应DTO
type BookDetailResponse struct {
	BookItem
	RelatedBooks []BookItem `json:"related_books"`
}

// Execute 执行详情查询用例
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetailResponse, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	related, err := uc.bookService.RelatedBooks(ctx, b)
	if err != nil {
		return nil, err
	}

	relatedItems := make([]BookItem, len(related))
	for i, rb := range related {
		relatedItems[i] = toBookItem(rb)
	}

	return &BookDetailResponse{
		BookItem:     toBookItem(b),
		RelatedBooks: relatedItems,
	}, nil
}
