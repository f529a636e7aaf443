package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// UpdateBookUseCase 图书更新用例
// 支持部分更新:nil字段不修改
type UpdateBookUseCase struct {
	bookService book.Service
	events      event.Publisher
}

// NewUpdateBookUseCase 创建图书更新用例
func NewUpdateBookUseCase(bookService book.Service, events event.Publisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// UpdateBookRequest 更新请求DTO
// 指针字段为nil表示不修改
type UpdateBookRequest struct {
	ID              uint
	Title           *string
	PublicationYear *int
	AuthorID        *uint
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookItem, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, event.BookUpdated, event.BookEvent{
		BookID:          b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		OccurredAt:      time.Now(),
	}); err != nil {
		log.Printf("发布图书更新事件失败: book_id=%d, err=%v", b.ID, err)
	}

	item := toBookItem(b)
	return &item, nil
}
