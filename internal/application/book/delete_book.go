package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// DeleteBookUseCase 图书删除用例
// 硬删除,返回删除前的快照供响应展示
type DeleteBookUseCase struct {
	bookService book.Service
	events      event.Publisher
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(bookService book.Service, events event.Publisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// Execute 执行删除用例,返回被删除图书的快照
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (*BookItem, error) {
	b, err := uc.bookService.DeleteBook(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksDeletedTotal)

	if err := uc.events.Publish(ctx, event.BookDeleted, event.BookEvent{
		BookID:          b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		OccurredAt:      time.Now(),
	}); err != nil {
		log.Printf("发布图书删除事件失败: book_id=%d, err=%v", b.ID, err)
	}

	item := toBookItem(b)
	return &item, nil
}
