package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CreateBookUseCase 图书创建用例
// 设计说明:
// 1. 业务规则校验(书名、年份、作者引用)由领域服务负责
// 2. 创建成功后发布catalog.book.created事件(尽力而为,失败只记日志)
type CreateBookUseCase struct {
	bookService book.Service
	events      event.Publisher
}

// NewCreateBookUseCase 创建图书创建用例
func NewCreateBookUseCase(bookService book.Service, events event.Publisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title           string
	PublicationYear int
	AuthorID        uint
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookItem, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)

	if err := uc.events.Publish(ctx, event.BookCreated, event.BookEvent{
		BookID:          b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		OccurredAt:      time.Now(),
	}); err != nil {
		log.Printf("发布图书创建事件失败: book_id=%d, err=%v", b.ID, err)
	}

	item := toBookItem(b)
	return &item, nil
}
