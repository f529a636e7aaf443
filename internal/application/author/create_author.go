package author

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CreateAuthorUseCase 作者创建用例
type CreateAuthorUseCase struct {
	authorService author.Service
	events        event.Publisher
}

// NewCreateAuthorUseCase 创建作者创建用例
func NewCreateAuthorUseCase(authorService author.Service, events event.Publisher) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{
		authorService: authorService,
		events:        events,
	}
}

// Execute 执行创建用例
func (uc *CreateAuthorUseCase) Execute(ctx context.Context, name string) (*AuthorItem, error) {
	a, err := uc.authorService.CreateAuthor(ctx, name)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.AuthorsCreatedTotal)

	if err := uc.events.Publish(ctx, event.AuthorCreated, event.AuthorEvent{
		AuthorID:   a.ID,
		Name:       a.Name,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Printf("发布作者创建事件失败: author_id=%d, err=%v", a.ID, err)
	}

	item := toAuthorItem(a)
	return &item, nil
}
