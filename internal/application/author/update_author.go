package author

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// UpdateAuthorUseCase 作者更新用例
type UpdateAuthorUseCase struct {
	authorService author.Service
	events        event.Publisher
}

// NewUpdateAuthorUseCase 创建作者更新用例
func NewUpdateAuthorUseCase(authorService author.Service, events event.Publisher) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{
		authorService: authorService,
		events:        events,
	}
}

// Execute 执行更新用例
func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, id uint, name string) (*AuthorItem, error) {
	a, err := uc.authorService.UpdateAuthor(ctx, id, name)
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, event.AuthorUpdated, event.AuthorEvent{
		AuthorID:   a.ID,
		Name:       a.Name,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Printf("发布作者更新事件失败: author_id=%d, err=%v", a.ID, err)
	}

	item := toAuthorItem(a)
	return &item, nil
}
