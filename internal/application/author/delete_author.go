package author

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/application/event"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// TxManager 事务管理接口
// 由infrastructure/persistence/mysql.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteAuthorUseCase 作者删除用例
// 设计说明:
// 1. 删除作者会级联删除其名下所有图书
// 2. 图书删除与作者删除在同一事务中执行,失败整体回滚
// 3. 数据库外键ON DELETE CASCADE作为兜底,应用层事务为主路径
type DeleteAuthorUseCase struct {
	authorService author.Service
	authorRepo    author.Repository
	bookRepo      book.Repository
	tx            TxManager
	events        event.Publisher
}

// NewDeleteAuthorUseCase 创建作者删除用例
func NewDeleteAuthorUseCase(
	authorService author.Service,
	authorRepo author.Repository,
	bookRepo book.Repository,
	tx TxManager,
	events event.Publisher,
) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{
		authorService: authorService,
		authorRepo:    authorRepo,
		bookRepo:      bookRepo,
		tx:            tx,
		events:        events,
	}
}

// Execute 执行删除用例,返回被删除作者的快照
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id uint) (*AuthorItem, error) {
	a, err := uc.authorService.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.bookRepo.DeleteByAuthor(txCtx, id); err != nil {
			return err
		}
		return uc.authorRepo.Delete(txCtx, id)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.events.Publish(ctx, event.AuthorDeleted, event.AuthorEvent{
		AuthorID:   a.ID,
		Name:       a.Name,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Printf("发布作者删除事件失败: author_id=%d, err=%v", a.ID, err)
	}

	item := toAuthorItem(a)
	return &item, nil
}
