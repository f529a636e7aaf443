package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/pkg/query"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	// (title, author_id)重复时返回ErrDuplicateTitleAuthor
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(联表填充AuthorName)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(硬删除,不可恢复)
	Delete(ctx context.Context, id uint) error

	// List 按查询管线检索图书列表
	// 返回当前页数据与过滤后的总数
	// 约定的逻辑字段:title、author_name、author_id、publication_year
	List(ctx context.Context, q query.Query) ([]*Book, int64, error)

	// ListByAuthor 查询某作者名下的其他图书(详情端点的related_books)
	// excludeID排除当前图书;按存储默认顺序(id升序)返回,最多limit条
	ListByAuthor(ctx context.Context, authorID, excludeID uint, limit int) ([]*Book, error)

	// DeleteByAuthor 删除某作者名下的全部图书(作者删除的级联步骤)
	// 必须与作者删除在同一事务中执行
	DeleteByAuthor(ctx context.Context, authorID uint) error
}
