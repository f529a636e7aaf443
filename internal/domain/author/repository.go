package author

import (
	"context"

	"github.com/xiebiao/bookcatalog/pkg/query"
)

// Repository 作者仓储接口(依赖倒置)
// 由domain层定义接口,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	FindByID(ctx context.Context, id uint) (*Author, error)

	// Exists 判断作者是否存在(图书创建/更新时校验外键引用)
	Exists(ctx context.Context, id uint) (bool, error)

	// Update 更新作者信息
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者(硬删除)
	// 级联删除名下图书由调用方在同一事务中先行完成
	Delete(ctx context.Context, id uint) error

	// List 按查询管线检索作者列表
	// 返回当前页数据与过滤后的总数
	// 约定的逻辑字段:name;布尔开关:has_books
	List(ctx context.Context, q query.Query) ([]*Author, int64, error)

	// Stats 作者统计:名下图书总数与去重升序的出版年份列表
	Stats(ctx context.Context, id uint) (*Stats, error)
}
