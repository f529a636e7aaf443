package author

import (
	"time"
)

// Author 作者实体(聚合根)
// 设计说明:
// 1. Author是作者聚合的根实体,与Book为一对多关系(Book持有AuthorID外键)
// 2. 删除作者会级联删除其名下所有图书,由应用层在同一事务中完成
type Author struct {
	ID        uint
	Name      string // 作者全名
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建新作者(工厂方法)
// 名称非空校验由Service负责
func NewAuthor(name string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 更新作者名称(领域行为)
func (a *Author) Rename(name string) {
	a.Name = name
	a.UpdatedAt = time.Now()
}

// Stats 作者统计信息
// TotalBooks为名下图书总数,PublicationYears为去重后升序的出版年份列表
type Stats struct {
	TotalBooks       int64 `json:"total_books"`
	PublicationYears []int `json:"publication_years"`
}
