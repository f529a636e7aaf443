package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book引用Author(AuthorID外键),同一作者下书名唯一(数据库复合唯一索引保证)
// 2. 出版年份不得晚于校验时的当前年份(Service层校验)
// 3. 删除为硬删除,不可恢复,无软删除字段
type Book struct {
	ID              uint
	Title           string // 书名
	PublicationYear int    // 出版年份
	AuthorID        uint   // 作者ID
	AuthorName      string // 作者名称(列表/详情展示用,仓储查询时联表填充)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则校验(书名非空、年份范围、作者存在)由Service负责
func NewBook(title string, publicationYear int, authorID uint) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		PublicationYear: publicationYear,
		AuthorID:        authorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Apply 应用部分更新(领域行为)
// nil字段表示不修改,支持PATCH语义
func (b *Book) Apply(title *string, publicationYear *int, authorID *uint) {
	if title != nil {
		b.Title = *title
	}
	if publicationYear != nil {
		b.PublicationYear = *publicationYear
	}
	if authorID != nil {
		b.AuthorID = *authorID
	}
	b.UpdatedAt = time.Now()
}
