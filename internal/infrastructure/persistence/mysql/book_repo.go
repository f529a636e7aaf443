package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

// bookColumns 图书查询的逻辑字段 → 列名白名单
// author_name映射到联表的authors.name
var bookColumns = map[string]string{
	"id":               "books.id",
	"title":            "books.title",
	"publication_year": "books.publication_year",
	"author_id":        "books.author_id",
	"author_name":      "authors.name",
	"created_at":       "books.created_at",
}

// bookRow 联表查询结果行(books.* + authors.name)
type bookRow struct {
	ID              uint
	Title           string
	PublicationYear int
	AuthorID        uint
	AuthorName      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 所有读操作联表authors填充AuthorName
// 3. 唯一索引冲突转换为业务错误ErrDuplicateTitleAuthor
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
// (title, author_id)唯一性由数据库复合索引保证
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
	}

	db := r.getDB(ctx).WithContext(ctx)
	if err := db.Omit("Author").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrDuplicateTitleAuthor
		}
		if isForeignKeyError(err) {
			return book.ErrAuthorRef
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var row bookRow
	err := r.getDB(ctx).WithContext(ctx).
		Model(&BookModel{}).
		Select("books.*, authors.name AS author_name").
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("books.id = ?", id).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&row), nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	updates := map[string]interface{}{
		"title":            b.Title,
		"publication_year": b.PublicationYear,
		"author_id":        b.AuthorID,
		"updated_at":       b.UpdatedAt,
	}

	db := r.getDB(ctx).WithContext(ctx)
	result := db.Model(&BookModel{}).Where("id = ?", b.ID).Updates(updates)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrDuplicateTitleAuthor
		}
		if isForeignKeyError(result.Error) {
			return book.ErrAuthorRef
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	return nil
}

// Delete 删除图书(硬删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 按查询管线检索图书列表
// 执行顺序:过滤 → 检索 → 计数 → 排序 → 分页
func (r *bookRepository) List(ctx context.Context, q query.Query) ([]*book.Book, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).
		Model(&BookModel{}).
		Joins("JOIN authors ON authors.id = books.author_id")

	db = applyConditions(db, q.Conditions, bookColumns)
	db = applySearch(db, q, bookColumns)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	db = db.Select("books.*, authors.name AS author_name")
	db = applyOrdering(db, q.Order, bookColumns)
	db = db.Limit(q.PageSize).Offset(q.Offset())

	var rows []bookRow
	if err := db.Scan(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books, total, nil
}

// ListByAuthor 查询某作者名下的其他图书
// 按id升序返回,最多limit条
func (r *bookRepository) ListByAuthor(ctx context.Context, authorID, excludeID uint, limit int) ([]*book.Book, error) {
	var rows []bookRow
	err := r.getDB(ctx).WithContext(ctx).
		Model(&BookModel{}).
		Select("books.*, authors.name AS author_name").
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("books.author_id = ? AND books.id <> ?", authorID, excludeID).
		Order("books.id ASC").
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "查询同作者图书失败")
	}

	books := make([]*book.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books, nil
}

// DeleteByAuthor 删除某作者名下的全部图书
// 与作者删除在同一事务中执行(TxManager传递事务DB)
func (r *bookRepository) DeleteByAuthor(ctx context.Context, authorID uint) error {
	err := r.getDB(ctx).WithContext(ctx).
		Where("author_id = ?", authorID).
		Delete(&BookModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除作者图书失败")
	}
	return nil
}

// toBookEntity 查询行 → 领域实体
func toBookEntity(row *bookRow) *book.Book {
	return &book.Book{
		ID:              row.ID,
		Title:           row.Title,
		PublicationYear: row.PublicationYear,
		AuthorID:        row.AuthorID,
		AuthorName:      row.AuthorName,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// getDB 从context获取事务DB,没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
