package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

// authorColumns 作者查询的逻辑字段 → 列名白名单
var authorColumns = map[string]string{
	"id":         "authors.id",
	"name":       "authors.name",
	"created_at": "authors.created_at",
}

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{Name: a.Name}

	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := r.getDB(ctx).WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// Exists 判断作者是否存在
func (r *authorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).WithContext(ctx).
		Model(&AuthorModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询作者失败")
	}
	return count > 0, nil
}

// Update 更新作者信息
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	updates := map[string]interface{}{
		"name":       a.Name,
		"updated_at": a.UpdatedAt,
	}

	err := r.getDB(ctx).WithContext(ctx).
		Model(&AuthorModel{}).
		Where("id = ?", a.ID).
		Updates(updates).Error
	if err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

// Delete 删除作者(硬删除)
// 名下图书的级联删除由应用层在同一事务中先行完成
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).WithContext(ctx).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// List 按查询管线检索作者列表
// has_books开关翻译为EXISTS/NOT EXISTS子查询
func (r *authorRepository) List(ctx context.Context, q query.Query) ([]*author.Author, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&AuthorModel{})

	db = applyConditions(db, q.Conditions, authorColumns)
	db = applySearch(db, q, authorColumns)

	if hasBooks, ok := q.Flags["has_books"]; ok {
		if hasBooks {
			db = db.Where("EXISTS (SELECT 1 FROM books WHERE books.author_id = authors.id)")
		} else {
			db = db.Where("NOT EXISTS (SELECT 1 FROM books WHERE books.author_id = authors.id)")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	db = applyOrdering(db, q.Order, authorColumns)
	db = db.Limit(q.PageSize).Offset(q.Offset())

	var models []AuthorModel
	if err := db.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

// Stats 作者统计:名下图书总数与去重升序的出版年份列表
func (r *authorRepository) Stats(ctx context.Context, id uint) (*author.Stats, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	db := r.getDB(ctx).WithContext(ctx)

	var total int64
	err := db.Model(&BookModel{}).
		Where("author_id = ?", id).
		Count(&total).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计图书总数失败")
	}

	years := make([]int, 0)
	err = db.Model(&BookModel{}).
		Distinct("publication_year").
		Where("author_id = ?", id).
		Order("publication_year ASC").
		Pluck("publication_year", &years).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计出版年份失败")
	}

	return &author.Stats{
		TotalBooks:       total,
		PublicationYears: years,
	}, nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,没有则使用默认DB
func (r *authorRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
