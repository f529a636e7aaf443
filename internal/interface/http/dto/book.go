package dto

// CreateBookRequest HTTP图书创建请求
// author为作者ID,必须引用已存在的作者
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"三体"`
	PublicationYear int    `json:"publication_year" binding:"required" example:"2008"`
	Author          uint   `json:"author" binding:"required" example:"1"`
}

// UpdateBookRequest HTTP图书更新请求
// 指针字段支持部分更新:缺失的字段不修改
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=200" example:"三体(修订版)"`
	PublicationYear *int    `json:"publication_year" example:"2008"`
	Author          *uint   `json:"author" example:"1"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"三体"`
	PublicationYear int    `json:"publication_year" example:"2008"`
	Author          uint   `json:"author" example:"1"`
	AuthorName      string `json:"author_name" example:"刘慈欣"`
	CreatedAt       string `json:"created_at" example:"2024-01-15 10:30:00"`
}
