package dto

// CreateAuthorRequest HTTP作者创建请求
type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required,max=200" example:"刘慈欣"`
}

// UpdateAuthorRequest HTTP作者更新请求
type UpdateAuthorRequest struct {
	Name string `json:"name" binding:"required,max=200" example:"刘慈欣"`
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"刘慈欣"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}
