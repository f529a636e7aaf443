package dto

// RegisterRequest HTTP注册请求
// 密码强度(8-20位,包含字母和数字)由领域服务校验
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"abc12345"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"书虫"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"abc12345"`
}

// UserResponse HTTP用户响应
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"reader@example.com"`
	Nickname string `json:"nickname" example:"书虫"`
}
