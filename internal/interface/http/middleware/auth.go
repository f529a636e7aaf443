package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// TokenBlacklist Token黑名单查询接口
// 由Redis会话存储实现,登出后的Token在过期前被拒绝
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明:
// 1. 未携带Authorization头 → 401(缺少凭证)
// 2. 携带了凭证但无效/过期/已撤销 → 403
// 3. 认证通过后将用户信息写入gin.Context,供后续Handler读取
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
// blacklist可为nil(如单元测试中不接Redis)
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 强制认证,未通过则中断请求
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, apperrors.ErrNoCredential)
			return
		}

		token, err := extractBearerToken(authHeader)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		if m.blacklist != nil {
			revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), token)
			if err == nil && revoked {
				response.AbortError(c, apperrors.ErrTokenRevoked)
				return
			}
		}

		claims, err := m.jwtManager.ParseToken(token)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("nickname", claims.Nickname)
		c.Set("access_token", token)

		c.Next()
	}
}

// OptionalAuth 可选认证,Token有效则注入用户信息,无效也放行
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, err := extractBearerToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		if claims, err := m.jwtManager.ParseToken(token); err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("nickname", claims.Nickname)
			c.Set("access_token", token)
		}

		c.Next()
	}
}

// extractBearerToken 从Authorization头提取Token
// 格式: "Bearer {token}"
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidToken
	}
	return parts[1], nil
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// MustGetUserID 获取用户ID,要求必须已经过RequireAuth
func MustGetUserID(c *gin.Context) uint {
	id, ok := GetUserID(c)
	if !ok {
		panic("user_id不存在,请确认路由已挂载RequireAuth中间件")
	}
	return id
}

// GetEmail 从上下文获取用户邮箱
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("email")
	if !exists {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}

// GetAccessToken 从上下文获取原始Access Token(登出时加入黑名单用)
func GetAccessToken(c *gin.Context) (string, bool) {
	token, exists := c.Get("access_token")
	if !exists {
		return "", false
	}
	t, ok := token.(string)
	return t, ok
}
