package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} response.MutationBody
// @Failure 400 {object} response.ErrorBody
// @Router /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", resp, map[string]string{
		"login": "/api/v1/users/login",
	})
}

// Login 用户登录
// @Summary 用户登录
// @Description 返回Access Token与Refresh Token
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} appuser.LoginResponse
// @Failure 403 {object} response.ErrorBody
// @Router /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, resp)
}

// Logout 用户登出
// @Summary 用户登出
// @Description 删除会话并将当前Token加入黑名单
// @Tags 用户
// @Produce json
// @Success 200 {object} response.MutationBody
// @Failure 401 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	token, ok := middleware.GetAccessToken(c)
	if !ok {
		response.Error(c, apperrors.ErrNoCredential)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Updated(c, "登出成功", nil, nil)
}

// Profile 当前用户信息
// @Summary 当前用户信息
// @Tags 用户
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	email, _ := middleware.GetEmail(c)
	nickname := c.GetString("nickname")

	response.OK(c, dto.UserResponse{
		ID:       userID,
		Email:    email,
		Nickname: nickname,
	})
}
