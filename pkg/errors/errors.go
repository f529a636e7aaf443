package errors

import (
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，客户端据此判断错误类型
// 2. Message是用户友好的提示信息
// 3. Fields记录字段级校验错误（如publication_year晚于当前年份）
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int               `json:"code"`             // 业务错误码
	Message string            `json:"message"`          // 用户友好的错误提示
	Fields  map[string]string `json:"fields,omitempty"` // 字段级校验错误
	Err     error             `json:"-"`                // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError 创建字段级校验错误
// 用途：请求体校验失败时，指明具体是哪个字段、什么原因
// 例如：NewFieldError("publication_year", "出版年份不能晚于当前年份")
func NewFieldError(field, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: "参数校验失败",
		Fields:  map[string]string{field: reason},
	}
}

// WithField 在已有错误上附加字段信息（返回副本，不修改原错误）
func (e *AppError) WithField(field, reason string) *AppError {
	fields := map[string]string{field: reason}
	for k, v := range e.Fields {
		fields[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Fields:  fields,
		Err:     e.Err,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// HTTPStatus 业务错误码 → HTTP状态码
// 设计说明：接口层按此映射设置响应状态码
// - 业务/参数校验错误 → 400
// - 未提供凭证 → 401；凭证无效或权限不足 → 403
// - 资源不存在 → 404
// - 其余 → 500
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code >= ErrCodeUnauthorized && e.Code < ErrCodeForbidden:
		return http.StatusUnauthorized
	case e.Code >= ErrCodeForbidden && e.Code < ErrCodeNotFound:
		return http.StatusForbidden
	case e.Code >= ErrCodeNotFound && e.Code < ErrCodeInvalidParams:
		return http.StatusNotFound
	case e.Code >= ErrCodeBusinessError && e.Code < ErrCodeUnauthorized:
		return http.StatusBadRequest
	case e.Code >= ErrCodeInvalidParams && e.Code < ErrCodeInternal:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetAppError 从error中提取AppError
// 如果不是AppError，包装为内部错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "服务器内部错误",
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 40000-40099: 业务规则错误（映射400）
// - 40100-40299: 认证错误（映射401）
// - 40300-40399: 权限错误（映射403）
// - 40400-40499: 资源不存在（映射404）
// - 40900-40999: 参数错误（映射400）
// - 50000-50099: 服务端错误（映射500）

const (
	// 业务规则错误（40000-40099）
	ErrCodeBusinessError  = 40000 // 业务错误(通用)
	ErrCodeEmailDuplicate = 40003 // 邮箱已存在
	ErrCodeWeakPassword   = 40005 // 密码强度不足
	ErrCodeDuplicateEntry = 40009 // 重复记录(通用)

	// 认证错误（40100-40299）
	ErrCodeUnauthorized = 40100 // 未提供凭证
	ErrCodeNoCredential = 40101 // 缺少Authorization头

	// 权限错误（40300-40399）
	ErrCodeForbidden       = 40300 // 无权限
	ErrCodeInvalidToken    = 40301 // Token无效
	ErrCodeTokenExpired    = 40302 // Token过期
	ErrCodeTokenRevoked    = 40303 // Token已被撤销
	ErrCodeInvalidPassword = 40304 // 密码错误

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeAuthorNotFound = 40403 // 作者不存在

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrNoCredential    = New(ErrCodeNoCredential, "缺少认证凭证")
	ErrForbidden       = New(ErrCodeForbidden, "无权执行此操作")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "Token无效")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrTokenRevoked    = New(ErrCodeTokenRevoked, "Token已失效，请重新登录")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "邮箱或密码错误")

	// 用户
	ErrUserNotFound   = New(ErrCodeUserNotFound, "用户不存在")
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "密码强度不足（8-20位，需包含字母和数字）")
)
