package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/query"
)

// 统一响应结构
// 设计说明：
// 1. 列表端点返回 {results, metadata}，metadata是端点查询能力的静态描述
// 2. 写操作返回 {status, message, data, links}，links提供相关端点导航
// 3. 错误返回 {status, message, code, errors}，errors为字段级校验错误
// 4. HTTP状态码反映错误类别（400/401/403/404/500），业务码放在body中

// ListBody 列表响应体
type ListBody struct {
	Results  interface{}    `json:"results"`
	Metadata query.Metadata `json:"metadata"`
}

// MutationBody 写操作响应体
type MutationBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
}

// DeletionBody 删除操作响应体
// 快照字段名随资源变化(deleted_book、deleted_author),序列化时按DeletedKey输出
type DeletionBody struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	DeletedKey string            `json:"-"`
	Deleted    interface{}       `json:"-"`
	Links      map[string]string `json:"links,omitempty"`
}

// MarshalJSON 将快照以DeletedKey为字段名写入响应体
func (b DeletionBody) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"status":      b.Status,
		"message":     b.Message,
		b.DeletedKey: b.Deleted,
	}
	if b.Links != nil {
		body["links"] = b.Links
	}
	return json.Marshal(body)
}

// ErrorBody 错误响应体
type ErrorBody struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK 普通成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// List 列表成功响应
func List(c *gin.Context, results interface{}, metadata query.Metadata) {
	c.JSON(http.StatusOK, ListBody{
		Results:  results,
		Metadata: metadata,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, message string, data interface{}, links map[string]string) {
	c.JSON(http.StatusCreated, MutationBody{
		Status:  "success",
		Message: message,
		Data:    data,
		Links:   links,
	})
}

// Updated 更新成功响应（200）
func Updated(c *gin.Context, message string, data interface{}, links map[string]string) {
	c.JSON(http.StatusOK, MutationBody{
		Status:  "success",
		Message: message,
		Data:    data,
		Links:   links,
	})
}

// Deleted 删除成功响应（200，携带被删除记录快照）
// deletedKey指定快照在响应体中的字段名（如"deleted_book"）
func Deleted(c *gin.Context, message, deletedKey string, deleted interface{}, links map[string]string) {
	c.JSON(http.StatusOK, DeletionBody{
		Status:     "success",
		Message:    message,
		DeletedKey: deletedKey,
		Deleted:    deleted,
		Links:      links,
	})
}

// Error 错误响应（自动处理AppError并映射HTTP状态码）
// 用法：
//
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误记录日志，对外只暴露业务提示
	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(appErr.HTTPStatus(), ErrorBody{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// BindError 参数绑定失败响应（400）
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Status:  "error",
		Code:    apperrors.ErrCodeBindError,
		Message: "参数错误: " + err.Error(),
	})
}

// AbortError 错误响应并终止后续Handler（供中间件使用）
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
