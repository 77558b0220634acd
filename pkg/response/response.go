/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2025-10-24 18:05:37
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码。
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// StatusFromError 把业务错误映射为 HTTP 状态码，未知错误为 500
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, constant.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, constant.ErrBadRequest), errors.Is(err, constant.ErrInvalidCSSVariable):
		return http.StatusBadRequest
	case errors.Is(err, constant.ErrUnauthorized), errors.Is(err, constant.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, constant.ErrSiteURLMissing), errors.Is(err, constant.ErrPublishNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, constant.ErrBackendUnavailable), errors.Is(err, constant.ErrBackendResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FailWithError 按错误类型选择状态码，message 为空时使用错误本身的描述
func FailWithError(c *gin.Context, err error, message string) {
	if message == "" {
		message = err.Error()
	}
	Fail(c, StatusFromError(err), message)
}
