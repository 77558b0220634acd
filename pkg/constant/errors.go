/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-27 12:08:15
 * @LastEditTime: 2025-10-22 10:31:06
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrSiteURLMissing 表示站点地址未配置，站点地图无法生成，可以由 Handler 转换为 503
	ErrSiteURLMissing = errors.New("站点URL未配置")

	// ErrBackendUnavailable 表示后端接口请求失败，可以由 Handler 转换为 502
	ErrBackendUnavailable = errors.New("后端服务不可用")

	// ErrBackendResponse 表示后端返回了非成功的业务码
	ErrBackendResponse = errors.New("后端返回错误")

	// ErrPublishNotConfigured 表示站点地图发布目标未配置
	ErrPublishNotConfigured = errors.New("未配置站点地图发布目标")

	// ErrInvalidCSSVariable 表示 CSS 变量名不合法（必须以 -- 开头），可以由 Handler 转换为 400
	ErrInvalidCSSVariable = errors.New("无效的CSS变量名")
)
