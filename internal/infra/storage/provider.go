/*
 * @Description: 定义了站点地图发布目标需要遵守的接口
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2025-10-24 16:12:40
 * @LastEditors: 安知鱼
 */
package storage

import (
	"context"
	"strings"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
)

// 发布目标类型
const (
	TypeNone  = "none"
	TypeLocal = "local"
	TypeS3    = "s3"
)

// PublishResult 封装了发布成功后的对象信息
type PublishResult struct {
	// Location 本地文件路径或对象存储中的对象键
	Location string
	Size     int64
}

// IStorageProvider 定义了所有发布目标必须实现的接口。
type IStorageProvider interface {
	// Name 返回发布目标类型
	Name() string
	// Put 把生成好的文件写入存储，name 为相对文件名（如 sitemap.xml）。
	Put(ctx context.Context, name string, data []byte, contentType string) (*PublishResult, error)
}

// Options 创建发布目标所需的配置
type Options struct {
	Type     string
	LocalDir string
	S3       S3Options
}

// NewProvider 根据配置创建发布目标，类型为 none 或留空时返回 ErrPublishNotConfigured
func NewProvider(opts Options) (IStorageProvider, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Type)) {
	case TypeLocal:
		return NewLocalProvider(opts.LocalDir), nil
	case TypeS3:
		return NewAWSS3Provider(opts.S3)
	default:
		return nil, constant.ErrPublishNotConfigured
	}
}
