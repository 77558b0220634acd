/*
 * @Description: AWS S3 发布目标（使用aws-sdk-go-v2）
 * @Author: 安知鱼
 * @Date: 2025-09-28 19:00:00
 * @LastEditTime: 2025-10-24 16:20:51
 * @LastEditors: 安知鱼
 *
 * 兼容 MinIO、Ceph RGW、Cloudflare R2 等 S3 协议的对象存储，
 * 配置了 Endpoint 时默认使用 path-style 访问。
 */
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options S3 发布目标配置
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// Prefix 对象键前缀，例如 "public"
	Prefix    string
	PathStyle bool
}

// AWSS3Provider 把文件上传到 S3 兼容的对象存储。
type AWSS3Provider struct {
	client *s3.Client
	opts   S3Options
}

// NewAWSS3Provider 是 AWSS3Provider 的构造函数。
func NewAWSS3Provider(opts S3Options) (IStorageProvider, error) {
	client, err := newS3Client(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	return &AWSS3Provider{client: client, opts: opts}, nil
}

// newS3Client 获取AWS S3客户端
func newS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("AWS S3配置缺少存储桶名称")
	}
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, fmt.Errorf("AWS S3配置缺少AccessKey或SecretKey")
	}

	region := opts.Region
	if region == "" {
		region = regionFromEndpoint(opts.Endpoint)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		log.Printf("[AWS S3] 创建配置失败: %v", err)
		return nil, fmt.Errorf("创建AWS S3配置失败: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// 对于自定义endpoint通常需要path-style
			o.UsePathStyle = true
		}
		if opts.PathStyle {
			o.UsePathStyle = true
		}
	})

	log.Printf("[AWS S3] 成功创建客户端 - 区域: %s, 存储桶: %s", region, opts.Bucket)
	return client, nil
}

// regionFromEndpoint 尝试从 s3.us-west-2.amazonaws.com 形式的地址中提取区域
func regionFromEndpoint(endpoint string) string {
	const defaultRegion = "us-east-1"
	parsedURL, err := url.Parse(endpoint)
	if err != nil || !strings.Contains(parsedURL.Host, "amazonaws.com") {
		return defaultRegion
	}
	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) >= 4 && strings.HasPrefix(parts[0], "s3") {
		return parts[1]
	}
	return defaultRegion
}

func (p *AWSS3Provider) Name() string {
	return TypeS3
}

// objectKey 拼接对象键前缀
func (p *AWSS3Provider) objectKey(name string) string {
	return strings.TrimPrefix(path.Join(strings.Trim(p.opts.Prefix, "/"), strings.TrimPrefix(name, "/")), "/")
}

func (p *AWSS3Provider) Put(ctx context.Context, name string, data []byte, contentType string) (*PublishResult, error) {
	key := p.objectKey(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// 显式设置 ContentLength 和 ChecksumSHA256 以避免第三方 S3 服务的兼容性问题
	hash := sha256.Sum256(data)
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(p.opts.Bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ContentType:    aws.String(contentType),
		ChecksumSHA256: aws.String(base64.StdEncoding.EncodeToString(hash[:])),
		CacheControl:   aws.String("public, max-age=3600"),
	})
	if err != nil {
		log.Printf("[AWS S3] 上传失败: %v", err)
		return nil, fmt.Errorf("上传文件到AWS S3失败: %w", err)
	}

	log.Printf("[AWS S3] 上传成功: objectKey=%s", key)
	return &PublishResult{Location: key, Size: int64(len(data))}, nil
}
