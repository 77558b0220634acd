/*
 * @Description: Next.js 前端缓存清理服务
 * @Author: 安知鱼
 * @Date: 2025-01-26 10:12:00
 * @LastEditTime: 2025-10-24 15:30:18
 * @LastEditors: 安知鱼
 */
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// TokenHeader 前端校验清理请求时读取的请求头
const TokenHeader = "x-revalidate-token"

// Service 当数据变更时，调用 Next.js 的 revalidate API 清理前端缓存
type Service struct {
	enabled    bool
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewService 创建缓存清理服务，token 为空时服务不启用
func NewService(frontendURL, token string) *Service {
	frontendURL = strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	return &Service{
		enabled:  frontendURL != "" && token != "",
		endpoint: frontendURL + "/api/revalidate",
		token:    token,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IsEnabled 检查服务是否启用
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// RevalidateSiteConfig 站点配置变更时清理缓存
func (s *Service) RevalidateSiteConfig(ctx context.Context) error {
	return s.doRevalidate(ctx, map[string]interface{}{"siteConfig": true})
}

// RevalidateSitemap 站点地图重新生成后清理缓存
func (s *Service) RevalidateSitemap(ctx context.Context) error {
	return s.doRevalidate(ctx, map[string]interface{}{"sitemap": true})
}

// RevalidateArticle 单篇文章变更时清理缓存
func (s *Service) RevalidateArticle(ctx context.Context, slug string) error {
	return s.doRevalidate(ctx, map[string]interface{}{"article": slug})
}

// RevalidateAll 清理所有缓存
func (s *Service) RevalidateAll(ctx context.Context) error {
	return s.doRevalidate(ctx, map[string]interface{}{"all": true})
}

// doRevalidate 执行缓存清理请求
func (s *Service) doRevalidate(ctx context.Context, body map[string]interface{}) error {
	if !s.enabled {
		return nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[Revalidate] Failed to call revalidate API: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Revalidate] Revalidate API returned status %d", resp.StatusCode)
		return fmt.Errorf("revalidate API returned status %d", resp.StatusCode)
	}
	log.Printf("[Revalidate] Cache cleared: %v", body)
	return nil
}
