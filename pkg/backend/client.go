/*
 * @Description: 博客后端 (anheyu-app) REST 客户端
 * @Author: 安知鱼
 * @Date: 2025-10-22 16:45:10
 * @LastEditTime: 2025-10-24 11:38:52
 * @LastEditors: 安知鱼
 */
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

const (
	// 文章分页拉取时每页的数量
	articlePageSize = 100
	// 最多拉取的文章页数，防止后端分页异常时无限循环
	maxArticlePages = 500
	// 单个响应体的大小上限
	maxBodySize = 32 << 20
)

// Options 客户端配置
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPS 每秒最多发出的请求数，<= 0 表示不限速
	RPS float64
}

// Client 调用后端公开接口，所有请求都经过限速器，避免定时刷新站点地图时压垮后端。
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient 创建后端客户端
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RPS > 0 {
		burst := int(opts.RPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// envelope 后端统一返回结构 {code, message, data}
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Taxonomy 文章分类或标签
type Taxonomy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ArticleRef 生成站点地图所需的文章信息
type ArticleRef struct {
	ID        string    `json:"id"`
	Abbrlink  string    `json:"abbrlink"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slug 文章在前台的路径段，优先使用永久链接 abbrlink。
func (a ArticleRef) Slug() string {
	if a.Abbrlink != "" {
		return a.Abbrlink
	}
	return a.ID
}

type articlePage struct {
	List     []ArticleRef `json:"list"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

type albumPage struct {
	Total int `json:"total"`
}

// FetchSiteConfig 获取公开的站点配置
func (c *Client) FetchSiteConfig(ctx context.Context) (siteconfig.Data, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/api/public/site-config", nil, &raw); err != nil {
		return nil, err
	}
	data, err := siteconfig.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: 解析站点配置失败: %v", constant.ErrBackendResponse, err)
	}
	return data, nil
}

// ListCategories 获取全部文章分类及文章数
func (c *Client) ListCategories(ctx context.Context) ([]Taxonomy, error) {
	var list []Taxonomy
	if err := c.getJSON(ctx, "/api/post-categories", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListTags 获取全部文章标签及文章数
func (c *Client) ListTags(ctx context.Context) ([]Taxonomy, error) {
	var list []Taxonomy
	if err := c.getJSON(ctx, "/api/post-tags", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListArticles 分页拉取全部已发布文章，返回文章列表和后端报告的总数。
func (c *Client) ListArticles(ctx context.Context) ([]ArticleRef, int, error) {
	var (
		all   []ArticleRef
		total int
	)
	for page := 1; page <= maxArticlePages; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(articlePageSize))

		var p articlePage
		if err := c.getJSON(ctx, "/api/public/articles", query, &p); err != nil {
			return nil, 0, err
		}
		total = p.Total
		all = append(all, p.List...)
		if len(p.List) < articlePageSize || len(all) >= total {
			break
		}
	}
	if total < len(all) {
		total = len(all)
	}
	return all, total, nil
}

// CountAlbums 获取公开相册的总数
func (c *Client) CountAlbums(ctx context.Context) (int, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("pageSize", "1")

	var p albumPage
	if err := c.getJSON(ctx, "/api/public/albums", query, &p); err != nil {
		return 0, err
	}
	return p.Total, nil
}

// getJSON 发起 GET 请求并把 data 字段解码到 out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", constant.ErrBackendUnavailable, err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("构建请求 %s 失败: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Backend] 请求 %s 失败: %v", path, err)
		return fmt.Errorf("%w: %v", constant.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: 读取 %s 响应失败: %v", constant.ErrBackendUnavailable, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Backend] %s 返回状态码 %d", path, resp.StatusCode)
		return fmt.Errorf("%w: %s 返回状态码 %d", constant.ErrBackendResponse, path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: 解析 %s 响应失败: %v", constant.ErrBackendResponse, path, err)
	}
	if env.Code != http.StatusOK {
		return fmt.Errorf("%w: %s code=%d message=%s", constant.ErrBackendResponse, path, env.Code, env.Message)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: 解析 %s 数据失败: %v", constant.ErrBackendResponse, path, err)
	}
	return nil
}
