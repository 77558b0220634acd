/*
 * @Description: 定时重新生成站点地图
 * @Author: 安知鱼
 * @Date: 2025-10-22 11:40:27
 * @LastEditTime: 2025-10-24 17:20:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/utility"
)

const (
	// SitemapLockKey 多实例部署时只让一个实例执行。不能使用 sitemap: 前缀，否则会被 Invalidate 一并清除
	SitemapLockKey = "lock:sitemap:refresh"
	sitemapLockTTL = 5 * time.Minute
)

// SitemapRefreshJob 清除站点地图缓存并立即重新生成，生成结果通过事件发布
type SitemapRefreshJob struct {
	sitemapSvc sitemap.Service
	cacheSvc   utility.CacheService
}

// NewSitemapRefreshJob 是任务的构造函数
func NewSitemapRefreshJob(sitemapSvc sitemap.Service, cacheSvc utility.CacheService) *SitemapRefreshJob {
	return &SitemapRefreshJob{sitemapSvc: sitemapSvc, cacheSvc: cacheSvc}
}

func (j *SitemapRefreshJob) Execute(ctx context.Context) error {
	acquired, err := j.cacheSvc.SetNX(ctx, SitemapLockKey, time.Now().Unix(), sitemapLockTTL)
	if err != nil {
		return fmt.Errorf("获取任务锁失败: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: 其他实例正在刷新站点地图", ErrJobSkipped)
	}
	defer func() {
		if err := j.cacheSvc.Delete(context.Background(), SitemapLockKey); err != nil {
			log.Printf("任务 '%s' 释放锁失败: %v", j.Name(), err)
		}
	}()

	if err := j.sitemapSvc.Invalidate(ctx); err != nil {
		log.Printf("任务 '%s' 清除缓存失败: %v", j.Name(), err)
	}
	body, err := j.sitemapSvc.Render(ctx)
	if err != nil {
		if errors.Is(err, constant.ErrSiteURLMissing) {
			return fmt.Errorf("%w: %v", ErrJobSkipped, err)
		}
		return err
	}
	log.Printf("任务 '%s' 业务逻辑执行完毕，站点地图大小 %d 字节。", j.Name(), len(body))
	return nil
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *SitemapRefreshJob) Name() string {
	return "SitemapRefreshJob"
}
