/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2025-10-24 17:25:13
 * @LastEditors: 安知鱼
 */
package task

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/utility"

	"github.com/robfig/cron/v3"
)

// SettingReloadSchedule 站点配置兜底刷新周期，后端通知丢失时依靠它收敛
const SettingReloadSchedule = "0 */10 * * * *"

// Scheduler 封装了 cron 实例和其依赖。
// 它是整个定时任务模块的核心协调者，负责任务的注册、启动和停止。
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	settingSvc setting.SettingService
	themeSvc   theme.Service
	sitemapSvc sitemap.Service
	cacheSvc   utility.CacheService
}

// NewScheduler 是 Scheduler 的构造函数。
func NewScheduler(
	settingSvc setting.SettingService,
	themeSvc theme.Service,
	sitemapSvc sitemap.Service,
	cacheSvc utility.CacheService,
) *Scheduler {
	// 为所有任务日志添加固定的 "system":"cron" 属性
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	// 从外到内：跳过重叠执行、panic 恢复、执行日志
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
		),
	)

	return &Scheduler{
		cron:       c,
		logger:     logger,
		settingSvc: settingSvc,
		themeSvc:   themeSvc,
		sitemapSvc: sitemapSvc,
		cacheSvc:   cacheSvc,
	}
}

// jobTimeout 单次任务执行的最长时间
const jobTimeout = 2 * time.Minute

// AddJob 按 cron 表达式注册一个任务，支持秒级字段和 @every 等描述符。
func (s *Scheduler) AddJob(spec string, job Job) error {
	if _, err := s.cron.AddJob(spec, newRunner(job, jobTimeout)); err != nil {
		s.logger.Error("Failed to add job", slog.String("job_name", job.Name()), slog.Any("error", err))
		return fmt.Errorf("注册任务 %s 失败: %w", job.Name(), err)
	}
	s.logger.Info("-> Successfully registered job", "job_name", job.Name(), "schedule", spec)
	return nil
}

// RegisterJobs 在调度器中注册所有定义好的定时任务。sitemapSpec 为空时不注册站点地图任务。
func (s *Scheduler) RegisterJobs(sitemapSpec string) error {
	s.logger.Info("Registering all periodic jobs...")

	if err := s.AddJob(SettingReloadSchedule, NewSettingReloadJob(s.settingSvc, s.themeSvc)); err != nil {
		return err
	}
	if sitemapSpec != "" {
		if err := s.AddJob(sitemapSpec, NewSitemapRefreshJob(s.sitemapSvc, s.cacheSvc)); err != nil {
			return err
		}
	}

	s.logger.Info("All periodic jobs registered.", "count", len(s.cron.Entries()))
	return nil
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
