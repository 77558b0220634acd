// internal/app/task/job_setting_reload.go
package task

import (
	"context"

	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
)

// SettingReloadJob 定时从后端拉取站点配置并刷新主题变量
type SettingReloadJob struct {
	settingSvc setting.SettingService
	themeSvc   theme.Service
}

// NewSettingReloadJob 是任务的构造函数
func NewSettingReloadJob(settingSvc setting.SettingService, themeSvc theme.Service) *SettingReloadJob {
	return &SettingReloadJob{settingSvc: settingSvc, themeSvc: themeSvc}
}

// Execute 拉取失败时保留旧配置并返回错误
func (j *SettingReloadJob) Execute(ctx context.Context) error {
	if err := j.settingSvc.Load(ctx); err != nil {
		return err
	}
	j.themeSvc.Refresh(j.settingSvc.GetSiteConfig())
	return nil
}

func (j *SettingReloadJob) Name() string {
	return "SettingReloadJob"
}
