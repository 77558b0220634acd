/*
 * @Description: 站点配置服务，缓存后端下发的公开站点配置
 * @Author: 安知鱼
 * @Date: 2025-06-21 18:02:11
 * @LastEditTime: 2025-10-24 10:40:35
 * @LastEditors: 安知鱼
 */
package setting

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-site/internal/configdef"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

// ConfigFetcher 获取站点配置的来源，通常是后端客户端
type ConfigFetcher interface {
	FetchSiteConfig(ctx context.Context) (siteconfig.Data, error)
}

// SettingService 定义了配置服务的接口
type SettingService interface {
	// Load 从后端重新拉取站点配置，失败时保留上一次成功的结果
	Load(ctx context.Context) error
	// GetSiteConfig 返回当前的站点配置（已补齐默认值），调用方不应修改返回值
	GetSiteConfig() siteconfig.Data
	Get(key string) string
	// LoadedAt 最近一次成功从后端加载的时间，从未成功时为零值
	LoadedAt() time.Time
}

// settingService 是 SettingService 接口的实现
type settingService struct {
	fetcher  ConfigFetcher
	mu       sync.RWMutex
	cache    siteconfig.Data
	loadedAt time.Time
}

// NewSettingService 是 settingService 的构造函数，初始内容为代码中定义的默认配置
func NewSettingService(fetcher ConfigFetcher) SettingService {
	log.Printf("Setting Service 初始化完成，共 %d 个默认配置项。", len(configdef.AllSettings))
	return &settingService{
		fetcher: fetcher,
		cache:   configdef.WithDefaults(nil),
	}
}

func (s *settingService) Load(ctx context.Context) error {
	data, err := s.fetcher.FetchSiteConfig(ctx)
	if err != nil {
		log.Printf("⚠️ 警告: 从后端加载站点配置失败: %v。服务将继续使用当前缓存的配置。", err)
		return err
	}
	merged := configdef.WithDefaults(data)

	s.mu.Lock()
	s.cache = merged
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("站点配置已成功加载到缓存，共 %d 项。", len(merged))
	return nil
}

func (s *settingService) GetSiteConfig() siteconfig.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache
}

func (s *settingService) Get(key string) string {
	return s.GetSiteConfig().String(key)
}

func (s *settingService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
