/*
 * @Description: 统一配置管理 (手动加载 ini + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2025-10-23 17:42:09
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// DefaultFilePath 默认配置文件位置
const DefaultFilePath = "data/conf.ini"

// 环境变量前缀，例如 ANHEYU_SITE_BACKEND_URL
const envPrefix = "ANHEYU_SITE"

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyServerTrustedProxies,
	KeyBackendURL, KeyBackendTimeout, KeyBackendRPS,
	KeyFrontendURL, KeyFrontendRevalidateToken, KeyFrontendProxy,
	KeySiteURL,
	KeySitemapCron, KeySitemapCacheTTL, KeySitemapPublish, KeySitemapLocalDir,
	KeyS3Bucket, KeyS3Region, KeyS3Endpoint, KeyS3AccessKey, KeyS3SecretKey, KeyS3Key, KeyS3PathStyle,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeyRateLimitRPS, KeyRateLimitBurst,
	KeyWebhookToken,
}

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"
	// KeyServerTrustedProxies 逗号分隔的可信代理 IP/CIDR
	KeyServerTrustedProxies = "System.TrustedProxies"

	KeyBackendURL     = "Backend.URL"
	KeyBackendTimeout = "Backend.Timeout"
	KeyBackendRPS     = "Backend.RPS"

	KeyFrontendURL             = "Frontend.URL"
	KeyFrontendRevalidateToken = "Frontend.RevalidateToken"
	KeyFrontendProxy           = "Frontend.Proxy"

	KeySiteURL = "Site.URL"

	KeySitemapCron     = "Sitemap.Cron"
	KeySitemapCacheTTL = "Sitemap.CacheTTL"
	KeySitemapPublish  = "Sitemap.Publish"
	KeySitemapLocalDir = "Sitemap.LocalDir"

	KeyS3Bucket    = "S3.Bucket"
	KeyS3Region    = "S3.Region"
	KeyS3Endpoint  = "S3.Endpoint"
	KeyS3AccessKey = "S3.AccessKey"
	KeyS3SecretKey = "S3.SecretKey"
	KeyS3Key       = "S3.Key"
	KeyS3PathStyle = "S3.PathStyle"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeyRateLimitRPS   = "RateLimit.RPS"
	KeyRateLimitBurst = "RateLimit.Burst"

	// KeyWebhookToken 后端调用 /api/revalidate 时携带的令牌
	KeyWebhookToken = "Webhook.Token"
)

// 内部默认值，配置文件和环境变量都没有给出时使用。
var defaults = map[string]interface{}{
	KeyServerPort:      "8092",
	KeyServerDebug:     false,
	KeyBackendURL:      "http://127.0.0.1:8091",
	KeyBackendTimeout:  "10s",
	KeyBackendRPS:      20,
	KeyFrontendURL:     "http://127.0.0.1:3000",
	KeyFrontendProxy:   true,
	KeySitemapCron:     "@every 1h",
	KeySitemapCacheTTL: "1h",
	KeySitemapPublish:  "none",
	KeySitemapLocalDir: "data/public",
	KeyS3Key:           "sitemap.xml",
	KeyRedisDB:         0,
	KeyRateLimitRPS:    10,
	KeyRateLimitBurst:  30,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 从 data/conf.ini 加载配置，文件不存在时自动创建默认配置文件。
func NewConfig() (*Config, error) {
	return NewConfigFromFile(DefaultFilePath)
}

// NewConfigFromFile 手动加载配置，确保可靠性：ini 文件作为默认值，环境变量覆盖。
func NewConfigFromFile(filePath string) (*Config, error) {
	vp := viper.New()
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 留空的键不覆盖内部默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Printf("从 %s 文件加载了配置。", filePath)
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

func (c *Config) GetFloat64(key string) float64 {
	return c.vp.GetFloat64(key)
}

// GetDuration 读取时长配置，支持 "30s"、"1h" 这样的写法。
func (c *Config) GetDuration(key string) time.Duration {
	return c.vp.GetDuration(key)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8092
Debug = false
# 只信任这些代理传来的 X-Forwarded-For / X-Real-IP，留空表示直接使用连接地址
TrustedProxies = 127.0.0.1,::1

# 博客后端 (anheyu-app) 地址
[Backend]
URL = http://127.0.0.1:8091
Timeout = 10s
RPS = 20

# Next.js 前端地址，除 API 外的页面请求都会被代理过去
[Frontend]
URL = http://127.0.0.1:3000
RevalidateToken =
Proxy = true

# 站点对外地址，后端站点配置中的 SITE_URL 优先
[Site]
URL =

# Publish 可选 none / local / s3
[Sitemap]
Cron = @every 1h
CacheTTL = 1h
Publish = none
LocalDir = data/public

[S3]
Bucket =
Region =
Endpoint =
AccessKey =
SecretKey =
Key = sitemap.xml
PathStyle = false

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0

[RateLimit]
RPS = 10
Burst = 30

# 后端调用 /api/revalidate 时需要携带的令牌，留空则关闭该接口
[Webhook]
Token =
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
