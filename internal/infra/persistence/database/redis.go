/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2025-10-24 16:40:18
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"log"

	"github.com/anzhiyu-c/anheyu-site/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient 根据配置创建 Redis 客户端。
// 未配置地址或连接失败时返回 nil 而不是 error，由缓存工厂降级到内存缓存。
func NewRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	redisAddr := cfg.GetString(config.KeyRedisAddr)
	if redisAddr == "" {
		log.Println("⚠️  Redis 地址未配置，将使用内存缓存")
		return nil
	}

	redisDB := cfg.GetInt(config.KeyRedisDB)
	if redisDB < 0 {
		log.Printf("⚠️  无效的 Redis.DB 值 %d，将使用内存缓存", redisDB)
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.GetString(config.KeyRedisPassword),
		DB:       redisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将使用内存缓存", redisAddr, redisDB, err)
		rdb.Close()
		return nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", redisAddr, redisDB)
	return rdb
}
