/**
 * 区域事件发布器
 * @author: Sun977
 * @date: 2026.02.13
 * @description: 将区域切换事件发布到 Redis channel，供其他进程订阅联动 (可选能力)
 */
package locator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"neozone/internal/config"
	"neozone/internal/core/model"
	"neozone/internal/pkg/logger"
)

// Publisher 区域切换事件发布接口
type Publisher interface {
	PublishChange(ctx context.Context, change *model.LocationChange) error
	Close() error
}

// noopPublisher Redis 未启用时的空实现
type noopPublisher struct{}

func (noopPublisher) PublishChange(context.Context, *model.LocationChange) error { return nil }
func (noopPublisher) Close() error                                               { return nil }

// redisPublisher 基于 Redis PUBLISH 的实现
type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher 根据配置创建事件发布器
// Redis 未启用时返回空实现，调用方无需判空
func NewPublisher(cfg *config.RedisConfig) (Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return noopPublisher{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 启动时探活，连不上直接报错而不是静默吞掉后续事件
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Infof("Event publisher: redis %s channel %s", cfg.Addr, cfg.Channel)
	return &redisPublisher{client: client, channel: cfg.Channel}, nil
}

func (p *redisPublisher) PublishChange(ctx context.Context, change *model.LocationChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to serialize location change: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish location change: %w", err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}
