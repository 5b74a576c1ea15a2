/**
 * 限流中间件
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 基于令牌桶的按客户端IP限流
 */
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"neozone/internal/pkg/logger"
	"neozone/internal/pkg/utils"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 是否启用限流
	Enabled bool `json:"enabled"`

	// 每秒请求数限制
	RequestsPerSecond int `json:"requests_per_second"`

	// 突发请求数限制
	BurstSize int `json:"burst_size"`

	// 跳过限流的路径
	SkipPaths []string `json:"skip_paths"`
}

// RateLimitMiddleware 限流中间件
// 按客户端IP维护独立的令牌桶
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	limiters map[string]*tokenBucket
	mutex    sync.Mutex
}

// tokenBucket 令牌桶
type tokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimitMiddleware 创建限流中间件
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = &RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 50,
			BurstSize:         100,
			SkipPaths: []string{
				"/health",
				"/ping",
			},
		}
	}

	return &RateLimitMiddleware{
		config:   config,
		limiters: make(map[string]*tokenBucket),
	}
}

// Handler 限流处理器
func (m *RateLimitMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Enabled {
			c.Next()
			return
		}

		if m.shouldSkipRateLimit(c.Request.URL.Path) {
			c.Next()
			return
		}

		limiter := m.getLimiter(utils.GetClientIP(c))
		if !limiter.allow() {
			logger.Warnf("Rate limit exceeded for %s %s", c.Request.Method, c.Request.URL.Path)
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", m.config.RequestsPerSecond))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Rate limit exceeded",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// shouldSkipRateLimit 检查是否应该跳过限流
func (m *RateLimitMiddleware) shouldSkipRateLimit(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

// getLimiter 获取或创建客户端的令牌桶
func (m *RateLimitMiddleware) getLimiter(key string) *tokenBucket {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if limiter, exists := m.limiters[key]; exists {
		return limiter
	}

	limiter := &tokenBucket{
		tokens:     m.config.BurstSize,
		maxTokens:  m.config.BurstSize,
		refillRate: m.config.RequestsPerSecond,
		lastRefill: time.Now(),
	}
	m.limiters[key] = limiter
	return limiter
}

// allow 检查是否允许请求
func (t *tokenBucket) allow() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(t.lastRefill)
	tokensToAdd := int(elapsed.Seconds()) * t.refillRate

	if tokensToAdd > 0 {
		t.tokens = min(t.maxTokens, t.tokens+tokensToAdd)
		t.lastRefill = now
	}

	if t.tokens > 0 {
		t.tokens--
		return true
	}

	return false
}

// min 返回两个整数中的较小值
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// UpdateConfig 更新限流配置
func (m *RateLimitMiddleware) UpdateConfig(config *RateLimitConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.config = config
	// 清空现有限流器，强制重新创建
	m.limiters = make(map[string]*tokenBucket)

	logger.Info("Rate limit middleware config updated")

	return nil
}
