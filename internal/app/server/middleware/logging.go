/**
 * 日志中间件
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 记录HTTP请求和响应信息，标记慢请求
 */
package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"neozone/internal/pkg/logger"
	"neozone/internal/pkg/utils"
)

// LoggingConfig 日志配置
type LoggingConfig struct {
	// 是否启用请求日志
	EnableRequestLog bool `json:"enable_request_log"`

	// 是否启用响应日志
	EnableResponseLog bool `json:"enable_response_log"`

	// 跳过日志的路径
	SkipPaths []string `json:"skip_paths"`

	// 慢请求阈值
	SlowRequestThreshold time.Duration `json:"slow_request_threshold"`
}

// LoggingMiddleware 日志中间件
type LoggingMiddleware struct {
	config *LoggingConfig
}

// NewLoggingMiddleware 创建日志中间件
func NewLoggingMiddleware(config *LoggingConfig) *LoggingMiddleware {
	if config == nil {
		config = &LoggingConfig{
			EnableRequestLog:     true,
			EnableResponseLog:    true,
			SlowRequestThreshold: 2 * time.Second,
			SkipPaths: []string{
				"/health",
				"/ping",
			},
		}
	}

	return &LoggingMiddleware{config: config}
}

// Handler 日志处理器
func (m *LoggingMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		if m.shouldSkipLogging(path) {
			c.Next()
			return
		}

		if m.config.EnableRequestLog {
			logger.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   path,
				"query":  c.Request.URL.RawQuery,
				"ip":     utils.GetClientIP(c),
			}).Debug("HTTP request")
		}

		c.Next()

		duration := time.Since(startTime)

		if m.config.EnableResponseLog {
			entry := logger.WithFields(logrus.Fields{
				"method":   c.Request.Method,
				"path":     path,
				"status":   c.Writer.Status(),
				"size":     c.Writer.Size(),
				"duration": duration.String(),
			})

			// 根据状态码选择日志级别
			switch {
			case c.Writer.Status() >= 500:
				entry.Error("HTTP response")
			case c.Writer.Status() >= 400:
				entry.Warn("HTTP response")
			default:
				entry.Info("HTTP response")
			}
		}

		if duration > m.config.SlowRequestThreshold {
			logger.Warnf("Slow request: %s %s took %s", c.Request.Method, path, duration)
		}
	}
}

// shouldSkipLogging 检查是否应该跳过日志
func (m *LoggingMiddleware) shouldSkipLogging(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

// UpdateConfig 更新日志配置
func (m *LoggingMiddleware) UpdateConfig(config *LoggingConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.config = config
	logger.Info("Logging middleware config updated")

	return nil
}
