/**
 * 认证中间件
 * @author: Sun977
 * @date: 2026.02.14
 * @description: API Key 与 IP 白名单认证，本机守护进程默认只信任回环地址之外需要显式放行
 */
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"neozone/internal/pkg/logger"
	"neozone/internal/pkg/utils"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// API Key认证
	APIKey       string `json:"api_key"`
	APIKeyHeader string `json:"api_key_header"`

	// 白名单IP
	WhitelistIPs []string `json:"whitelist_ips"`

	// 跳过认证的路径
	SkipPaths []string `json:"skip_paths"`
}

// AuthMiddleware 认证中间件
type AuthMiddleware struct {
	config *AuthConfig
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(config *AuthConfig) *AuthMiddleware {
	if config == nil {
		config = &AuthConfig{
			APIKeyHeader: "X-API-Key",
			SkipPaths: []string{
				"/health",
				"/ping",
				"/version",
			},
		}
	}
	if config.APIKeyHeader == "" {
		config.APIKeyHeader = "X-API-Key"
	}

	return &AuthMiddleware{config: config}
}

// Handler 认证处理器
func (m *AuthMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if m.shouldSkipAuth(path) {
			c.Next()
			return
		}

		// 验证IP白名单
		clientIP := utils.GetClientIP(c)
		if !m.validateIPWhitelist(clientIP) {
			logger.Warnf("Auth: IP %s not in whitelist", clientIP)
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "IP not allowed",
			})
			c.Abort()
			return
		}

		// API Key 未配置时视为未启用 Key 认证 (本机回环场景)
		if m.config.APIKey != "" {
			if ok, reason := m.validateAPIKey(c); !ok {
				logger.Warnf("Auth: authentication failed: %s", reason)
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "unauthorized",
					"message": reason,
				})
				c.Abort()
				return
			}
		}

		logger.Debug("Auth: request authenticated")
		c.Next()
	}
}

// shouldSkipAuth 检查是否应该跳过认证
func (m *AuthMiddleware) shouldSkipAuth(path string) bool {
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// validateIPWhitelist 验证IP白名单
// 白名单为空时允许所有IP
func (m *AuthMiddleware) validateIPWhitelist(clientIP string) bool {
	if len(m.config.WhitelistIPs) == 0 {
		return true
	}

	for _, allowedIP := range m.config.WhitelistIPs {
		if clientIP == allowedIP {
			return true
		}
	}

	return false
}

// validateAPIKey 验证API Key
func (m *AuthMiddleware) validateAPIKey(c *gin.Context) (bool, string) {
	apiKey := c.GetHeader(m.config.APIKeyHeader)
	if apiKey == "" {
		return false, "missing api key"
	}

	if apiKey != m.config.APIKey {
		return false, "invalid api key"
	}

	return true, ""
}

// UpdateConfig 更新认证配置
func (m *AuthMiddleware) UpdateConfig(config *AuthConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.config = config
	logger.Info("Auth middleware config updated")

	return nil
}
