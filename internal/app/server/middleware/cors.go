/**
 * CORS中间件
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 跨域请求处理，供本机 Web 面板或调试工具访问 API
 */
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"neozone/internal/pkg/logger"
)

// CORSConfig CORS配置
type CORSConfig struct {
	// 是否启用CORS
	Enabled bool `json:"enabled"`

	// 是否允许所有源
	AllowAllOrigins bool `json:"allow_all_origins"`

	// 允许的源
	AllowOrigins []string `json:"allow_origins"`

	// 允许的方法
	AllowMethods []string `json:"allow_methods"`

	// 允许的头部
	AllowHeaders []string `json:"allow_headers"`

	// 暴露的头部
	ExposeHeaders []string `json:"expose_headers"`

	// 是否允许凭证
	AllowCredentials bool `json:"allow_credentials"`

	// 预检请求缓存时间
	MaxAge time.Duration `json:"max_age"`
}

// CORSMiddleware CORS中间件
type CORSMiddleware struct {
	config *CORSConfig
}

// NewCORSMiddleware 创建CORS中间件
func NewCORSMiddleware(config *CORSConfig) *CORSMiddleware {
	if config == nil {
		config = &CORSConfig{
			Enabled:         true,
			AllowAllOrigins: true,
			AllowMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodPut,
				http.MethodDelete,
				http.MethodOptions,
			},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"X-API-Key",
				"X-Request-ID",
			},
			ExposeHeaders: []string{
				"Content-Length",
				"X-Request-ID",
			},
			MaxAge: 12 * time.Hour,
		}
	}

	return &CORSMiddleware{config: config}
}

// Handler CORS处理器
func (m *CORSMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.Enabled {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")

		// 处理预检请求
		if c.Request.Method == http.MethodOptions {
			m.handlePreflightRequest(c, origin)
			return
		}

		m.setCORSHeaders(c, origin)
		c.Next()
	}
}

// handlePreflightRequest 处理预检请求
func (m *CORSMiddleware) handlePreflightRequest(c *gin.Context, origin string) {
	if !m.isOriginAllowed(origin) {
		logger.Warnf("CORS: preflight denied for origin %q", origin)
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	requestMethod := c.GetHeader("Access-Control-Request-Method")
	if !m.isMethodAllowed(requestMethod) {
		logger.Warnf("CORS: preflight method %q not allowed", requestMethod)
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}

	m.setCORSHeaders(c, origin)
	if m.config.MaxAge > 0 {
		c.Header("Access-Control-Max-Age", fmt.Sprintf("%.0f", m.config.MaxAge.Seconds()))
	}

	c.AbortWithStatus(http.StatusNoContent)
}

// setCORSHeaders 设置CORS头部
func (m *CORSMiddleware) setCORSHeaders(c *gin.Context, origin string) {
	if m.config.AllowAllOrigins {
		c.Header("Access-Control-Allow-Origin", "*")
	} else if m.isOriginAllowed(origin) {
		c.Header("Access-Control-Allow-Origin", origin)
	}

	if len(m.config.AllowMethods) > 0 {
		c.Header("Access-Control-Allow-Methods", strings.Join(m.config.AllowMethods, ", "))
	}

	if len(m.config.AllowHeaders) > 0 {
		c.Header("Access-Control-Allow-Headers", strings.Join(m.config.AllowHeaders, ", "))
	}

	if len(m.config.ExposeHeaders) > 0 {
		c.Header("Access-Control-Expose-Headers", strings.Join(m.config.ExposeHeaders, ", "))
	}

	if m.config.AllowCredentials {
		c.Header("Access-Control-Allow-Credentials", "true")
	}
}

// isOriginAllowed 检查源是否被允许
func (m *CORSMiddleware) isOriginAllowed(origin string) bool {
	if m.config.AllowAllOrigins {
		return true
	}

	if origin == "" {
		return false
	}

	for _, allowedOrigin := range m.config.AllowOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}

		// 支持 *.domain.com 形式的通配符
		if strings.HasPrefix(allowedOrigin, "*.") && strings.HasSuffix(origin, allowedOrigin[2:]) {
			return true
		}
	}

	return false
}

// isMethodAllowed 检查方法是否被允许
func (m *CORSMiddleware) isMethodAllowed(method string) bool {
	if method == "" {
		return false
	}

	for _, allowedMethod := range m.config.AllowMethods {
		if allowedMethod == method {
			return true
		}
	}

	return false
}

// UpdateConfig 更新CORS配置
func (m *CORSMiddleware) UpdateConfig(config *CORSConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	m.config = config
	logger.Info("CORS middleware config updated")

	return nil
}
