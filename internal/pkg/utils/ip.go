/**
 * 客户端IP工具
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 供认证/日志中间件提取并标准化客户端IP (白名单比较依赖标准形式)
 */
package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// NormalizeIP 标准化IP地址
// - 带端口的地址去掉端口
// - X-Forwarded-For 列表取第一个
// - IPv4-mapped IPv6 (::ffff:192.0.2.1) 转成纯 IPv4
// - 其余原样返回 (包括真 IPv6)
func NormalizeIP(input string) string {
	if input == "" {
		return ""
	}

	// X-Forwarded-For 可能是逗号分隔的代理链，最左侧为真实客户端
	ip := strings.TrimSpace(strings.Split(input, ",")[0])

	// 去掉端口 (host:port 或 [ipv6]:port)
	if h, _, err := net.SplitHostPort(ip); err == nil {
		ip = h
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}

	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}

	return parsed.String()
}

// GetClientIP 从Gin上下文获取标准化后的客户端IP
func GetClientIP(c *gin.Context) string {
	raw := c.GetHeader("X-Forwarded-For")
	if raw == "" {
		raw = c.GetHeader("X-Real-IP")
	}
	if raw == "" {
		raw = c.ClientIP()
	}
	return NormalizeIP(raw)
}
