/**
 * 系统监控处理器
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 处理系统信息与资源使用情况的HTTP请求
 */
package monitor

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"neozone/internal/model/base"
	"neozone/internal/pkg/monitor"
)

// MonitorHandler 系统监控处理器接口
type MonitorHandler interface {
	GetSystemInfo(c *gin.Context)    // 获取主机静态信息
	GetResourceUsage(c *gin.Context) // 获取资源使用情况
}

// monitorHandler 系统监控处理器实现
type monitorHandler struct{}

// NewMonitorHandler 创建系统监控处理器实例
func NewMonitorHandler() MonitorHandler {
	return &monitorHandler{}
}

// GetSystemInfo 获取主机静态信息
// @Summary 获取主机静态信息
// @Tags 监控
// @Produce json
// @Success 200 {object} base.APIResponse
// @Router /monitor/system [get]
func (h *monitorHandler) GetSystemInfo(c *gin.Context) {
	info, err := monitor.GetHostInfo()
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "failed to collect host info",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "host info",
		Data: gin.H{
			"host": info,
			"runtime": gin.H{
				"go_version": runtime.Version(),
				"goroutines": runtime.NumGoroutine(),
			},
			"collected_at": time.Now(),
		},
	})
}

// GetResourceUsage 获取资源使用情况
// @Summary 获取资源使用情况
// @Tags 监控
// @Produce json
// @Success 200 {object} base.APIResponse
// @Router /monitor/resources [get]
func (h *monitorHandler) GetResourceUsage(c *gin.Context) {
	metrics, err := monitor.GetSystemMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "failed to collect system metrics",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "resource usage",
		Data: gin.H{
			"metrics":      metrics,
			"collected_at": time.Now(),
		},
	})
}
