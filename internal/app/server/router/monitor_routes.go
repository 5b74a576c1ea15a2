/**
 * 监控路由
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 系统信息与资源使用情况路由
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// registerMonitorRoutes 注册监控路由
func (r *Router) registerMonitorRoutes(group *gin.RouterGroup) {
	monitorGroup := group.Group("/monitor")

	// 认证中间件
	if r.authMiddleware != nil {
		monitorGroup.Use(r.authMiddleware.Handler())
	}

	{
		// 获取主机静态信息
		monitorGroup.GET("/system", r.monitorHandler.GetSystemInfo)

		// 获取资源使用情况
		monitorGroup.GET("/resources", r.monitorHandler.GetResourceUsage)
	}
}
