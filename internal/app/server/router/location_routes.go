/**
 * 定位路由
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 定位状态查询与手动检测路由
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// registerLocationRoutes 注册定位路由
func (r *Router) registerLocationRoutes(group *gin.RouterGroup) {
	locationGroup := group.Group("/location")

	// 认证中间件
	if r.authMiddleware != nil {
		locationGroup.Use(r.authMiddleware.Handler())
	}

	{
		// 获取当前定位状态
		locationGroup.GET("/status", r.locationHandler.GetStatus)

		// 手动触发一轮检测
		locationGroup.POST("/detect", r.locationHandler.Detect)
	}
}
