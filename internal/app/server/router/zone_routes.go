/**
 * 区域管理路由
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 区域指纹的增删查/学习/激活路由
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// registerZoneRoutes 注册区域管理路由
func (r *Router) registerZoneRoutes(group *gin.RouterGroup) {
	zoneGroup := group.Group("/zones")

	// 认证中间件
	if r.authMiddleware != nil {
		zoneGroup.Use(r.authMiddleware.Handler())
	}

	{
		// 列出全部区域
		zoneGroup.GET("", r.zoneHandler.ListZones)

		// 录制并创建新区域
		zoneGroup.POST("", r.zoneHandler.CreateZone)

		// 查询单个区域
		zoneGroup.GET("/:name", r.zoneHandler.GetZone)

		// 删除区域
		zoneGroup.DELETE("/:name", r.zoneHandler.DeleteZone)

		// 为既有区域追加指纹
		zoneGroup.POST("/:name/learn", r.zoneHandler.LearnZone)

		// 手动激活区域
		zoneGroup.POST("/:name/activate", r.zoneHandler.ActivateZone)
	}
}
