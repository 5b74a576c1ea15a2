/**
 * 健康检查路由
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 健康检查、存活探测与版本信息路由，不经过认证
 */
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"neozone/internal/pkg/version"
)

// registerHealthRoutes 注册健康检查路由
func (r *Router) registerHealthRoutes() {
	// 健康检查
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   version.GetVersion(),
		})
	})

	// 存活探测
	r.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 版本信息
	r.engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     version.GetVersion(),
			"api_version": version.APIVersion,
			"build_time":  version.BuildTime,
			"git_commit":  version.GitCommit,
		})
	})
}
