/**
 * 定位处理器
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 处理定位状态查询与手动检测的HTTP请求
 */
package location

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"neozone/internal/model/base"
	"neozone/internal/service/locator"
)

// LocationHandler 定位处理器接口
type LocationHandler interface {
	GetStatus(c *gin.Context) // 获取当前定位状态
	Detect(c *gin.Context)    // 手动触发一轮检测
}

// locationHandler 定位处理器实现
type locationHandler struct {
	locator *locator.Service
}

// NewLocationHandler 创建定位处理器实例
func NewLocationHandler(svc *locator.Service) LocationHandler {
	return &locationHandler{locator: svc}
}

// GetStatus 获取当前定位状态
// @Summary 获取当前定位状态
// @Description 返回当前区域、累计切换次数
// @Tags 定位
// @Produce json
// @Success 200 {object} base.APIResponse
// @Router /location/status [get]
func (h *locationHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "current location status",
		Data:    h.locator.Status(),
	})
}

// Detect 手动触发一轮检测
// @Summary 手动触发一轮检测
// @Description 立即执行 扫描->匹配->状态更新，返回匹配结果与诊断明细
// @Tags 定位
// @Produce json
// @Success 200 {object} base.APIResponse
// @Failure 500 {object} base.APIResponse
// @Router /location/detect [post]
func (h *locationHandler) Detect(c *gin.Context) {
	result, change, err := h.locator.DetectOnce(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "detection failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "detection completed",
		Data: gin.H{
			"result":      result,
			"change":      change,
			"detected_at": time.Now(),
		},
	})
}
