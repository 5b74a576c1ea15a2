/**
 * 区域管理处理器
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 处理区域指纹的增删查/学习/激活HTTP请求
 */
package zone

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"neozone/internal/core/fingerprint"
	"neozone/internal/core/model"
	"neozone/internal/model/base"
	"neozone/internal/service/locator"
	"neozone/internal/storage/zonestore"
)

// ZoneHandler 区域管理处理器接口
type ZoneHandler interface {
	ListZones(c *gin.Context)    // 列出全部区域
	GetZone(c *gin.Context)      // 查询单个区域
	CreateZone(c *gin.Context)   // 录制并创建新区域
	LearnZone(c *gin.Context)    // 为既有区域追加指纹
	DeleteZone(c *gin.Context)   // 删除区域
	ActivateZone(c *gin.Context) // 手动激活区域
}

// zoneHandler 区域管理处理器实现
type zoneHandler struct {
	store   *zonestore.Store
	scanner locator.WifiScanner
	locator *locator.Service
}

// NewZoneHandler 创建区域管理处理器实例
func NewZoneHandler(store *zonestore.Store, scanner locator.WifiScanner, svc *locator.Service) ZoneHandler {
	return &zoneHandler{
		store:   store,
		scanner: scanner,
		locator: svc,
	}
}

// createZoneRequest 创建区域请求体
type createZoneRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListZones 列出全部区域
// @Router /zones [get]
func (h *zoneHandler) ListZones(c *gin.Context) {
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "zone list",
		Data:    h.store.List(),
	})
}

// GetZone 查询单个区域
// @Router /zones/:name [get]
func (h *zoneHandler) GetZone(c *gin.Context) {
	z, err := h.store.Get(c.Param("name"))
	if err != nil {
		h.zoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "zone detail",
		Data:    z,
	})
}

// CreateZone 录制当前环境并创建新区域
// 执行一次扫描，将观测转为隐私化指纹后入库
// @Router /zones [post]
func (h *zoneHandler) CreateZone(c *gin.Context) {
	var req createZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, base.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "invalid request body",
			Error:   err.Error(),
		})
		return
	}

	fp, err := h.captureFingerprint(c)
	if err != nil {
		return // captureFingerprint 已写入响应
	}

	if err := h.store.Add(req.Name, fp); err != nil {
		h.zoneError(c, err)
		return
	}

	c.JSON(http.StatusCreated, base.APIResponse{
		Code:    http.StatusCreated,
		Status:  "success",
		Message: "zone created",
		Data: gin.H{
			"name":             req.Name,
			"networks":         len(fp.WifiNetworks),
			"confidence_score": fp.ConfidenceScore,
		},
	})
}

// LearnZone 为既有区域追加一条指纹
// 同一区域多次学习可覆盖不同时段的网络环境
// @Router /zones/:name/learn [post]
func (h *zoneHandler) LearnZone(c *gin.Context) {
	name := c.Param("name")

	fp, err := h.captureFingerprint(c)
	if err != nil {
		return
	}

	if err := h.store.AppendFingerprint(name, fp); err != nil {
		h.zoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "fingerprint learned",
		Data: gin.H{
			"name":             name,
			"networks":         len(fp.WifiNetworks),
			"confidence_score": fp.ConfidenceScore,
		},
	})
}

// DeleteZone 删除区域
// @Router /zones/:name [delete]
func (h *zoneHandler) DeleteZone(c *gin.Context) {
	if err := h.store.Remove(c.Param("name")); err != nil {
		h.zoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "zone deleted",
	})
}

// ActivateZone 手动激活区域 (不经过扫描匹配)
// @Router /zones/:name/activate [post]
func (h *zoneHandler) ActivateZone(c *gin.Context) {
	change, err := h.locator.Activate(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.zoneError(c, err)
		return
	}
	c.JSON(http.StatusOK, base.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "zone activated",
		Data:    change,
	})
}

// captureFingerprint 扫描当前环境并生成指纹，失败时写入错误响应
func (h *zoneHandler) captureFingerprint(c *gin.Context) (*model.ZoneFingerprint, error) {
	aps, err := h.scanner.Scan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, base.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "wifi scan failed",
			Error:   err.Error(),
		})
		return nil, err
	}
	return fingerprint.Capture(aps), nil
}

// zoneError 按错误类型映射HTTP状态码
func (h *zoneHandler) zoneError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrZoneNotFound):
		code = http.StatusNotFound
	case errors.Is(err, model.ErrZoneExists):
		code = http.StatusConflict
	}
	c.JSON(code, base.APIResponse{
		Code:    code,
		Status:  "failed",
		Message: "zone operation failed",
		Error:   err.Error(),
	})
}
