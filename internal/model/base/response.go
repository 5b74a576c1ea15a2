/**
 * 通用响应结构体
 * @author: Sun977
 * @date: 2026.02.14
 * @description: NeoZone API 统一响应信封，包含状态码、状态、消息、数据、错误信息
 */

package base

// APIResponse 通用API响应结构
// 区域指纹库规模固定为个位数条目，列表接口不做分页
type APIResponse struct {
	Code    int         `json:"code"`            // 响应状态码
	Status  string      `json:"status"`          // 响应状态："success" 或 "failed"
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据，可选
	Error   string      `json:"error,omitempty"` // 错误信息，可选
}
