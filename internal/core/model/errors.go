/**
 * 核心错误定义
 * @author: Sun977
 * @date: 2026.02.10
 * @description: 解析与区域管理相关的错误类型
 */
package model

import "errors"

// 错误定义要简洁明了，消除特殊情况

var (
	// 解析相关错误
	ErrMalformedLine = errors.New("malformed scan line") // 单行无法分解为四个字段，调用方跳过该行继续

	// 区域存储相关错误
	ErrZoneNotFound = errors.New("zone not found") // 按名称查找区域失败
	ErrZoneExists   = errors.New("zone already exists")

	// 扫描器相关错误
	ErrNoWifiTool = errors.New("wifi scan tool not available") // nmcli 不存在或不可执行
)
