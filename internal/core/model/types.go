/**
 * 核心数据模型定义
 * @author: Sun977
 * @date: 2026.02.10
 * @description: 定义 WiFi 观测、区域指纹、匹配结果等核心结构
 */
package model

import (
	"fmt"
	"time"
)

// AccessPoint 一次扫描中观测到的单个无线接入点
// 每轮扫描重新生成，匹配一轮后即丢弃，不做持久化
type AccessPoint struct {
	SSID       string `json:"ssid"`                 // 网络名称，可能为空
	BSSID      string `json:"bssid"`                // 标准 MAC 形式 (六组十六进制，冒号分隔)
	Signal     int    `json:"signal"`               // 信号强度 0-100
	Frequency  int    `json:"frequency"`            // 频率 (MHz)
	Suspicious bool   `json:"suspicious,omitempty"` // BSSID 转义冒号数量异常时置位，由调用方记录日志
}

// Headers 实现 TabularData 接口
// SSID             | BSSID             | Signal | Freq
// trucmuche (5Ghz) | 74:4D:28:5F:F0:49 | 94     | 5500
func (ap AccessPoint) Headers() []string {
	return []string{"SSID", "BSSID", "Signal", "Freq(MHz)"}
}

// Rows 实现 TabularData 接口
func (ap AccessPoint) Rows() [][]string {
	ssid := ap.SSID
	if ssid == "" {
		ssid = "<hidden>"
	}
	return [][]string{{
		ssid,
		ap.BSSID,
		fmt.Sprintf("%d", ap.Signal),
		fmt.Sprintf("%d", ap.Frequency),
	}}
}

// FingerprintEntry 区域指纹中的单个接入点记录 (隐私化存储)
// SSIDHash 为 SSID 的 SHA-256 前16位十六进制，不保存原始 SSID
type FingerprintEntry struct {
	SSIDHash    string `json:"ssid_hash"`
	BSSIDPrefix string `json:"bssid_prefix,omitempty"` // 厂商前缀 (前三组)
	Signal      int    `json:"signal,omitempty"`
	Frequency   int    `json:"frequency,omitempty"`
}

// ZoneFingerprint 区域在某一时刻的一次"印象"
// 同一区域会随时间积累多条指纹
type ZoneFingerprint struct {
	WifiNetworks    []FingerprintEntry `json:"wifi_networks"`
	ConfidenceScore float64            `json:"confidence_score"` // 录制时的置信度，仅供参考，不参与匹配判定
	CreatedAt       time.Time          `json:"created_at"`
}

// Zone 一个具名物理区域 (home/office/...)
type Zone struct {
	Name         string            `json:"name"`
	Fingerprints []ZoneFingerprint `json:"fingerprints"`
	CreatedAt    time.Time         `json:"created_at"`
	LastMatched  *time.Time        `json:"last_matched,omitempty"`
	MatchCount   int               `json:"match_count"`
}

// FingerprintDiagnostic 单条指纹的评估明细
// 中间量全部外显，便于调试和测试断言
type FingerprintDiagnostic struct {
	ZoneName         string  `json:"zone_name"`
	FingerprintIndex int     `json:"fingerprint_index"`
	Intersection     int     `json:"intersection"`
	Union            int     `json:"union"`
	Similarity       float64 `json:"similarity"`
	Matched          bool    `json:"matched"`
}

// Headers 实现 TabularData 接口
func (d FingerprintDiagnostic) Headers() []string {
	return []string{"Zone", "FP#", "Intersect", "Union", "Similarity", "Matched"}
}

// Rows 实现 TabularData 接口
func (d FingerprintDiagnostic) Rows() [][]string {
	matched := "NO"
	if d.Matched {
		matched = "YES"
	}
	return [][]string{{
		d.ZoneName,
		fmt.Sprintf("%d", d.FingerprintIndex),
		fmt.Sprintf("%d", d.Intersection),
		fmt.Sprintf("%d", d.Union),
		fmt.Sprintf("%.3f", d.Similarity),
		matched,
	}}
}

// MatchResult 一轮匹配的最终结果
// Matched 为 false 时表示 "未检测到任何区域"，这是正常状态而非错误
type MatchResult struct {
	Matched  bool   `json:"matched"`
	ZoneName string `json:"zone_name,omitempty"`
	// 下标与相似度不可 omitempty: 命中下标 0 的合法结果必须与"字段缺失"可区分
	FingerprintIndex int                     `json:"fingerprint_index"`
	Similarity       float64                 `json:"similarity"`
	Diagnostics      []FingerprintDiagnostic `json:"diagnostics,omitempty"`
}

// Headers 实现 TabularData 接口
func (r MatchResult) Headers() []string {
	return []string{"Matched", "Zone", "FP#", "Similarity"}
}

// Rows 实现 TabularData 接口
func (r MatchResult) Rows() [][]string {
	if !r.Matched {
		return [][]string{{"NO", "-", "-", "-"}}
	}
	return [][]string{{
		"YES",
		r.ZoneName,
		fmt.Sprintf("%d", r.FingerprintIndex),
		fmt.Sprintf("%.3f", r.Similarity),
	}}
}

// LocationChange 区域切换事件
type LocationChange struct {
	From       string    `json:"from,omitempty"` // 为空表示此前未定位到任何区域
	To         string    `json:"to"`
	Similarity float64   `json:"similarity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DaemonState 守护进程的跨轮次状态
type DaemonState struct {
	CurrentZone      string     `json:"current_zone,omitempty"`
	TotalZoneChanges int        `json:"total_zone_changes"`
	LastScan         *time.Time `json:"last_scan,omitempty"`
}
