/**
 * 区域指纹采集
 * @author: Sun977
 * @date: 2026.02.11
 * @description: 将一次扫描观测转换为可持久化的区域指纹 (隐私化 + 置信度评估)
 */
package fingerprint

import (
	"time"

	"neozone/internal/core/model"
	"neozone/internal/pkg/utils"
)

// Capture 从一次扫描观测生成区域指纹
// SSID 只保留哈希，BSSID 只保留厂商前缀，原始标识符不落盘
func Capture(aps []*model.AccessPoint) *model.ZoneFingerprint {
	entries := make([]model.FingerprintEntry, 0, len(aps))
	for _, ap := range aps {
		if ap.SSID == "" {
			// 隐藏网络无法稳定参与匹配，录制时直接排除
			continue
		}
		entries = append(entries, model.FingerprintEntry{
			SSIDHash:    utils.HashSSID(ap.SSID),
			BSSIDPrefix: utils.BSSIDPrefix(ap.BSSID),
			Signal:      ap.Signal,
			Frequency:   ap.Frequency,
		})
	}
	return &model.ZoneFingerprint{
		WifiNetworks:    entries,
		ConfidenceScore: confidence(len(entries)),
		CreatedAt:       time.Now(),
	}
}

// confidence 按可见网络数量分档评估指纹质量
// 网络越多指纹越独特，录制质量越高；该值仅供参考，不参与匹配判定
func confidence(count int) float64 {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 0.3
	case count <= 5:
		return 0.6
	case count <= 10:
		return 0.8
	default:
		return 0.9
	}
}
