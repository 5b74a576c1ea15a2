package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSSID 对 SSID 做 SHA-256 并截取前 16 位十六进制
// 指纹库只存哈希不存原文，16 位足以区分且节省空间
func HashSSID(ssid string) string {
	sum := sha256.Sum256([]byte(ssid))
	return hex.EncodeToString(sum[:])[:16]
}

// BSSIDPrefix 截取 MAC 地址的厂商前缀 (前三组，即 "AA:BB:CC")
// 输入过短时原样返回
func BSSIDPrefix(bssid string) string {
	const prefixLen = 8 // "AA:BB:CC"
	if len(bssid) > prefixLen {
		return bssid[:prefixLen]
	}
	return bssid
}
