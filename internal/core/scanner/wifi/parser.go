/**
 * WiFi 扫描输出解析器
 * @author: Sun977
 * @date: 2026.02.10
 * @description: 解析 nmcli 风格的冒号分隔、反斜杠转义输出 (SSID:BSSID:SIGNAL:FREQ)
 */
package wifi

import (
	"fmt"
	"strconv"
	"strings"

	"neozone/internal/core/model"
)

// 行格式: SSID:BSSID:SIGNAL:FREQ
// 难点在于 BSSID 自身包含冒号 (MAC 地址分隔符)，nmcli 输出时将其转义为 `\:`；
// 而 SSID 字段由 nmcli 的字段编码保证不含字面冒号，无需转义。
// 因此 SSID 终结符是整行第一个冒号，BSSID 终结符是尾部第一个"未转义"冒号。

// 一个规范 MAC 地址在转义形态下恰好贡献 5 个转义冒号
const macEscapedColons = 5

// ParseLine 解析单行扫描输出为一个接入点观测
// 纯函数，无副作用；失败返回 model.ErrMalformedLine，调用方应跳过该行继续
func ParseLine(line string) (*model.AccessPoint, error) {
	// 1. 定位 SSID 终结符: 整行第一个冒号 (SSID 不参与转义，是否有反斜杠无关紧要)
	ssidEnd := strings.IndexByte(line, ':')
	if ssidEnd < 0 {
		return nil, fmt.Errorf("%w: no field separator in %q", model.ErrMalformedLine, line)
	}
	ssid := strings.TrimSpace(line[:ssidEnd])
	tail := line[ssidEnd+1:]

	// 2. 定位 BSSID 终结符: 尾部第一个未转义冒号
	bssidEnd, escaped, ok := findBSSIDEnd(tail)
	if !ok {
		return nil, fmt.Errorf("%w: no bssid terminator in %q", model.ErrMalformedLine, line)
	}

	// 3. 还原 BSSID: 把 `\:` 还原为字面 `:`
	bssid := strings.ReplaceAll(strings.TrimSpace(tail[:bssidEnd]), `\:`, ":")

	// 4. 剩余部分按冒号切分: signal 和 frequency (二者不会包含冒号)
	// 超过两段的多余部分直接忽略
	rest := strings.Split(tail[bssidEnd+1:], ":")
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: expected signal and frequency in %q", model.ErrMalformedLine, line)
	}

	signal, err := strconv.Atoi(strings.TrimSpace(rest[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad signal %q", model.ErrMalformedLine, rest[0])
	}

	// 频率字段常带 "MHz" 之类的单位后缀，截取前导整数
	freq, err := parseLeadingInt(rest[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad frequency %q", model.ErrMalformedLine, rest[1])
	}

	return &model.AccessPoint{
		SSID:      ssid,
		BSSID:     bssid,
		Signal:    signal,
		Frequency: freq,
		// 转义冒号数量偏离规范 MAC 时仍接受 (尽力而为)，但标记为可疑，由上层记日志
		Suspicious: escaped != macEscapedColons,
	}, nil
}

// findBSSIDEnd 在尾部定位 BSSID 字段的终结冒号
// 显式双状态扫描 (normal / just-saw-backslash)，不用正则，保证畸形输入下行为可审计：
// 前一个字符是反斜杠的冒号属于 MAC 地址本体，只计数不终结；
// 第一个未转义冒号无条件终结 BSSID 字段，无论之前见过多少转义冒号。
// 返回终结符下标、转义冒号计数，以及是否找到
func findBSSIDEnd(tail string) (end int, escaped int, ok bool) {
	prevBackslash := false
	for i := 0; i < len(tail); i++ {
		switch tail[i] {
		case ':':
			if prevBackslash {
				escaped++
			} else {
				return i, escaped, true
			}
			prevBackslash = false
		case '\\':
			prevBackslash = true
		default:
			prevBackslash = false
		}
	}
	return 0, escaped, false
}

// parseLeadingInt 截取字符串的前导整数
// "5500 MHz" -> 5500; 无前导数字视为解析失败
func parseLeadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("no leading digits in %q", s)
	}
	return strconv.Atoi(s[:end])
}

// ParseOutput 解析整段扫描输出
// 逐行解析，空行与畸形行直接跳过并计数，单行失败不影响整体
func ParseOutput(raw string) (aps []*model.AccessPoint, skipped int) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ap, err := ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		aps = append(aps, ap)
	}
	return aps, skipped
}
