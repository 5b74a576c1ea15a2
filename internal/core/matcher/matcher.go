/**
 * 区域指纹匹配引擎
 * @author: Sun977
 * @date: 2026.02.11
 * @description: 以 Jaccard 相似度将当前观测与存储的区域指纹比对，给出区域判定
 */
package matcher

import (
	"neozone/internal/core/model"
	"neozone/internal/pkg/utils"
)

const (
	// DefaultThreshold 默认判定阈值，闭区间: similarity >= 阈值即命中
	DefaultThreshold = 0.8

	// prefixLength 标识符归一化长度
	// 指纹库存储的是 ssid_hash，观测侧必须先做同样的哈希再取前缀，
	// 两侧使用同一规则后才可比较；拿原始 SSID 去比哈希属于正确性 bug 而非匹配未命中。
	prefixLength = 8
)

// Matcher 指纹匹配器
// 无状态，单次调用内完成全部计算，可并发复用
type Matcher struct {
	threshold float64
}

// NewMatcher 创建匹配器
// threshold <= 0 时使用默认阈值
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// NormalizeIdentifier 将标识符归一化为定长前缀
// 两侧的 ssid_hash (观测侧现场计算，指纹侧取自存储) 都经过此函数后才可比较
func NormalizeIdentifier(id string) string {
	runes := []rune(id)
	if len(runes) > prefixLength {
		return string(runes[:prefixLength])
	}
	return id
}

// observationSet 构建当前观测的归一化标识符集合
// SSID 为空的观测整体排除，不参与比较。
// 观测侧 SSID 先做与录制时相同的哈希，再归一化，保证与存储的 ssid_hash 同构。
func observationSet(aps []*model.AccessPoint) map[string]struct{} {
	set := make(map[string]struct{}, len(aps))
	for _, ap := range aps {
		if ap.SSID == "" {
			continue
		}
		set[NormalizeIdentifier(utils.HashSSID(ap.SSID))] = struct{}{}
	}
	return set
}

// fingerprintSet 构建指纹侧的归一化标识符集合
func fingerprintSet(fp *model.ZoneFingerprint) map[string]struct{} {
	set := make(map[string]struct{}, len(fp.WifiNetworks))
	for _, net := range fp.WifiNetworks {
		set[NormalizeIdentifier(net.SSIDHash)] = struct{}{}
	}
	return set
}

// jaccard 计算两个集合的交集、并集与 Jaccard 相似度
// 并集为空时相似度为 0，不会出现除零
func jaccard(a, b map[string]struct{}) (intersection, union int, similarity float64) {
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union = len(a) + len(b) - intersection
	if union > 0 {
		similarity = float64(intersection) / float64(union)
	}
	return intersection, union, similarity
}

// Match 将当前观测与全部区域比对，返回最佳匹配
// 任何指纹命中即认为该区域命中；多区域命中时取最佳指纹相似度最高者，
// 相同相似度按入参顺序取先定义的区域 (稳定、确定，无随机性)。
// 空区域集或空观测集得到 "未匹配"，不是错误。
func (m *Matcher) Match(aps []*model.AccessPoint, zones []model.Zone) *model.MatchResult {
	result := &model.MatchResult{}
	current := observationSet(aps)

	bestSim := -1.0
	for _, zone := range zones {
		for i := range zone.Fingerprints {
			intersection, union, sim := jaccard(current, fingerprintSet(&zone.Fingerprints[i]))
			matched := sim >= m.threshold

			result.Diagnostics = append(result.Diagnostics, model.FingerprintDiagnostic{
				ZoneName:         zone.Name,
				FingerprintIndex: i,
				Intersection:     intersection,
				Union:            union,
				Similarity:       sim,
				Matched:          matched,
			})

			// 严格大于保证同分时先定义的区域/指纹胜出
			if matched && sim > bestSim {
				bestSim = sim
				result.Matched = true
				result.ZoneName = zone.Name
				result.FingerprintIndex = i
				result.Similarity = sim
			}
		}
	}

	return result
}

// Threshold 返回当前判定阈值
func (m *Matcher) Threshold() float64 {
	return m.threshold
}
