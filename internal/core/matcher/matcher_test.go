package matcher

import (
	"testing"

	"neozone/internal/core/model"
	"neozone/internal/pkg/utils"
)

// obs 构造测试观测
func obs(ssids ...string) []*model.AccessPoint {
	aps := make([]*model.AccessPoint, 0, len(ssids))
	for _, s := range ssids {
		aps = append(aps, &model.AccessPoint{SSID: s, BSSID: "AA:BB:CC:DD:EE:FF"})
	}
	return aps
}

// zone 构造单指纹测试区域
// 指纹侧按真实录制路径存储 ssid_hash，而非原始 SSID
func zone(name string, ssids ...string) model.Zone {
	entries := make([]model.FingerprintEntry, 0, len(ssids))
	for _, s := range ssids {
		entries = append(entries, model.FingerprintEntry{SSIDHash: utils.HashSSID(s)})
	}
	return model.Zone{
		Name:         name,
		Fingerprints: []model.ZoneFingerprint{{WifiNetworks: entries}},
	}
}

func TestMatch_ThresholdBoundary(t *testing.T) {
	m := NewMatcher(0)

	// Case 1: 交集 4 / 并集 5 = 0.8，阈值为闭区间，应命中
	zones := []model.Zone{zone("home", "net-a", "net-b", "net-c", "net-d", "net-e")}
	result := m.Match(obs("net-a", "net-b", "net-c", "net-d"), zones)
	if !result.Matched {
		t.Errorf("Case 1 Failed: 0.8 恰好等于阈值，应命中")
	}
	if result.Similarity != 0.8 {
		t.Errorf("Case 1 Failed: Similarity = %v, want 0.8", result.Similarity)
	}

	// Case 2: 交集 3 / 并集 4 = 0.75，低于阈值，不命中
	zones = []model.Zone{zone("home", "net-a", "net-b", "net-c", "net-d")}
	result = m.Match(obs("net-a", "net-b", "net-c"), zones)
	if result.Matched {
		t.Errorf("Case 2 Failed: 0.75 低于阈值，不应命中")
	}

	// Case 3: 完全一致 = 1.0
	zones = []model.Zone{zone("home", "net-a", "net-b")}
	result = m.Match(obs("net-a", "net-b"), zones)
	if !result.Matched || result.Similarity != 1.0 {
		t.Errorf("Case 3 Failed: Matched = %v, Similarity = %v", result.Matched, result.Similarity)
	}
}

func TestMatch_EmptySets(t *testing.T) {
	m := NewMatcher(0)

	// Case 1: 空区域集，正常的"未匹配"，不是错误
	result := m.Match(obs("net-a"), nil)
	if result.Matched {
		t.Errorf("Case 1 Failed: 空区域集不应命中")
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Case 1 Failed: 空区域集不应产生诊断明细")
	}

	// Case 2: 两侧都为空，并集为空，相似度定义为 0，不除零
	zones := []model.Zone{zone("empty")}
	result = m.Match(nil, zones)
	if result.Matched {
		t.Errorf("Case 2 Failed: 空集对空集不应命中")
	}
	if result.Diagnostics[0].Similarity != 0 {
		t.Errorf("Case 2 Failed: 空并集相似度应为 0, got %v", result.Diagnostics[0].Similarity)
	}

	// Case 3: 观测中仅有隐藏网络 (SSID 为空)，等价于空观测
	zones = []model.Zone{zone("home", "net-a")}
	result = m.Match(obs("", ""), zones)
	if result.Matched {
		t.Errorf("Case 3 Failed: 隐藏网络不参与比较")
	}
	if result.Diagnostics[0].Union != 1 {
		t.Errorf("Case 3 Failed: Union = %d, want 1", result.Diagnostics[0].Union)
	}
}

func TestMatch_HashNormalization(t *testing.T) {
	m := NewMatcher(0)

	// Case 1: 观测侧现场哈希后与存储的 ssid_hash 前缀比较，同名 SSID 必须命中
	zones := []model.Zone{zone("office", "longname-A")}
	result := m.Match(obs("longname-A"), zones)
	if !result.Matched || result.Similarity != 1.0 {
		t.Errorf("Case 1 Failed: 同名 SSID 应命中, diagnostics = %+v", result.Diagnostics)
	}

	// Case 2: 原始 SSID 前缀相同但哈希不同的网络不能混同
	result = m.Match(obs("longname-B"), zones)
	if result.Matched {
		t.Errorf("Case 2 Failed: 不同 SSID 的哈希前缀不应相等")
	}

	// Case 3: 指纹侧存了原始 SSID 而非哈希时不应命中 (两侧语言不一致属于录制错误)
	badZone := model.Zone{
		Name:         "raw",
		Fingerprints: []model.ZoneFingerprint{{WifiNetworks: []model.FingerprintEntry{{SSIDHash: "net-a"}}}},
	}
	result = m.Match(obs("net-a"), []model.Zone{badZone})
	if result.Matched {
		t.Errorf("Case 3 Failed: 原始 SSID 不应与哈希前缀相等")
	}

	// Case 4: 不足 8 字符的标识符原样参与比较
	if NormalizeIdentifier("ab") != "ab" {
		t.Errorf("Case 4 Failed: 短标识符不应被截断")
	}
	if NormalizeIdentifier("abcdefghij") != "abcdefgh" {
		t.Errorf("Case 4 Failed: 长标识符应截取前 8 字符")
	}
}

func TestMatch_BestZoneSelection(t *testing.T) {
	m := NewMatcher(0)

	// Case 1: 多区域命中时取相似度最高者
	zones := []model.Zone{
		zone("partial", "net-a", "net-b", "net-c", "net-d", "net-e"), // 4/5 = 0.8
		zone("exact", "net-a", "net-b", "net-c", "net-d"),            // 4/4 = 1.0
	}
	result := m.Match(obs("net-a", "net-b", "net-c", "net-d"), zones)
	if result.ZoneName != "exact" {
		t.Errorf("Case 1 Failed: ZoneName = %q, want exact", result.ZoneName)
	}

	// Case 2: 同分时取先定义的区域，结果必须确定
	zones = []model.Zone{
		zone("first", "net-a", "net-b"),
		zone("second", "net-a", "net-b"),
	}
	for i := 0; i < 10; i++ {
		result = m.Match(obs("net-a", "net-b"), zones)
		if result.ZoneName != "first" {
			t.Fatalf("Case 2 Failed: 第 %d 次得到 %q, 同分应取先定义的区域", i, result.ZoneName)
		}
	}

	// Case 3: 区域内多条指纹，任一命中即区域命中，取最佳指纹下标
	z := model.Zone{
		Name: "multi",
		Fingerprints: []model.ZoneFingerprint{
			{WifiNetworks: []model.FingerprintEntry{{SSIDHash: utils.HashSSID("net-x")}}}, // 0/3 = 0
			{WifiNetworks: []model.FingerprintEntry{
				{SSIDHash: utils.HashSSID("net-a")},
				{SSIDHash: utils.HashSSID("net-b")},
			}}, // 2/2 = 1.0
		},
	}
	result = m.Match(obs("net-a", "net-b"), []model.Zone{z})
	if !result.Matched || result.FingerprintIndex != 1 {
		t.Errorf("Case 3 Failed: Matched = %v, FingerprintIndex = %d", result.Matched, result.FingerprintIndex)
	}
}

func TestMatch_Diagnostics(t *testing.T) {
	m := NewMatcher(0)
	zones := []model.Zone{
		zone("home", "net-a", "net-b", "net-c", "net-d"),
	}
	result := m.Match(obs("net-a", "net-b", "net-c"), zones)

	if len(result.Diagnostics) != 1 {
		t.Fatalf("诊断明细数量 = %d, want 1", len(result.Diagnostics))
	}
	d := result.Diagnostics[0]
	if d.Intersection != 3 || d.Union != 4 {
		t.Errorf("Intersection/Union = %d/%d, want 3/4", d.Intersection, d.Union)
	}
	if d.Similarity != 0.75 {
		t.Errorf("Similarity = %v, want 0.75", d.Similarity)
	}
	if d.Matched {
		t.Errorf("0.75 不应标记为命中")
	}
	// 未命中时整体结果也不命中，但明细保留
	if result.Matched {
		t.Errorf("整体结果不应命中")
	}
}

func TestMatcher_CustomThreshold(t *testing.T) {
	// 阈值 0.5: 交集 3 / 并集 4 = 0.75 即可命中
	m := NewMatcher(0.5)
	zones := []model.Zone{zone("home", "net-a", "net-b", "net-c", "net-d")}
	result := m.Match(obs("net-a", "net-b", "net-c"), zones)
	if !result.Matched {
		t.Errorf("阈值 0.5 下 0.75 应命中")
	}
	if m.Threshold() != 0.5 {
		t.Errorf("Threshold() = %v, want 0.5", m.Threshold())
	}
}
