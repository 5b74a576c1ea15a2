package fingerprint

import (
	"testing"

	"neozone/internal/core/model"
	"neozone/internal/pkg/utils"
)

func TestCapture(t *testing.T) {
	aps := []*model.AccessPoint{
		{SSID: "home-ap", BSSID: "74:4D:28:5F:F0:49", Signal: 94, Frequency: 5500},
		{SSID: "", BSSID: "AA:BB:CC:DD:EE:FF", Signal: 50, Frequency: 2412}, // 隐藏网络
		{SSID: "cafe", BSSID: "00:01:02:00:05:00", Signal: 79, Frequency: 2417},
	}
	fp := Capture(aps)

	// 隐藏网络被排除
	if len(fp.WifiNetworks) != 2 {
		t.Fatalf("指纹条目数量 = %d, want 2", len(fp.WifiNetworks))
	}

	// 原始 SSID 不落盘，只存 16 位哈希
	e := fp.WifiNetworks[0]
	if e.SSIDHash != utils.HashSSID("home-ap") {
		t.Errorf("SSIDHash = %q", e.SSIDHash)
	}
	if len(e.SSIDHash) != 16 {
		t.Errorf("哈希长度 = %d, want 16", len(e.SSIDHash))
	}
	if e.BSSIDPrefix != "74:4D:28" {
		t.Errorf("BSSIDPrefix = %q, want 厂商前缀", e.BSSIDPrefix)
	}
	if e.Signal != 94 || e.Frequency != 5500 {
		t.Errorf("Signal/Frequency = %d/%d", e.Signal, e.Frequency)
	}
	if fp.CreatedAt.IsZero() {
		t.Errorf("CreatedAt 未设置")
	}
}

func TestConfidenceBuckets(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{0, 0},
		{1, 0.3},
		{2, 0.3},
		{3, 0.6},
		{5, 0.6},
		{6, 0.8},
		{10, 0.8},
		{11, 0.9},
		{50, 0.9},
	}
	for _, c := range cases {
		if got := confidence(c.count); got != c.want {
			t.Errorf("confidence(%d) = %v, want %v", c.count, got, c.want)
		}
	}
}
