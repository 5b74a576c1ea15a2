package wifi

import (
	"errors"
	"testing"

	"neozone/internal/core/model"
)

func TestParseLine_StandardLines(t *testing.T) {
	// Case 1: 带空格和括号的 SSID + 规范转义 MAC + 带单位的频率
	ap, err := ParseLine(`trucmuche (5Ghz):74\:4D\:28\:5F\:F0\:49:94:5500 MHz`)
	if err != nil {
		t.Fatalf("Case 1 Error: %v", err)
	}
	if ap.SSID != "trucmuche (5Ghz)" {
		t.Errorf("Case 1 Failed: SSID = %q", ap.SSID)
	}
	if ap.BSSID != "74:4D:28:5F:F0:49" {
		t.Errorf("Case 1 Failed: BSSID = %q", ap.BSSID)
	}
	if ap.Signal != 94 {
		t.Errorf("Case 1 Failed: Signal = %d", ap.Signal)
	}
	if ap.Frequency != 5500 {
		t.Errorf("Case 1 Failed: Frequency = %d", ap.Frequency)
	}
	if ap.Suspicious {
		t.Errorf("Case 1 Failed: 规范 MAC 不应标记为可疑")
	}

	// Case 2: 无空格 SSID
	ap, err = ParseLine(`FreeWifi_secure:00\:01\:02\:00\:05\:00:79:2417 MHz`)
	if err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	if ap.SSID != "FreeWifi_secure" || ap.BSSID != "00:01:02:00:05:00" {
		t.Errorf("Case 2 Failed: SSID = %q, BSSID = %q", ap.SSID, ap.BSSID)
	}
	if ap.Signal != 79 || ap.Frequency != 2417 {
		t.Errorf("Case 2 Failed: Signal = %d, Frequency = %d", ap.Signal, ap.Frequency)
	}
}

func TestParseLine_EmptySSID(t *testing.T) {
	// 隐藏网络: SSID 字段为空，行以冒号开头，仍是合法行
	ap, err := ParseLine(`:AA\:BB\:CC\:DD\:EE\:FF:50:2412 MHz`)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if ap.SSID != "" {
		t.Errorf("Failed: 隐藏网络 SSID 应为空, got %q", ap.SSID)
	}
	if ap.BSSID != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Failed: BSSID = %q", ap.BSSID)
	}
}

func TestParseLine_SuspiciousBSSID(t *testing.T) {
	// Case 1: 转义冒号少于 5 个，接受但标记可疑
	ap, err := ParseLine(`net:AA\:BB\:CC:60:2437 MHz`)
	if err != nil {
		t.Fatalf("Case 1 Error: %v", err)
	}
	if ap.BSSID != "AA:BB:CC" {
		t.Errorf("Case 1 Failed: BSSID = %q", ap.BSSID)
	}
	if !ap.Suspicious {
		t.Errorf("Case 1 Failed: 2 个转义冒号应标记为可疑")
	}

	// Case 2: 转义冒号多于 5 个，同样接受但标记可疑
	ap, err = ParseLine(`net:AA\:BB\:CC\:DD\:EE\:FF\:11:60:2437 MHz`)
	if err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	if ap.BSSID != "AA:BB:CC:DD:EE:FF:11" {
		t.Errorf("Case 2 Failed: BSSID = %q", ap.BSSID)
	}
	if !ap.Suspicious {
		t.Errorf("Case 2 Failed: 6 个转义冒号应标记为可疑")
	}
}

func TestParseLine_FieldBoundaries(t *testing.T) {
	// SSID 终结符是整行第一个冒号，SSID 中的反斜杠不构成转义
	ap, err := ParseLine(`back\slash:AA\:BB\:CC\:DD\:EE\:FF:42:5180 MHz`)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if ap.SSID != `back\slash` {
		t.Errorf("Failed: SSID = %q", ap.SSID)
	}

	// 频率之后的多余字段忽略
	ap, err = ParseLine(`extra:AA\:BB\:CC\:DD\:EE\:FF:42:5180 MHz:whatever:more`)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if ap.Frequency != 5180 {
		t.Errorf("Failed: Frequency = %d", ap.Frequency)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"无任何冒号", "just some text"},
		{"BSSID 后无剩余字段", `ssid:AA\:BB\:CC\:DD\:EE\:FF`},
		{"只有信号没有频率", `ssid:AA\:BB\:CC\:DD\:EE\:FF:42`},
		{"信号非数字", `ssid:AA\:BB\:CC\:DD\:EE\:FF:strong:2412 MHz`},
		{"频率无前导数字", `ssid:AA\:BB\:CC\:DD\:EE\:FF:42:MHz`},
		{"BSSID 永不终结 (全部转义)", `ssid:AA\:BB\:CC\:DD\:EE\:FF\:42\:2412`},
	}
	for _, c := range cases {
		_, err := ParseLine(c.line)
		if err == nil {
			t.Errorf("%s: 期望解析失败, line = %q", c.name, c.line)
			continue
		}
		if !errors.Is(err, model.ErrMalformedLine) {
			t.Errorf("%s: 错误应包裹 ErrMalformedLine, got %v", c.name, err)
		}
	}
}

func TestParseOutput_SkipsBadLines(t *testing.T) {
	raw := "net1:AA\\:BB\\:CC\\:DD\\:EE\\:FF:94:5500 MHz\n" +
		"\n" +
		"garbage without colon\n" +
		"net2:00\\:01\\:02\\:00\\:05\\:00:79:2417 MHz\r\n" +
		"   \n"
	aps, skipped := ParseOutput(raw)
	if len(aps) != 2 {
		t.Fatalf("解析结果数量 = %d, want 2", len(aps))
	}
	if skipped != 1 {
		t.Errorf("跳过行数 = %d, want 1", skipped)
	}
	if aps[0].SSID != "net1" || aps[1].SSID != "net2" {
		t.Errorf("解析顺序错乱: %q, %q", aps[0].SSID, aps[1].SSID)
	}
	// Windows 风格换行的 \r 不应混入频率字段
	if aps[1].Frequency != 2417 {
		t.Errorf("Frequency = %d, want 2417", aps[1].Frequency)
	}
}
