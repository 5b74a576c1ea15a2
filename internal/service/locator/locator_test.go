package locator

import (
	"context"
	"path/filepath"
	"testing"

	"neozone/internal/core/fingerprint"
	"neozone/internal/core/matcher"
	"neozone/internal/core/model"
	"neozone/internal/pkg/utils"
	"neozone/internal/storage/zonestore"
)

// fakeScanner 返回固定观测的扫描器
type fakeScanner struct {
	aps []*model.AccessPoint
}

func (f *fakeScanner) Scan(_ context.Context) ([]*model.AccessPoint, error) {
	return f.aps, nil
}

func obs(ssids ...string) []*model.AccessPoint {
	aps := make([]*model.AccessPoint, 0, len(ssids))
	for _, s := range ssids {
		aps = append(aps, &model.AccessPoint{SSID: s})
	}
	return aps
}

func newTestService(t *testing.T, scanner WifiScanner) (*Service, *zonestore.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := zonestore.NewStore(filepath.Join(dir, "zones.json"))
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	state := zonestore.NewStateStore(filepath.Join(dir, "daemon-state.json"))
	svc, err := NewService(scanner, matcher.NewMatcher(0), store, state, nil)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc, store
}

// addZone 按真实录制路径存储 ssid_hash，与 fingerprint.Capture 保持同构
func addZone(t *testing.T, store *zonestore.Store, name string, ssids ...string) {
	t.Helper()
	entries := make([]model.FingerprintEntry, 0, len(ssids))
	for _, s := range ssids {
		entries = append(entries, model.FingerprintEntry{SSIDHash: utils.HashSSID(s)})
	}
	if err := store.Add(name, &model.ZoneFingerprint{WifiNetworks: entries}); err != nil {
		t.Fatalf("Add zone error: %v", err)
	}
}

func TestDetectOnce_ZoneChange(t *testing.T) {
	scanner := &fakeScanner{aps: obs("net-a", "net-b")}
	svc, store := newTestService(t, scanner)
	addZone(t, store, "home", "net-a", "net-b")

	// Case 1: 首次命中产生 ""->home 的切换事件
	result, change, err := svc.DetectOnce(context.Background())
	if err != nil {
		t.Fatalf("Case 1 Error: %v", err)
	}
	if !result.Matched || result.ZoneName != "home" {
		t.Fatalf("Case 1 Failed: result = %+v", result)
	}
	if change == nil || change.From != "" || change.To != "home" {
		t.Errorf("Case 1 Failed: change = %+v", change)
	}

	// Case 2: 同区域再次命中不产生事件
	_, change, err = svc.DetectOnce(context.Background())
	if err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	if change != nil {
		t.Errorf("Case 2 Failed: 同区域不应产生切换事件")
	}

	// Case 3: 命中统计已更新
	z, err := store.Get("home")
	if err != nil {
		t.Fatalf("Case 3 Error: %v", err)
	}
	if z.MatchCount != 2 {
		t.Errorf("Case 3 Failed: MatchCount = %d, want 2", z.MatchCount)
	}
}

// 录制与检测必须说同一种标识符语言: 通过真实录制路径 (fingerprint.Capture)
// 建库后，在同一环境下检测必须命中且相似度为 1.0
func TestLearnThenDetect_SameEnvironment(t *testing.T) {
	aps := []*model.AccessPoint{
		{SSID: "trucmuche (5Ghz)", BSSID: "74:4D:28:5F:F0:49", Signal: 94, Frequency: 5500},
		{SSID: "FreeWifi_secure", BSSID: "00:01:02:00:05:00", Signal: 79, Frequency: 2417},
		{SSID: "Livebox-D94C", BSSID: "E4:5D:51:D9:4C:10", Signal: 61, Frequency: 2462},
	}
	scanner := &fakeScanner{aps: aps}
	svc, store := newTestService(t, scanner)

	// 录制路径与守护进程/HTTP/CLI 的 zone add 完全一致
	if err := store.Add("home", fingerprint.Capture(aps)); err != nil {
		t.Fatalf("Add zone error: %v", err)
	}

	result, change, err := svc.DetectOnce(context.Background())
	if err != nil {
		t.Fatalf("DetectOnce error: %v", err)
	}
	if !result.Matched || result.ZoneName != "home" {
		t.Fatalf("Failed: 相同环境下应命中录制的区域, result = %+v", result)
	}
	if result.Similarity != 1.0 {
		t.Errorf("Failed: Similarity = %v, want 1.0 (diagnostics = %+v)", result.Similarity, result.Diagnostics)
	}
	if change == nil || change.To != "home" {
		t.Errorf("Failed: change = %+v", change)
	}
}

func TestDetectOnce_NoMatchKeepsZone(t *testing.T) {
	scanner := &fakeScanner{aps: obs("net-a", "net-b")}
	svc, store := newTestService(t, scanner)
	addZone(t, store, "home", "net-a", "net-b")

	if _, _, err := svc.DetectOnce(context.Background()); err != nil {
		t.Fatalf("Error: %v", err)
	}

	// 观测突变导致未匹配: 当前区域保持不变，一轮噪声不应清空定位
	scanner.aps = obs("stranger")
	result, change, err := svc.DetectOnce(context.Background())
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if result.Matched {
		t.Errorf("Failed: 不应命中")
	}
	if change != nil {
		t.Errorf("Failed: 未匹配不应产生切换事件")
	}
	if svc.Status().CurrentZone != "home" {
		t.Errorf("Failed: 当前区域被错误清空")
	}
}

func TestActivate(t *testing.T) {
	svc, store := newTestService(t, &fakeScanner{})
	addZone(t, store, "office", "net-x")

	// Case 1: 激活不存在的区域
	if _, err := svc.Activate(context.Background(), "nowhere"); err == nil {
		t.Errorf("Case 1 Failed: 期望 ErrZoneNotFound")
	}

	// Case 2: 正常激活
	change, err := svc.Activate(context.Background(), "office")
	if err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	if change == nil || change.To != "office" || change.Similarity != 1.0 {
		t.Errorf("Case 2 Failed: change = %+v", change)
	}
	if svc.Status().CurrentZone != "office" {
		t.Errorf("Case 2 Failed: 当前区域未更新")
	}

	// Case 3: 重复激活同区域无事件
	change, err = svc.Activate(context.Background(), "office")
	if err != nil {
		t.Fatalf("Case 3 Error: %v", err)
	}
	if change != nil {
		t.Errorf("Case 3 Failed: 重复激活不应产生事件")
	}
}

func TestStateRestoredAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := zonestore.NewStore(filepath.Join(dir, "zones.json"))
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	state := zonestore.NewStateStore(filepath.Join(dir, "daemon-state.json"))
	addZone(t, store, "home", "net-a")

	svc, err := NewService(&fakeScanner{aps: obs("net-a")}, matcher.NewMatcher(0), store, state, nil)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	if _, _, err := svc.DetectOnce(context.Background()); err != nil {
		t.Fatalf("DetectOnce error: %v", err)
	}

	// 模拟重启: 新实例从磁盘恢复状态
	svc2, err := NewService(&fakeScanner{}, matcher.NewMatcher(0), store, state, nil)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	status := svc2.Status()
	if status.CurrentZone != "home" || status.TotalZoneChanges != 1 {
		t.Errorf("状态未恢复: %+v", status)
	}
}
