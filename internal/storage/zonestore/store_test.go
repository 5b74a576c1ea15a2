package zonestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"neozone/internal/core/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return s
}

func fp(hashes ...string) *model.ZoneFingerprint {
	entries := make([]model.FingerprintEntry, 0, len(hashes))
	for _, h := range hashes {
		entries = append(entries, model.FingerprintEntry{SSIDHash: h})
	}
	return &model.ZoneFingerprint{WifiNetworks: entries}
}

func TestStore_CRUD(t *testing.T) {
	s := tempStore(t)

	// Case 1: 空库
	if len(s.List()) != 0 {
		t.Errorf("Case 1 Failed: 新库应为空")
	}

	// Case 2: 添加与查询
	if err := s.Add("home", fp("h1", "h2")); err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	z, err := s.Get("home")
	if err != nil {
		t.Fatalf("Case 2 Error: %v", err)
	}
	if len(z.Fingerprints) != 1 || len(z.Fingerprints[0].WifiNetworks) != 2 {
		t.Errorf("Case 2 Failed: 指纹未正确保存")
	}

	// Case 3: 重名拒绝
	if err := s.Add("home", nil); !errors.Is(err, model.ErrZoneExists) {
		t.Errorf("Case 3 Failed: 期望 ErrZoneExists, got %v", err)
	}

	// Case 4: 追加指纹 (学习)
	if err := s.AppendFingerprint("home", fp("h3")); err != nil {
		t.Fatalf("Case 4 Error: %v", err)
	}
	z, _ = s.Get("home")
	if len(z.Fingerprints) != 2 {
		t.Errorf("Case 4 Failed: 指纹数量 = %d, want 2", len(z.Fingerprints))
	}

	// Case 5: 向不存在的区域追加
	if err := s.AppendFingerprint("nowhere", fp("h1")); !errors.Is(err, model.ErrZoneNotFound) {
		t.Errorf("Case 5 Failed: 期望 ErrZoneNotFound, got %v", err)
	}

	// Case 6: 删除
	if err := s.Remove("home"); err != nil {
		t.Fatalf("Case 6 Error: %v", err)
	}
	if _, err := s.Get("home"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Errorf("Case 6 Failed: 删除后仍可查到")
	}
}

func TestStore_OrderPreserved(t *testing.T) {
	s := tempStore(t)
	names := []string{"zebra", "alpha", "middle"}
	for _, n := range names {
		if err := s.Add(n, nil); err != nil {
			t.Fatalf("Add(%s) error: %v", n, err)
		}
	}
	// 列表顺序必须是入库顺序，匹配同分时顺序即优先级
	got := s.List()
	for i, n := range names {
		if got[i].Name != n {
			t.Errorf("顺序错乱: got[%d] = %q, want %q", i, got[i].Name, n)
		}
	}
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	if err := s.Add("office", fp("h1")); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := s.RecordMatch("office"); err != nil {
		t.Fatalf("RecordMatch error: %v", err)
	}

	// 重新加载，数据应完整还原
	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	z, err := s2.Get("office")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if z.MatchCount != 1 || z.LastMatched == nil {
		t.Errorf("命中统计未持久化: MatchCount = %d", z.MatchCount)
	}

	// 写盘不应留下临时文件
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("临时文件未清理")
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon-state.json")
	ss := NewStateStore(path)

	// 文件不存在返回零值状态
	state, err := ss.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if state.CurrentZone != "" || state.TotalZoneChanges != 0 {
		t.Errorf("初始状态应为零值")
	}

	state.CurrentZone = "home"
	state.TotalZoneChanges = 3
	if err := ss.Save(state); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	state2, err := ss.Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if state2.CurrentZone != "home" || state2.TotalZoneChanges != 3 {
		t.Errorf("状态未正确还原: %+v", state2)
	}
}
