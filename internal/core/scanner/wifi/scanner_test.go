package wifi

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"neozone/internal/core/model"
)

// fakeRunner 返回固定输出的命令执行器
type fakeRunner struct {
	out []byte
	err error
}

func (f fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return f.out, f.err
}

func TestScanner_Scan(t *testing.T) {
	out := []byte("home-ap:74\\:4D\\:28\\:5F\\:F0\\:49:94:5500 MHz\n" +
		"bad line\n" +
		"cafe:00\\:01\\:02\\:00\\:05\\:00:79:2417 MHz\n")
	s := NewScanner("", 0).WithRunner(fakeRunner{out: out})

	aps, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(aps) != 2 {
		t.Fatalf("解析结果数量 = %d, want 2", len(aps))
	}
	if aps[0].SSID != "home-ap" || aps[1].SSID != "cafe" {
		t.Errorf("SSID = %q, %q", aps[0].SSID, aps[1].SSID)
	}
}

func TestScanner_ToolMissing(t *testing.T) {
	// nmcli 不存在时应映射为 ErrNoWifiTool，便于上层给出可操作的提示
	s := NewScanner("nmcli", 0).WithRunner(fakeRunner{
		err: &exec.Error{Name: "nmcli", Err: exec.ErrNotFound},
	})
	_, err := s.Scan(context.Background())
	if !errors.Is(err, model.ErrNoWifiTool) {
		t.Errorf("期望 ErrNoWifiTool, got %v", err)
	}
}

func TestScanner_CommandFailure(t *testing.T) {
	s := NewScanner("", 0).WithRunner(fakeRunner{err: errors.New("exit status 1")})
	_, err := s.Scan(context.Background())
	if err == nil {
		t.Errorf("命令失败时应返回错误")
	}
	if errors.Is(err, model.ErrNoWifiTool) {
		t.Errorf("普通执行失败不应映射为 ErrNoWifiTool")
	}
}
