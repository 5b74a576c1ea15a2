/**
 * WiFi 扫描器
 * @author: Sun977
 * @date: 2026.02.10
 * @description: 调用外部 nmcli 获取当前可见网络的原始文本，交由解析器结构化
 */
package wifi

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"neozone/internal/core/model"
	"neozone/internal/pkg/logger"
)

// nmcli 参数: 关闭彩色输出，terse 模式按冒号分隔字段
var nmcliArgs = []string{"--colors", "no", "-t", "-f", "SSID,BSSID,SIGNAL,FREQ", "device", "wifi"}

// CommandRunner 外部命令执行接口，便于测试时注入假输出
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner 基于 os/exec 的默认实现
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Scanner WiFi 扫描器
// 工具路径与超时来自配置，绝不硬编码
type Scanner struct {
	toolPath string
	timeout  time.Duration
	runner   CommandRunner
}

// NewScanner 创建扫描器
// toolPath 为空时默认使用 PATH 中的 nmcli
func NewScanner(toolPath string, timeout time.Duration) *Scanner {
	if toolPath == "" {
		toolPath = "nmcli"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scanner{
		toolPath: toolPath,
		timeout:  timeout,
		runner:   execRunner{},
	}
}

// WithRunner 替换命令执行器 (测试用)
func (s *Scanner) WithRunner(r CommandRunner) *Scanner {
	s.runner = r
	return s
}

// Scan 执行一次扫描并返回结构化观测
// 畸形行跳过并记录，不中断整轮扫描
func (s *Scanner) Scan(ctx context.Context) ([]*model.AccessPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.runner.Run(ctx, s.toolPath, nmcliArgs...)
	if err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", model.ErrNoWifiTool, s.toolPath)
		}
		return nil, fmt.Errorf("wifi scan failed: %w", err)
	}

	aps, skipped := ParseOutput(string(out))
	if skipped > 0 {
		logger.Warnf("WiFi scan: skipped %d malformed lines", skipped)
	}
	for _, ap := range aps {
		if ap.Suspicious {
			logger.Warnf("WiFi scan: suspicious BSSID %q (unexpected escape count)", ap.BSSID)
		}
	}
	logger.Debugf("WiFi scan: %d networks parsed", len(aps))

	return aps, nil
}
