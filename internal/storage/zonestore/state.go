/**
 * 守护进程状态存储
 * @author: Sun977
 * @date: 2026.02.12
 * @description: daemon-state.json 的加载与保存 (当前区域/累计切换次数/最近扫描时间)
 */
package zonestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"neozone/internal/core/model"
)

// StateStore 守护进程状态库
// 状态量小且每轮都可能更新，直接整体覆盖写
type StateStore struct {
	mu   sync.Mutex
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load 读取状态，文件不存在返回零值状态
func (s *StateStore) Load() (*model.DaemonState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.DaemonState{}, nil
		}
		return nil, fmt.Errorf("failed to read daemon state file: %w", err)
	}
	var state model.DaemonState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse daemon state file: %w", err)
	}
	return &state, nil
}

// Save 写回状态
func (s *StateStore) Save(state *model.DaemonState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize daemon state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write daemon state file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
