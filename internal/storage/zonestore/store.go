/**
 * 区域指纹存储
 * @author: Sun977
 * @date: 2026.02.12
 * @description: zones.json 的加载、保存与区域 CRUD，保持入库顺序，写盘原子化
 */
package zonestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"neozone/internal/core/model"
	"neozone/internal/pkg/logger"
)

// Store 区域指纹库
// 内存中持有全量区域，写操作同步落盘；切片保持定义顺序，匹配同分时顺序即优先级
type Store struct {
	mu    sync.RWMutex
	path  string
	zones []model.Zone
}

// NewStore 创建存储并加载既有数据
// 文件不存在视为空库，不是错误
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load 从磁盘加载区域列表
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("Zone store: %s not found, starting empty", s.path)
			return nil
		}
		return fmt.Errorf("failed to read zones file: %w", err)
	}
	if err := json.Unmarshal(data, &s.zones); err != nil {
		return fmt.Errorf("failed to parse zones file: %w", err)
	}
	logger.Infof("Zone store: loaded %d zones from %s", len(s.zones), s.path)
	return nil
}

// save 将区域列表写盘
// 先写临时文件再改名，避免写到一半进程退出留下残缺文件
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create zones directory: %w", err)
	}
	data, err := json.MarshalIndent(s.zones, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize zones: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write zones file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace zones file: %w", err)
	}
	return nil
}

// List 返回全部区域 (定义顺序的副本)
func (s *Store) List() []model.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Zone, len(s.zones))
	copy(out, s.zones)
	return out
}

// Get 按名称查找区域
func (s *Store) Get(name string) (*model.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.zones {
		if s.zones[i].Name == name {
			z := s.zones[i]
			return &z, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", model.ErrZoneNotFound, name)
}

// Add 新增区域及其首条指纹
func (s *Store) Add(name string, fp *model.ZoneFingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].Name == name {
			return fmt.Errorf("%w: %s", model.ErrZoneExists, name)
		}
	}
	zone := model.Zone{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if fp != nil {
		zone.Fingerprints = append(zone.Fingerprints, *fp)
	}
	s.zones = append(s.zones, zone)
	if err := s.save(); err != nil {
		// 落盘失败时回滚内存态，保持内存与磁盘一致
		s.zones = s.zones[:len(s.zones)-1]
		return err
	}
	logger.Infof("Zone store: added zone %s", name)
	return nil
}

// AppendFingerprint 向既有区域追加一条指纹 (学习)
func (s *Store) AppendFingerprint(name string, fp *model.ZoneFingerprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].Name == name {
			s.zones[i].Fingerprints = append(s.zones[i].Fingerprints, *fp)
			if err := s.save(); err != nil {
				fps := s.zones[i].Fingerprints
				s.zones[i].Fingerprints = fps[:len(fps)-1]
				return err
			}
			logger.Infof("Zone store: zone %s now has %d fingerprints", name, len(s.zones[i].Fingerprints))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrZoneNotFound, name)
}

// Remove 删除区域
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].Name == name {
			removed := s.zones[i]
			s.zones = append(s.zones[:i], s.zones[i+1:]...)
			if err := s.save(); err != nil {
				s.zones = append(s.zones[:i], append([]model.Zone{removed}, s.zones[i:]...)...)
				return err
			}
			logger.Infof("Zone store: removed zone %s", name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrZoneNotFound, name)
}

// RecordMatch 记录一次命中 (更新统计字段并落盘)
func (s *Store) RecordMatch(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.zones {
		if s.zones[i].Name == name {
			now := time.Now()
			s.zones[i].LastMatched = &now
			s.zones[i].MatchCount++
			return s.save()
		}
	}
	return fmt.Errorf("%w: %s", model.ErrZoneNotFound, name)
}
