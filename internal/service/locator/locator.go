/**
 * 区域定位服务
 * @author: Sun977
 * @date: 2026.02.13
 * @description: 组合扫描器/匹配器/指纹库，提供单次检测、周期检测与区域切换事件
 */
package locator

import (
	"context"
	"sync"
	"time"

	"neozone/internal/core/matcher"
	"neozone/internal/core/model"
	"neozone/internal/core/scanner/wifi"
	"neozone/internal/pkg/logger"
	"neozone/internal/storage/zonestore"
)

// WifiScanner 扫描能力抽象 (测试时注入假扫描器)
type WifiScanner interface {
	Scan(ctx context.Context) ([]*model.AccessPoint, error)
}

var _ WifiScanner = (*wifi.Scanner)(nil)

// Service 区域定位服务
// 跨轮次状态 (当前区域/切换计数) 由互斥锁保护并同步落盘
type Service struct {
	scanner   WifiScanner
	matcher   *matcher.Matcher
	store     *zonestore.Store
	state     *zonestore.StateStore
	publisher Publisher

	mu      sync.Mutex
	current string // 当前判定的区域名，空表示未知
	changes int    // 累计切换次数
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewService 创建定位服务并恢复持久化状态
func NewService(scanner WifiScanner, m *matcher.Matcher, store *zonestore.Store, state *zonestore.StateStore, pub Publisher) (*Service, error) {
	s := &Service{
		scanner:   scanner,
		matcher:   m,
		store:     store,
		state:     state,
		publisher: pub,
	}
	if pub == nil {
		s.publisher = noopPublisher{}
	}

	// 重启后从磁盘恢复上次的定位状态
	saved, err := state.Load()
	if err != nil {
		return nil, err
	}
	s.current = saved.CurrentZone
	s.changes = saved.TotalZoneChanges

	return s, nil
}

// DetectOnce 执行一轮 扫描->匹配->状态更新
// 返回匹配结果与本轮产生的切换事件 (无切换时为 nil)
func (s *Service) DetectOnce(ctx context.Context) (*model.MatchResult, *model.LocationChange, error) {
	aps, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := s.matcher.Match(aps, s.store.List())

	change := s.applyResult(ctx, result)
	return result, change, nil
}

// applyResult 将匹配结果应用到跨轮次状态
// 未匹配不改变当前区域: 一轮噪声不应把人"踢出"区域
func (s *Service) applyResult(ctx context.Context, result *model.MatchResult) *model.LocationChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var change *model.LocationChange

	if result.Matched && result.ZoneName != s.current {
		change = &model.LocationChange{
			From:       s.current,
			To:         result.ZoneName,
			Similarity: result.Similarity,
			OccurredAt: now,
		}
		logger.Infof("Location change: %q -> %q (similarity %.3f)", s.current, result.ZoneName, result.Similarity)
		s.current = result.ZoneName
		s.changes++

		if err := s.store.RecordMatch(result.ZoneName); err != nil {
			logger.Warnf("Failed to record zone match: %v", err)
		}
		if err := s.publisher.PublishChange(ctx, change); err != nil {
			logger.Warnf("Failed to publish location change: %v", err)
		}
	} else if result.Matched {
		// 同区域重复命中只刷新统计，不产生事件
		if err := s.store.RecordMatch(result.ZoneName); err != nil {
			logger.Warnf("Failed to record zone match: %v", err)
		}
	}

	s.saveStateLocked(now)
	return change
}

// saveStateLocked 落盘状态，调用方须持锁
func (s *Service) saveStateLocked(lastScan time.Time) {
	state := &model.DaemonState{
		CurrentZone:      s.current,
		TotalZoneChanges: s.changes,
		LastScan:         &lastScan,
	}
	if err := s.state.Save(state); err != nil {
		logger.Warnf("Failed to save daemon state: %v", err)
	}
}

// Activate 手动激活指定区域 (不经过扫描匹配)
// 用于用户明确知道自己在哪里时直接切换
func (s *Service) Activate(ctx context.Context, name string) (*model.LocationChange, error) {
	if _, err := s.store.Get(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == name {
		return nil, nil
	}

	change := &model.LocationChange{
		From:       s.current,
		To:         name,
		Similarity: 1.0, // 手动激活视为确定事实
		OccurredAt: time.Now(),
	}
	logger.Infof("Zone manually activated: %q -> %q", s.current, name)
	s.current = name
	s.changes++

	if err := s.publisher.PublishChange(ctx, change); err != nil {
		logger.Warnf("Failed to publish location change: %v", err)
	}
	s.saveStateLocked(change.OccurredAt)

	return change, nil
}

// Status 返回当前定位状态快照
func (s *Service) Status() *model.DaemonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &model.DaemonState{
		CurrentZone:      s.current,
		TotalZoneChanges: s.changes,
	}
}

// StartPeriodic 启动周期检测循环
// 重复调用是幂等的；循环在 Stop 或父 context 取消时退出
func (s *Service) StartPeriodic(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.mu.Unlock()

	logger.Infof("Locator: periodic detection started, interval %s", interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Locator: periodic detection stopped")
				return
			case <-ticker.C:
				// 单轮失败只记日志，循环继续
				if _, _, err := s.DetectOnce(ctx); err != nil {
					logger.Errorf("Locator: detection round failed: %v", err)
				}
			}
		}
	}()
}

// Stop 停止周期检测并关闭发布器
func (s *Service) Stop() {
	s.mu.Lock()
	if s.running {
		s.cancel()
		s.running = false
	}
	s.mu.Unlock()
	s.wg.Wait()
	if err := s.publisher.Close(); err != nil {
		logger.Warnf("Failed to close event publisher: %v", err)
	}
}
