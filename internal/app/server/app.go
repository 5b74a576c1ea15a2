/**
 * NeoZone 服务端应用
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 应用生命周期管理: 配置加载 -> 日志初始化 -> 组件装配 -> 启停控制
 */
package server

import (
	"context"
	"fmt"
	"net/http"

	"neozone/internal/app/server/router"
	"neozone/internal/app/server/setup"
	"neozone/internal/config"
	"neozone/internal/pkg/logger"
	"neozone/internal/pkg/version"
)

// App NeoZone 服务端应用
type App struct {
	config        *config.Config
	logManager    *logger.LoggerManager
	core          *setup.Core
	router        *router.Router
	httpServer    *http.Server
	configWatcher *config.ConfigWatcher
}

// NewApp 创建应用实例
// 完成配置加载、日志初始化与全部组件装配，失败时返回错误而不是半初始化的应用
func NewApp(configPath string) (*App, error) {
	// 加载 .env 环境变量 (文件不存在不报错)
	if err := config.InitGlobalEnvLoader(); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logManager, err := logger.InitLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	core, err := setup.SetupCore(cfg)
	if err != nil {
		return nil, err
	}

	r, srv := setup.SetupServer(cfg, core)

	return &App{
		config:     cfg,
		logManager: logManager,
		core:       core,
		router:     r,
		httpServer: srv,
	}, nil
}

// Start 启动应用
// HTTP 服务在独立 goroutine 中监听；按配置自动开启周期定位
func (a *App) Start(ctx context.Context) error {
	logger.Infof("NeoZone %s starting, listening on %s", version.GetVersion(), a.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		var err error
		if a.config.Server.TLS.Enabled {
			err = a.httpServer.ListenAndServeTLS(a.config.Server.TLS.CertFile, a.config.Server.TLS.KeyFile)
		} else {
			err = a.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if a.config.Locator.AutoStart {
		a.core.Locator.StartPeriodic(ctx, a.config.Locator.ScanInterval)
	}

	a.startConfigWatcher()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		return nil
	}
}

// startConfigWatcher 启动配置文件热更新监听
// 仅日志配置支持运行期变更，其余字段校验后记录提示
func (a *App) startConfigWatcher() {
	path := config.ConfigFileUsed()
	if path == "" {
		return
	}

	watcher, err := config.WatchConfig(path, func(oldCfg, newCfg *config.Config) error {
		if err := config.ValidateConfigChange(oldCfg, newCfg); err != nil {
			return err
		}
		if err := a.logManager.UpdateConfig(newCfg.Log); err != nil {
			return err
		}
		logger.Infof("Config reloaded from %s", path)
		return nil
	})
	if err != nil {
		logger.Warnf("Config watcher disabled: %v", err)
		return
	}
	a.configWatcher = watcher
}

// Stop 优雅停止应用
func (a *App) Stop(ctx context.Context) error {
	logger.Info("NeoZone shutting down")

	if a.configWatcher != nil {
		if err := a.configWatcher.Stop(); err != nil {
			logger.Warnf("Failed to stop config watcher: %v", err)
		}
	}

	// 先停周期检测，再关HTTP服务
	a.core.Locator.Stop()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	logger.Info("NeoZone stopped")
	return nil
}

// Config 返回应用配置
func (a *App) Config() *config.Config {
	return a.config
}

// Core 返回核心组件集合
func (a *App) Core() *setup.Core {
	return a.core
}
