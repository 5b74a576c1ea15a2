/**
 * 服务装配
 * @author: Sun977
 * @date: 2026.02.14
 * @description: 按配置装配核心组件 (指纹库/扫描器/匹配器/发布器/定位服务) 与HTTP服务器
 */
package setup

import (
	"fmt"
	"net/http"
	"time"

	"neozone/internal/app/server/middleware"
	"neozone/internal/app/server/router"
	"neozone/internal/config"
	"neozone/internal/core/matcher"
	"neozone/internal/core/scanner/wifi"
	"neozone/internal/pkg/logger"
	"neozone/internal/service/locator"
	"neozone/internal/storage/zonestore"
)

// Core 核心组件集合
type Core struct {
	Store   *zonestore.Store
	State   *zonestore.StateStore
	Scanner *wifi.Scanner
	Matcher *matcher.Matcher
	Locator *locator.Service
}

// SetupCore 装配核心组件
func SetupCore(cfg *config.Config) (*Core, error) {
	store, err := zonestore.NewStore(cfg.Store.ZonesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open zone store: %w", err)
	}

	state := zonestore.NewStateStore(cfg.Store.StatePath())
	scanner := wifi.NewScanner(cfg.Scanner.ToolPath, cfg.Scanner.Timeout)
	m := matcher.NewMatcher(cfg.Matcher.Threshold)

	publisher, err := locator.NewPublisher(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	svc, err := locator.NewService(scanner, m, store, state, publisher)
	if err != nil {
		return nil, fmt.Errorf("failed to create locator service: %w", err)
	}

	logger.Infof("Core components ready: zones=%s threshold=%.2f", cfg.Store.ZonesPath(), m.Threshold())

	return &Core{
		Store:   store,
		State:   state,
		Scanner: scanner,
		Matcher: m,
		Locator: svc,
	}, nil
}

// SetupServer 装配路由器与HTTP服务器
func SetupServer(cfg *config.Config, core *Core) (*router.Router, *http.Server) {
	routerConfig := &router.RouterConfig{
		Debug:            cfg.App.Debug || cfg.Server.Mode == "debug",
		APIVersion:       cfg.Server.APIVersion,
		Prefix:           cfg.Server.Prefix,
		EnableMiddleware: true,
		MiddlewareConfig: buildMiddlewareConfig(cfg.Middleware),
	}

	r := router.NewRouter(routerConfig, &router.Deps{
		Locator: core.Locator,
		Store:   core.Store,
		Scanner: core.Scanner,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        r.GetEngine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return r, srv
}

// buildMiddlewareConfig 将文件配置转换为中间件运行配置
func buildMiddlewareConfig(cfg *config.MiddlewareConfig) *router.MiddlewareConfig {
	mc := &router.MiddlewareConfig{}
	if cfg == nil {
		return mc
	}

	if cfg.Auth != nil && cfg.Auth.Enabled {
		mc.Auth = &middleware.AuthConfig{
			APIKey:       cfg.Auth.APIKey,
			WhitelistIPs: cfg.Auth.WhitelistIPs,
			SkipPaths:    cfg.Auth.SkipPaths,
		}
	}

	if cfg.Logging != nil {
		mc.Logging = &middleware.LoggingConfig{
			EnableRequestLog:     cfg.Logging.EnableRequestLog,
			EnableResponseLog:    cfg.Logging.EnableResponseLog,
			SlowRequestThreshold: cfg.Logging.SlowRequestThreshold,
			SkipPaths:            cfg.Logging.SkipPaths,
		}
	}

	if cfg.CORS != nil && cfg.CORS.Enabled {
		mc.CORS = &middleware.CORSConfig{
			Enabled:          true,
			AllowAllOrigins:  cfg.CORS.AllowAllOrigins,
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			ExposeHeaders:    cfg.CORS.ExposeHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
		}
	}

	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		mc.RateLimit = &middleware.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			SkipPaths:         cfg.RateLimit.SkipPaths,
		}
	}

	return mc
}
