/**
 * NeoZone 配置管理
 * @author: Sun977
 * @date: 2026.02.10
 * @description: 配置结构定义与加载入口，负责加载和管理所有配置
 */
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config NeoZone 配置
type Config struct {
	// 应用配置
	App *AppConfig `yaml:"app" mapstructure:"app"`

	// 服务器配置
	Server *ServerConfig `yaml:"server" mapstructure:"server"`

	// 日志配置
	Log *LogConfig `yaml:"log" mapstructure:"log"`

	// WiFi 扫描配置
	Scanner *ScannerConfig `yaml:"scanner" mapstructure:"scanner"`

	// 匹配器配置
	Matcher *MatcherConfig `yaml:"matcher" mapstructure:"matcher"`

	// 指纹库存储配置
	Store *StoreConfig `yaml:"store" mapstructure:"store"`

	// 定位服务配置
	Locator *LocatorConfig `yaml:"locator" mapstructure:"locator"`

	// Redis 事件发布配置
	Redis *RedisConfig `yaml:"redis" mapstructure:"redis"`

	// 中间件配置
	Middleware *MiddlewareConfig `yaml:"middleware" mapstructure:"middleware"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`               // 应用名称
	Version     string `yaml:"version" mapstructure:"version"`         // 应用版本
	Environment string `yaml:"environment" mapstructure:"environment"` // 运行环境
	Debug       bool   `yaml:"debug" mapstructure:"debug"`             // 调试模式
	Timezone    string `yaml:"timezone" mapstructure:"timezone"`       // 时区
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`                         // 监听地址
	Port           int           `yaml:"port" mapstructure:"port"`                         // 监听端口
	Mode           string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式 (debug/release/test)
	APIVersion     string        `yaml:"api_version" mapstructure:"api_version"`           // API版本
	Prefix         string        `yaml:"prefix" mapstructure:"prefix"`                     // 路由前缀
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大头部字节数
	TLS            TLSConfig     `yaml:"tls" mapstructure:"tls"`                           // TLS配置
}

// TLSConfig TLS配置
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`     // 是否启用TLS
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"` // 证书文件路径
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`   // 私钥文件路径
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别 (debug/info/warn/error)
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式 (json/text)
	Output     string `yaml:"output" mapstructure:"output"`           // 日志输出 (stdout/stderr/file)
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 最大文件大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 最大备份数
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 最大保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// ScannerConfig WiFi 扫描配置
type ScannerConfig struct {
	ToolPath string        `yaml:"tool_path" mapstructure:"tool_path"` // nmcli 路径，空则取 PATH
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`     // 单次扫描超时
}

// MatcherConfig 匹配器配置
type MatcherConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"` // Jaccard 判定阈值 (闭区间)
}

// StoreConfig 指纹库存储配置
type StoreConfig struct {
	DataDir   string `yaml:"data_dir" mapstructure:"data_dir"`     // 数据目录
	ZonesFile string `yaml:"zones_file" mapstructure:"zones_file"` // 区域指纹文件名
	StateFile string `yaml:"state_file" mapstructure:"state_file"` // 守护进程状态文件名
}

// ZonesPath 区域指纹文件完整路径
func (c *StoreConfig) ZonesPath() string {
	return filepath.Join(c.DataDir, c.ZonesFile)
}

// StatePath 守护进程状态文件完整路径
func (c *StoreConfig) StatePath() string {
	return filepath.Join(c.DataDir, c.StateFile)
}

// LocatorConfig 定位服务配置
type LocatorConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval" mapstructure:"scan_interval"` // 周期检测间隔
	AutoStart    bool          `yaml:"auto_start" mapstructure:"auto_start"`       // 服务启动时自动开启周期检测
}

// RedisConfig Redis 事件发布配置
// 可选能力: 区域切换事件发布到 channel，供其他进程订阅联动
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Channel  string `yaml:"channel" mapstructure:"channel"` // 事件发布channel
}

// MiddlewareConfig 中间件配置
type MiddlewareConfig struct {
	// 认证中间件配置
	Auth *AuthConfig `yaml:"auth" json:"auth"`

	// 日志中间件配置
	Logging *LoggingConfig `yaml:"logging" json:"logging"`

	// CORS中间件配置
	CORS *CORSConfig `yaml:"cors" json:"cors"`

	// 限流中间件配置
	RateLimit *RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// AuthConfig 认证中间件配置
type AuthConfig struct {
	Enabled      bool     `yaml:"enabled" json:"enabled"`
	AuthMethod   string   `yaml:"auth_method" json:"auth_method"`
	APIKey       string   `yaml:"api_key" json:"api_key" env:"NEOZONE_API_KEY"`
	WhitelistIPs []string `yaml:"whitelist_ips" json:"whitelist_ips"`
	SkipPaths    []string `yaml:"skip_paths" json:"skip_paths"`
}

// LoggingConfig 日志中间件配置
type LoggingConfig struct {
	EnableRequestLog     bool          `yaml:"enable_request_log" json:"enable_request_log"`
	EnableResponseLog    bool          `yaml:"enable_response_log" json:"enable_response_log"`
	LogRequestBody       bool          `yaml:"log_request_body" json:"log_request_body"`
	LogHeaders           bool          `yaml:"log_headers" json:"log_headers"`
	SlowRequestThreshold time.Duration `yaml:"slow_request_threshold" json:"slow_request_threshold"`
	MaxBodySize          int64         `yaml:"max_body_size" json:"max_body_size"`
	SkipPaths            []string      `yaml:"skip_paths" json:"skip_paths"`
}

// CORSConfig CORS中间件配置
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled" json:"enabled"`
	AllowAllOrigins  bool     `yaml:"allow_all_origins" json:"allow_all_origins"`
	AllowOrigins     []string `yaml:"allow_origins" json:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods" json:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" json:"allow_headers"`
	ExposeHeaders    []string `yaml:"expose_headers" json:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" json:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" json:"max_age"`
}

// RateLimitConfig 限流中间件配置
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled" json:"enabled"`
	RequestsPerSecond int      `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int      `yaml:"burst_size" json:"burst_size"`
	SkipPaths         []string `yaml:"skip_paths" json:"skip_paths"`
}

// LoadConfig 加载配置
func LoadConfig(configPath ...string) (*Config, error) {
	var path string
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	}

	loader := NewConfigLoader(path, "NEOZONE")
	config, err := loader.LoadConfig()
	if err != nil {
		return nil, err
	}

	// 设置全局配置
	globalConfig = config
	configFileUsed = loader.GetConfigPath()
	return config, nil
}

// configFileUsed 实际加载的配置文件路径，未使用配置文件时为空
var configFileUsed string

// ConfigFileUsed 返回实际加载的配置文件路径
func ConfigFileUsed() string {
	return configFileUsed
}

// loadConfigFile 从指定配置文件加载 (yaml/json)
func loadConfigFile(cfg *Config, configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// 根据文件扩展名选择解析方式
	ext := filepath.Ext(configPath)
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return nil
}

// ensureDir 确保目录存在
func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	return os.MkdirAll(absDir, 0755)
}

// GetConfig 获取配置（单例模式）
var globalConfig *Config

func GetConfig() *Config {
	if globalConfig == nil {
		var err error
		globalConfig, err = LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
	}
	return globalConfig
}

// ReloadConfig 重新加载配置
func ReloadConfig() error {
	newConfig, err := LoadConfig("")
	if err != nil {
		return err
	}

	globalConfig = newConfig
	return nil
}
