package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader 配置加载器
type ConfigLoader struct {
	configPath string
	envPrefix  string
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
func NewConfigLoader(configPath, envPrefix string) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = "NEOZONE"
	}

	return &ConfigLoader{
		configPath: configPath,
		envPrefix:  envPrefix,
		viper:      viper.New(),
	}
}

// LoadConfig 加载配置
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	// 设置配置文件类型
	cl.viper.SetConfigType("yaml")

	// 设置环境变量前缀
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.AutomaticEnv()
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 绑定环境变量
	cl.bindEnvVars()

	// 设置默认值
	cl.setDefaults()

	// 加载配置文件
	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// 解析配置
	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 验证配置
	if err := cl.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadConfigFile 加载配置文件
func (cl *ConfigLoader) loadConfigFile() error {
	// 直接指定了配置文件 (而非目录) 时不做搜索
	if cl.configPath != "" {
		if st, err := os.Stat(cl.configPath); err == nil && !st.IsDir() {
			cl.viper.SetConfigFile(cl.configPath)
			if err := cl.viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			return nil
		}
	}

	if cl.configPath == "" {
		// 尝试从环境变量获取配置文件路径
		if envPath := os.Getenv("NEOZONE_CONFIG_PATH"); envPath != "" {
			cl.configPath = envPath
		} else {
			// 默认配置文件路径
			cl.configPath = "./configs"
		}
	}

	// 获取环境
	env := cl.getEnvironment()

	// 设置配置文件搜索路径
	cl.viper.AddConfigPath(cl.configPath)
	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")

	// 尝试加载环境特定的配置文件
	configName := fmt.Sprintf("config.%s", env)
	cl.viper.SetConfigName(configName)

	if err := cl.viper.ReadInConfig(); err != nil {
		// 如果环境特定配置文件不存在，尝试加载默认配置文件
		cl.viper.SetConfigName("config")
		if err := cl.viper.ReadInConfig(); err != nil {
			// 配置文件不存在时回退到默认值 (CLI 单次使用场景)
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// getEnvironment 获取运行环境
func (cl *ConfigLoader) getEnvironment() string {
	env := os.Getenv("NEOZONE_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "development"
	}
	return env
}

// bindEnvVars 绑定环境变量
func (cl *ConfigLoader) bindEnvVars() {
	// App配置
	cl.viper.BindEnv("app.name", "NEOZONE_APP_NAME")
	cl.viper.BindEnv("app.version", "NEOZONE_APP_VERSION")
	cl.viper.BindEnv("app.environment", "NEOZONE_APP_ENVIRONMENT")
	cl.viper.BindEnv("app.debug", "NEOZONE_APP_DEBUG")
	cl.viper.BindEnv("app.timezone", "NEOZONE_APP_TIMEZONE")

	// Server配置
	cl.viper.BindEnv("server.host", "NEOZONE_SERVER_HOST")
	cl.viper.BindEnv("server.port", "NEOZONE_SERVER_PORT")
	cl.viper.BindEnv("server.mode", "NEOZONE_SERVER_MODE")

	// 扫描器配置
	cl.viper.BindEnv("scanner.tool_path", "NEOZONE_SCANNER_TOOL_PATH")
	cl.viper.BindEnv("scanner.timeout", "NEOZONE_SCANNER_TIMEOUT")

	// 匹配器配置
	cl.viper.BindEnv("matcher.threshold", "NEOZONE_MATCHER_THRESHOLD")

	// 存储配置
	cl.viper.BindEnv("store.data_dir", "NEOZONE_STORE_DATA_DIR")

	// 定位服务配置
	cl.viper.BindEnv("locator.scan_interval", "NEOZONE_LOCATOR_SCAN_INTERVAL")
	cl.viper.BindEnv("locator.auto_start", "NEOZONE_LOCATOR_AUTO_START")

	// Redis配置
	cl.viper.BindEnv("redis.enabled", "NEOZONE_REDIS_ENABLED")
	cl.viper.BindEnv("redis.addr", "NEOZONE_REDIS_ADDR")
	cl.viper.BindEnv("redis.password", "NEOZONE_REDIS_PASSWORD")
	cl.viper.BindEnv("redis.db", "NEOZONE_REDIS_DB")
	cl.viper.BindEnv("redis.channel", "NEOZONE_REDIS_CHANNEL")

	// 日志配置
	cl.viper.BindEnv("log.level", "NEOZONE_LOG_LEVEL")
	cl.viper.BindEnv("log.file_path", "NEOZONE_LOG_FILE_PATH")
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	// App默认值
	cl.viper.SetDefault("app.name", "NeoZone")
	cl.viper.SetDefault("app.version", "1.0.0")
	cl.viper.SetDefault("app.environment", "development")
	cl.viper.SetDefault("app.debug", false)
	cl.viper.SetDefault("app.timezone", "UTC")

	// Server默认值
	cl.viper.SetDefault("server.host", "127.0.0.1")
	cl.viper.SetDefault("server.port", 8082)
	cl.viper.SetDefault("server.mode", "debug")
	cl.viper.SetDefault("server.api_version", "v1")
	cl.viper.SetDefault("server.prefix", "/api")
	cl.viper.SetDefault("server.read_timeout", "30s")
	cl.viper.SetDefault("server.write_timeout", "30s")
	cl.viper.SetDefault("server.idle_timeout", "60s")
	cl.viper.SetDefault("server.max_header_bytes", 1048576)

	// 扫描器默认值
	cl.viper.SetDefault("scanner.tool_path", "nmcli")
	cl.viper.SetDefault("scanner.timeout", "10s")

	// 匹配器默认值
	cl.viper.SetDefault("matcher.threshold", 0.8)

	// 存储默认值
	cl.viper.SetDefault("store.data_dir", "./data")
	cl.viper.SetDefault("store.zones_file", "zones.json")
	cl.viper.SetDefault("store.state_file", "daemon-state.json")

	// 定位服务默认值
	cl.viper.SetDefault("locator.scan_interval", "30s")
	cl.viper.SetDefault("locator.auto_start", true)

	// Redis默认值
	cl.viper.SetDefault("redis.enabled", false)
	cl.viper.SetDefault("redis.addr", "localhost:6379")
	cl.viper.SetDefault("redis.db", 0)
	cl.viper.SetDefault("redis.channel", "neozone:events")

	// 日志默认值
	cl.viper.SetDefault("log.level", "info")
	cl.viper.SetDefault("log.format", "json")
	cl.viper.SetDefault("log.output", "stdout")
	cl.viper.SetDefault("log.file_path", "./logs/neozone.log")
	cl.viper.SetDefault("log.max_size", 100)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age", 28)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", true)
}

// validateConfig 验证配置
func (cl *ConfigLoader) validateConfig(config *Config) error {
	// 验证必需字段
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Matcher.Threshold <= 0 || config.Matcher.Threshold > 1 {
		return fmt.Errorf("invalid matcher threshold: %v (must be in (0, 1])", config.Matcher.Threshold)
	}

	if config.Store.DataDir == "" {
		return fmt.Errorf("store data_dir is required")
	}

	if config.Locator.ScanInterval <= 0 {
		return fmt.Errorf("invalid locator scan_interval: %v", config.Locator.ScanInterval)
	}

	// 验证目录路径
	if err := ensureDir(config.Store.DataDir); err != nil {
		return fmt.Errorf("failed to ensure data directory %s: %w", config.Store.DataDir, err)
	}

	return nil
}

// GetConfigPath 获取配置文件路径
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}

// LoadConfigFromFile 从指定文件加载配置
func LoadConfigFromFile(configFile string) (*Config, error) {
	configPath := filepath.Dir(configFile)
	loader := NewConfigLoader(configPath, "NEOZONE")
	return loader.LoadConfig()
}
