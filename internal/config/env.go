package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvLoader 环境变量加载器
// @author: Sun977
// @date: 2026.02.10
// @description: 负责从环境变量和.env文件加载配置
type EnvLoader struct {
	envFiles []string // .env文件路径列表
	loaded   bool     // 是否已加载
}

// NewEnvLoader 创建环境变量加载器
func NewEnvLoader(envFiles ...string) *EnvLoader {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &EnvLoader{
		envFiles: envFiles,
		loaded:   false,
	}
}

// Load 加载环境变量
func (e *EnvLoader) Load() error {
	if e.loaded {
		return nil
	}

	// 加载.env文件
	for _, envFile := range e.envFiles {
		if err := e.loadEnvFile(envFile); err != nil {
			// .env文件不存在不算错误
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}

	e.loaded = true
	return nil
}

// loadEnvFile 加载单个.env文件
func (e *EnvLoader) loadEnvFile(envFile string) error {
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	return nil
}

// GetString 获取字符串环境变量
func (e *EnvLoader) GetString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetInt 获取整数环境变量
func (e *EnvLoader) GetInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetFloat64 获取浮点数环境变量
func (e *EnvLoader) GetFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetBool 获取布尔值环境变量
func (e *EnvLoader) GetBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetDuration 获取时间间隔环境变量
func (e *EnvLoader) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetStringSlice 获取字符串切片环境变量 (逗号分隔)
func (e *EnvLoader) GetStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// GetPath 获取路径环境变量 (自动处理相对路径)
func (e *EnvLoader) GetPath(key, defaultValue string) string {
	path := e.GetString(key, defaultValue)
	if path == "" {
		return ""
	}

	// 如果是相对路径，转换为绝对路径
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			return absPath
		}
	}

	return path
}

// IsSet 检查环境变量是否已设置
func (e *EnvLoader) IsSet(key string) bool {
	_, exists := os.LookupEnv(key)
	return exists
}

// 全局环境变量加载器实例
var globalEnvLoader *EnvLoader

// InitGlobalEnvLoader 初始化全局环境变量加载器
func InitGlobalEnvLoader(envFiles ...string) error {
	globalEnvLoader = NewEnvLoader(envFiles...)
	return globalEnvLoader.Load()
}

// GetGlobalEnvLoader 获取全局环境变量加载器
func GetGlobalEnvLoader() *EnvLoader {
	if globalEnvLoader == nil {
		globalEnvLoader = NewEnvLoader()
		_ = globalEnvLoader.Load() // 忽略错误，使用默认值
	}
	return globalEnvLoader
}

// 便捷函数，使用全局加载器

// EnvString 获取字符串环境变量
func EnvString(key, defaultValue string) string {
	return GetGlobalEnvLoader().GetString(key, defaultValue)
}

// EnvBool 获取布尔值环境变量
func EnvBool(key string, defaultValue bool) bool {
	return GetGlobalEnvLoader().GetBool(key, defaultValue)
}

// EnvDuration 获取时间间隔环境变量
func EnvDuration(key string, defaultValue time.Duration) time.Duration {
	return GetGlobalEnvLoader().GetDuration(key, defaultValue)
}

// EnvPath 获取路径环境变量
func EnvPath(key, defaultValue string) string {
	return GetGlobalEnvLoader().GetPath(key, defaultValue)
}
