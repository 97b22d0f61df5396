package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Config 查找引擎与脚本运行配置
type Config struct {
	// Threshold 提前退出阈值，得分严格大于该值即停止搜索
	Threshold float64 `json:"threshold"`
	// Contrast 匹配前的对比度系数，1.0 表示不调整
	Contrast float64 `json:"contrast"`
	// ApplyContrast 是否在匹配前做对比度调整
	ApplyContrast bool `json:"apply_contrast"`
	// Workers 并行 worker 数
	Workers int `json:"workers"`
	// DebugCrop 区域搜索时是否在模板旁保存裁剪图
	DebugCrop bool `json:"debug_crop"`
	// ClickDelayMs 移动鼠标后到点击前的等待时间
	ClickDelayMs int `json:"click_delay_ms"`
	// ScriptTimeoutSec 脚本超时时间，0 表示不限制
	ScriptTimeoutSec int `json:"script_timeout_sec"`
	// LogLevel 日志级别
	LogLevel string `json:"log_level"`
	// LogFile 日志文件路径，为空则只输出到控制台
	LogFile string `json:"log_file"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Threshold:        0.95,
		Contrast:         1.5,
		ApplyContrast:    true,
		Workers:          runtime.NumCPU(),
		DebugCrop:        false,
		ClickDelayMs:     500,
		ScriptTimeoutSec: 0,
		LogLevel:         "INFO",
		LogFile:          "",
	}
}

// Validate 将取值限制在安全范围内
func (c *Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = 0.95
	}
	if c.Contrast <= 0 {
		c.Contrast = 1.5
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ClickDelayMs < 0 {
		c.ClickDelayMs = 0
	}
	if c.ScriptTimeoutSec < 0 {
		c.ScriptTimeoutSec = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	return nil
}

// EffectiveContrast 返回实际使用的对比度系数
func (c *Config) EffectiveContrast() float64 {
	if !c.ApplyContrast {
		return 1.0
	}
	return c.Contrast
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".zfinder")
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(configFile string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(configFile),
		configFile: configFile,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件中缺失的字段使用默认值
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}
	_ = config.Validate()

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	_ = config.Validate()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Config, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *Config) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
