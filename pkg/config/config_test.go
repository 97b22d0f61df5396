package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Threshold != 0.95 {
		t.Errorf("默认 Threshold 应为 0.95, 实际为 %v", config.Threshold)
	}
	if config.Contrast != 1.5 {
		t.Errorf("默认 Contrast 应为 1.5, 实际为 %v", config.Contrast)
	}
	if !config.ApplyContrast {
		t.Error("默认 ApplyContrast 应为 true")
	}
	if config.Workers != runtime.NumCPU() {
		t.Errorf("默认 Workers 应为 %d, 实际为 %d", runtime.NumCPU(), config.Workers)
	}
	if config.ClickDelayMs != 500 {
		t.Errorf("默认 ClickDelayMs 应为 500, 实际为 %d", config.ClickDelayMs)
	}
	if config.DebugCrop {
		t.Error("默认 DebugCrop 应为 false")
	}

	t.Logf("默认配置: %+v", config)
}

func TestValidateClamps(t *testing.T) {
	config := &Config{
		Threshold:        1.5,
		Contrast:         -1,
		Workers:          0,
		ClickDelayMs:     -10,
		ScriptTimeoutSec: -1,
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate 不应返回错误: %v", err)
	}

	if config.Threshold != 0.95 {
		t.Errorf("越界 Threshold 应回到 0.95, 实际为 %v", config.Threshold)
	}
	if config.Contrast != 1.5 {
		t.Errorf("非法 Contrast 应回到 1.5, 实际为 %v", config.Contrast)
	}
	if config.Workers != runtime.NumCPU() {
		t.Errorf("Workers 应回到 CPU 核数, 实际为 %d", config.Workers)
	}
	if config.ClickDelayMs != 0 {
		t.Errorf("负的 ClickDelayMs 应回到 0, 实际为 %d", config.ClickDelayMs)
	}
	if config.ScriptTimeoutSec != 0 {
		t.Errorf("负的 ScriptTimeoutSec 应回到 0, 实际为 %d", config.ScriptTimeoutSec)
	}
	if config.LogLevel != "INFO" {
		t.Errorf("空 LogLevel 应回到 INFO, 实际为 %s", config.LogLevel)
	}
}

func TestEffectiveContrast(t *testing.T) {
	config := DefaultConfig()
	if config.EffectiveContrast() != 1.5 {
		t.Errorf("启用对比度时应返回 1.5, 实际为 %v", config.EffectiveContrast())
	}

	config.ApplyContrast = false
	if config.EffectiveContrast() != 1.0 {
		t.Errorf("关闭对比度时应返回 1.0, 实际为 %v", config.EffectiveContrast())
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	// 使用临时目录
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := &Config{
		Threshold:        0.9,
		Contrast:         2.0,
		ApplyContrast:    false,
		Workers:          3,
		DebugCrop:        true,
		ClickDelayMs:     100,
		ScriptTimeoutSec: 30,
		LogLevel:         "DEBUG",
		LogFile:          filepath.Join(tempDir, "zfinder.log"),
	}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}

	t.Logf("加载的配置: %+v", loaded)
}

func TestManagerLoadPartialFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 只写入部分字段，其余应使用默认值
	if err := os.WriteFile(manager.GetConfigFile(), []byte(`{"threshold": 0.8}`), 0600); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if loaded.Threshold != 0.8 {
		t.Errorf("Threshold 应为 0.8, 实际为 %v", loaded.Threshold)
	}
	if loaded.Contrast != 1.5 {
		t.Errorf("缺失的 Contrast 应为默认值 1.5, 实际为 %v", loaded.Contrast)
	}
	if loaded.ClickDelayMs != 500 {
		t.Errorf("缺失的 ClickDelayMs 应为默认值 500, 实际为 %d", loaded.ClickDelayMs)
	}
}

func TestManagerClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Fatal("配置文件应存在")
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 再次清除不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("重复清除不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}
	if config.Threshold != 0.95 {
		t.Errorf("应返回默认配置, 实际 Threshold 为 %v", config.Threshold)
	}
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := os.WriteFile(manager.GetConfigFile(), []byte("invalid json{{{"), 0600); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置文件应返回错误")
	}
	if config == nil || config.Threshold != 0.95 {
		t.Error("出错时应返回默认配置")
	}
}

func TestManagerPaths(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.GetConfigDir() != tempDir {
		t.Errorf("配置目录不匹配: 期望 %s, 实际 %s", tempDir, manager.GetConfigDir())
	}

	expectedFile := filepath.Join(tempDir, "config.json")
	if manager.GetConfigFile() != expectedFile {
		t.Errorf("配置文件路径不匹配: 期望 %s, 实际 %s", expectedFile, manager.GetConfigFile())
	}
}

func TestManagerWithFile(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "nested", "custom.json")
	manager := NewManagerWithFile(file)

	if manager.GetConfigFile() != file {
		t.Errorf("配置文件路径不匹配: 期望 %s, 实际 %s", file, manager.GetConfigFile())
	}
	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存到自定义路径失败: %v", err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("自定义配置文件应存在: %v", err)
	}
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("默认管理器不应为 nil")
	}

	homeDir, _ := os.UserHomeDir()
	expectedDir := filepath.Join(homeDir, ".zfinder")
	if manager.GetConfigDir() != expectedDir {
		t.Errorf("默认配置目录不匹配: 期望 %s, 实际 %s", expectedDir, manager.GetConfigDir())
	}
}

func TestConfigFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows 不检查文件权限")
	}

	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := manager.Save(DefaultConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	info, err := os.Stat(manager.GetConfigFile())
	if err != nil {
		t.Fatalf("获取文件信息失败: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("配置文件权限应为 0600, 实际为 %o", perm)
	}
}

func BenchmarkSaveLoad(b *testing.B) {
	tempDir := b.TempDir()
	manager := NewManagerWithDir(tempDir)
	config := DefaultConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = manager.Save(config)
		_, _ = manager.Load()
	}
}
