package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/config"
)

// rootOptions 全局参数
type rootOptions struct {
	configFile string
	logLevel   string
	logFile    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "zfinder",
		Short: "在窗口截图中查找模板图片并执行自动化脚本",
		Long: `zfinder 使用归一化互相关在指定窗口的截图中查找模板图片，
并通过 JavaScript 脚本组合查找、点击等操作。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		fmt.Sprintf("配置文件 (默认 %s)", config.GetDefaultManager().GetConfigFile()))
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别 DEBUG/INFO/WARN/ERROR (覆盖配置文件)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "日志文件 (覆盖配置文件)")

	root.AddCommand(
		newRunCmd(opts),
		newMatchCmd(opts),
		newWindowsCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load 加载配置并初始化日志，命令行参数优先级高于配置文件
func (o *rootOptions) load() error {
	cfg, err := o.manager().Load()
	if err != nil {
		logger.Warn("加载配置失败，使用默认配置: %v", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	o.cfg = cfg

	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := logger.Default().SetFile(cfg.LogFile); err != nil {
			return err
		}
	}
	return nil
}

// manager 返回当前使用的配置管理器
func (o *rootOptions) manager() *config.Manager {
	if o.configFile != "" {
		return config.NewManagerWithFile(o.configFile)
	}
	return config.GetDefaultManager()
}
