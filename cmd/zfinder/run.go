package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/auto"
	"github.com/zoeyai/zfinder/pkg/auto/desktop"
	"github.com/zoeyai/zfinder/pkg/executor"
	"github.com/zoeyai/zfinder/pkg/finder"
	"github.com/zoeyai/zfinder/pkg/permissions"
	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		timeout time.Duration
		baseDir string
	)

	cmd := &cobra.Command{
		Use:   "run <script.js>",
		Short: "执行自动化脚本",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if !cmd.Flags().Changed("timeout") && cfg.ScriptTimeoutSec > 0 {
				timeout = time.Duration(cfg.ScriptTimeoutSec) * time.Second
			}
			if baseDir != "" {
				cv.CurrentPath = baseDir
			}

			if ok, msg := permissions.EnsurePermissions(); !ok {
				logger.Warn("%s", msg)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			d := desktop.New(auto.WithClickDelay(time.Duration(cfg.ClickDelayMs) * time.Millisecond))
			f := finder.New(d, cfg)
			exec := executor.NewExecutor(f)

			start := time.Now()
			err := exec.RunFile(ctx, args[0])
			logger.Info("运行耗时: %v", time.Since(start))
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "脚本超时时间，0 表示不限制 (默认取配置 script_timeout_sec)")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "模板相对路径的基准目录 (默认当前目录)")
	return cmd
}
