package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/executor"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run 执行命令并返回进程退出码
func run(args []string) int {
	defer logger.Default().Close()

	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	var exitErr *executor.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		return 1
	}
}
