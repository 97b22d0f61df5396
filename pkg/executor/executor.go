// Package executor 在 JavaScript 运行时中执行用户脚本，并向脚本暴露查找、点击等宿主函数。
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/finder"
)

// ExitError 脚本调用 exit(code) 主动退出
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("脚本主动退出，退出码: %d", e.Code)
}

// ScriptError 脚本自身抛出的异常或语法错误
type ScriptError struct {
	Name string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("脚本执行失败 %s: %v", e.Name, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// ErrCanceled 脚本被取消或超时
var ErrCanceled = errors.New("脚本被取消")

// TaskInfo 运行中的脚本信息
type TaskInfo struct {
	TaskID    string
	Script    string
	StartedAt int64
	cancel    context.CancelFunc
}

// Executor 脚本执行器
type Executor struct {
	finder       *finder.Finder
	log          *logger.Logger
	runningTasks map[string]*TaskInfo
	tasksMutex   sync.Mutex
	seq          int
}

// Option 执行器选项
type Option func(*Executor)

// WithLogger 使用指定 logger
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) {
		e.log = l
	}
}

// NewExecutor 创建脚本执行器
func NewExecutor(f *finder.Finder, opts ...Option) *Executor {
	e := &Executor{
		finder:       f,
		log:          logger.Default(),
		runningTasks: make(map[string]*TaskInfo),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunFile 读取并执行脚本文件
func (e *Executor) RunFile(ctx context.Context, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取脚本失败: %w", err)
	}
	return e.Run(ctx, path, string(source))
}

// Run 执行脚本源码
//
// 返回 nil 表示脚本正常结束；*ExitError 表示脚本调用了 exit；
// ctx 取消或超时时返回包装了 ErrCanceled 和 ctx.Err() 的错误。
func (e *Executor) Run(ctx context.Context, name, source string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskID := e.registerTask(name, cancel)
	defer e.unregisterTask(taskID)

	vm := goja.New()
	h := &host{ctx: ctx, vm: vm, finder: e.finder, log: e.log}
	if err := h.install(); err != nil {
		return fmt.Errorf("注册宿主函数失败: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	start := time.Now()
	e.log.Info("[Task:%s] 开始执行 %s", taskID, name)
	_, err := vm.RunScript(name, source)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	// exit 可能是脚本的最后一条语句，此时中断标志不一定被检查到
	if exited := h.exitError(); exited != nil {
		err = exited
	} else {
		err = e.classify(name, err)
	}
	var exitErr *ExitError
	switch {
	case err == nil:
		e.log.LogEvent("SCRIPT", true, elapsed, name)
	case errors.As(err, &exitErr):
		e.log.Info("主动退出，退出码: %d", exitErr.Code)
		e.log.LogEvent("SCRIPT", exitErr.Code == 0, elapsed, fmt.Sprintf("%s exit(%d)", name, exitErr.Code))
	default:
		e.log.LogEvent("SCRIPT", false, elapsed, err.Error())
	}
	return err
}

// classify 将 goja 返回的错误转换为执行器错误
func (e *Executor) classify(name string, err error) error {
	if err == nil {
		return nil
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		switch v := interrupted.Value().(type) {
		case *ExitError:
			return v
		case error:
			return fmt.Errorf("%w: %w", ErrCanceled, v)
		default:
			return fmt.Errorf("%w: %v", ErrCanceled, v)
		}
	}
	return &ScriptError{Name: name, Err: err}
}

// CancelTask 取消运行中的脚本
func (e *Executor) CancelTask(taskID string) bool {
	e.tasksMutex.Lock()
	defer e.tasksMutex.Unlock()

	if info, exists := e.runningTasks[taskID]; exists {
		info.cancel()
		delete(e.runningTasks, taskID)
		return true
	}
	return false
}

// GetStatus 获取执行器状态
func (e *Executor) GetStatus() (status string, tasks []TaskInfo) {
	e.tasksMutex.Lock()
	defer e.tasksMutex.Unlock()

	if len(e.runningTasks) == 0 {
		return "IDLE", nil
	}
	for _, info := range e.runningTasks {
		tasks = append(tasks, TaskInfo{
			TaskID:    info.TaskID,
			Script:    info.Script,
			StartedAt: info.StartedAt,
		})
	}
	return "BUSY", tasks
}

// registerTask 注册运行中的脚本
func (e *Executor) registerTask(script string, cancel context.CancelFunc) string {
	e.tasksMutex.Lock()
	defer e.tasksMutex.Unlock()

	e.seq++
	taskID := fmt.Sprintf("script-%d", e.seq)
	e.runningTasks[taskID] = &TaskInfo{
		TaskID:    taskID,
		Script:    script,
		StartedAt: time.Now().UnixMilli(),
		cancel:    cancel,
	}
	return taskID
}

// unregisterTask 注销脚本
func (e *Executor) unregisterTask(taskID string) {
	e.tasksMutex.Lock()
	defer e.tasksMutex.Unlock()

	delete(e.runningTasks, taskID)
}
