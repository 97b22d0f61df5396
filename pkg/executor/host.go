package executor

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/auto/input"
	"github.com/zoeyai/zfinder/pkg/finder"
)

// host 一次脚本运行的宿主函数集合，只在运行时所在的 goroutine 上调用
type host struct {
	ctx    context.Context
	vm     *goja.Runtime
	finder *finder.Finder
	log    *logger.Logger
	exited *ExitError
}

func (h *host) install() error {
	console := h.vm.NewObject()
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"log":   h.consoleFunc(logger.INFO),
		"info":  h.consoleFunc(logger.INFO),
		"debug": h.consoleFunc(logger.DEBUG),
		"warn":  h.consoleFunc(logger.WARN),
		"error": h.consoleFunc(logger.ERROR),
	} {
		if err := console.Set(name, fn); err != nil {
			return err
		}
	}
	if err := h.vm.Set("console", console); err != nil {
		return err
	}

	globals := map[string]func(goja.FunctionCall) goja.Value{
		"findWindow":   h.findWindow,
		"activeWindow": h.activeWindow,
		"findTemplate": h.findTemplate,
		"click":        h.click,
		"sleep":        h.sleep,
		"findX":        h.findX,
		"findY":        h.findY,
		"windowWidth":  h.windowWidth,
		"windowHeight": h.windowHeight,
		"isKeyDown":    h.isKeyDown,
		"exit":         h.exit,
	}
	for name, fn := range globals {
		if err := h.vm.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (h *host) exitError() *ExitError {
	return h.exited
}

func (h *host) consoleFunc(level logger.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		msg := strings.Join(parts, " ")

		switch level {
		case logger.DEBUG:
			h.log.Debug("%s", msg)
		case logger.WARN:
			h.log.Warn("%s", msg)
		case logger.ERROR:
			h.log.Error("%s", msg)
		default:
			h.log.Info("%s", msg)
		}
		return goja.Undefined()
	}
}

// findWindow(title) -> bool
func (h *host) findWindow(call goja.FunctionCall) goja.Value {
	title, ok := argString(call, 0)
	if !ok {
		return h.vm.ToValue(false)
	}
	found, err := h.finder.FindWindow(title)
	if err != nil {
		h.log.Error("查找窗口失败: %v", err)
	}
	return h.vm.ToValue(found)
}

// activeWindow() -> bool
func (h *host) activeWindow(goja.FunctionCall) goja.Value {
	ok, err := h.finder.ActiveWindow()
	if err != nil {
		h.log.Error("激活窗口失败: %v", err)
	}
	return h.vm.ToValue(ok)
}

// findTemplate(path[, x, y, w, h]) -> score
// 区域参数全部有效 (x>=0, y>=0, w>0, h>0) 时使用区域搜索
func (h *host) findTemplate(call goja.FunctionCall) goja.Value {
	path, ok := argString(call, 0)
	if !ok {
		return h.vm.ToValue(0.0)
	}
	x := argInt(call, 1, 0)
	y := argInt(call, 2, 0)
	w := argInt(call, 3, 0)
	hh := argInt(call, 4, 0)

	var (
		score float64
		err   error
	)
	if x >= 0 && y >= 0 && w > 0 && hh > 0 {
		score, err = h.finder.FindTemplateIn(path, x, y, w, hh)
	} else {
		score, err = h.finder.FindTemplate(path)
	}
	if err != nil {
		h.log.Error("查找模板失败: %v", err)
		return h.vm.ToValue(0.0)
	}
	return h.vm.ToValue(score)
}

// click([x, y]) -> bool
func (h *host) click(call goja.FunctionCall) goja.Value {
	ok, err := h.finder.Click(argInt(call, 0, 0), argInt(call, 1, 0))
	if err != nil {
		h.log.Error("点击失败: %v", err)
	}
	return h.vm.ToValue(ok)
}

// sleep(ms)，可被取消打断
func (h *host) sleep(call goja.FunctionCall) goja.Value {
	ms := argInt(call, 0, 0)
	if ms <= 0 {
		return goja.Undefined()
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
	case <-h.ctx.Done():
	}
	return goja.Undefined()
}

func (h *host) findX(goja.FunctionCall) goja.Value {
	return h.vm.ToValue(h.finder.FindX())
}

func (h *host) findY(goja.FunctionCall) goja.Value {
	return h.vm.ToValue(h.finder.FindY())
}

func (h *host) windowWidth(goja.FunctionCall) goja.Value {
	return h.vm.ToValue(h.finder.WindowWidth())
}

func (h *host) windowHeight(goja.FunctionCall) goja.Value {
	return h.vm.ToValue(h.finder.WindowHeight())
}

// isKeyDown(k1, ..., k10) -> bool，只看前 10 个字符串参数
func (h *host) isKeyDown(call goja.FunctionCall) goja.Value {
	var keys []string
	for i := 0; i < input.MaxKeys && i < len(call.Arguments); i++ {
		if k, ok := argString(call, i); ok {
			keys = append(keys, k)
		}
	}
	return h.vm.ToValue(h.finder.IsKeyDown(keys...))
}

// exit(code) 停止脚本
func (h *host) exit(call goja.FunctionCall) goja.Value {
	h.exited = &ExitError{Code: argInt(call, 0, 0)}
	h.vm.Interrupt(h.exited)
	return goja.Undefined()
}

// argString 读取字符串参数，缺失或不是字符串时返回 false
func argString(call goja.FunctionCall, i int) (string, bool) {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return "", false
	}
	s, ok := v.Export().(string)
	return s, ok
}

// argInt 读取数字参数并向零截断，缺失或非数字时返回 def
func argInt(call goja.FunctionCall, i int, def int) int {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}
