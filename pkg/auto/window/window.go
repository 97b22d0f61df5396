// Package window 提供窗口管理功能（枚举、激活、截图）
package window

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/zfinder/pkg/auto"
	"github.com/zoeyai/zfinder/pkg/auto/screen"
	"github.com/zoeyai/zfinder/pkg/process"
)

// minimizedOffset Windows 最小化窗口的坐标
const minimizedOffset = -32000

// Info 窗口信息
type Info struct {
	PID       int         `json:"pid"`
	Title     string      `json:"title"`
	OwnerName string      `json:"owner_name"`
	Bounds    auto.Region `json:"bounds"`
}

// Minimized 根据边界判断窗口是否最小化
func (w Info) Minimized() bool {
	b := w.Bounds
	return b.Empty() || (b.X <= minimizedOffset && b.Y <= minimizedOffset)
}

// String 返回字符串表示
func (w Info) String() string {
	return fmt.Sprintf("%s [%s] pid=%d %dx%d@(%d,%d)",
		w.Title, w.OwnerName, w.PID, w.Bounds.Width, w.Bounds.Height, w.Bounds.X, w.Bounds.Y)
}

// List 获取窗口列表，filter 按标题或进程名做不区分大小写的部分匹配
func List(filter ...string) ([]Info, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	filterStr := ""
	if len(filter) > 0 {
		filterStr = strings.ToLower(filter[0])
	}

	var windows []Info
	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}

		owner := process.NameOf(pid)
		if filterStr != "" &&
			!strings.Contains(strings.ToLower(title), filterStr) &&
			!strings.Contains(strings.ToLower(owner), filterStr) {
			continue
		}

		windows = append(windows, Info{
			PID:       pid,
			Title:     title,
			OwnerName: owner,
			Bounds:    bounds(pid),
		})
	}

	return windows, nil
}

// ByPID 按 PID 获取窗口信息
func ByPID(pid int) (*Info, error) {
	title := robotgo.GetTitle(pid)
	if title == "" {
		return nil, fmt.Errorf("未找到 PID=%d 的窗口", pid)
	}

	return &Info{
		PID:       pid,
		Title:     title,
		OwnerName: process.NameOf(pid),
		Bounds:    bounds(pid),
	}, nil
}

// Active 获取当前前台窗口
func Active() (*Info, error) {
	return ByPID(robotgo.GetPid())
}

// Activate 将窗口置于前台
// 进程已不存在时返回 (false, nil)
func Activate(pid int) (bool, error) {
	if !process.IsProcessRunning(pid) {
		return false, nil
	}
	if err := robotgo.ActivePid(pid); err != nil {
		return false, fmt.Errorf("激活窗口失败: %w", err)
	}
	return true, nil
}

// Capture 截取窗口区域
func Capture(w Info) (image.Image, error) {
	if w.Bounds.Empty() {
		return nil, fmt.Errorf("无法获取窗口边界: PID=%d", w.PID)
	}
	return screen.CaptureRegion(w.Bounds)
}

func bounds(pid int) auto.Region {
	x, y, w, h := robotgo.GetBounds(pid)
	return auto.Region{X: x, Y: y, Width: w, Height: h}
}
