// Package desktop 基于 robotgo 的真实桌面实现
package desktop

import (
	"image"

	"github.com/zoeyai/zfinder/pkg/auto"
	"github.com/zoeyai/zfinder/pkg/auto/input"
	"github.com/zoeyai/zfinder/pkg/auto/window"
)

// Robot 使用 robotgo 操作当前桌面
type Robot struct {
	opts *auto.Options
}

// New 创建 Robot
func New(opts ...auto.Option) *Robot {
	return &Robot{opts: auto.ApplyOptions(opts...)}
}

// ListWindows 列出所有带标题的窗口
func (r *Robot) ListWindows() ([]window.Info, error) {
	return window.List()
}

// Capture 截取窗口图像
func (r *Robot) Capture(w window.Info) (image.Image, error) {
	return window.Capture(w)
}

// Activate 激活窗口
func (r *Robot) Activate(pid int) (bool, error) {
	return window.Activate(pid)
}

// MoveClick 移动鼠标到屏幕坐标并左键点击
func (r *Robot) MoveClick(x, y int) error {
	return input.ClickAt(x, y, r.opts)
}

// KeysDown 查询按键是否全部按下
func (r *Robot) KeysDown(keys ...string) (bool, error) {
	return input.KeysDown(keys...)
}

// ScaleFactor 截图像素与输入坐标的比例
func (r *Robot) ScaleFactor() float64 {
	return auto.ScaleFactor()
}
