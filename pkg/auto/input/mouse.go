// Package input 提供鼠标和键盘操作
package input

import (
	"github.com/go-vgo/robotgo"
)

// MoveTo 移动鼠标到指定位置（输入坐标）
func MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// GetMousePosition 获取鼠标位置
func GetMousePosition() (x, y int) {
	return robotgo.Location()
}
