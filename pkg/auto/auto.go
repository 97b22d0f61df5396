// Package auto 提供桌面自动化的共享类型和工具函数。
// 具体功能分布在子包中：screen, input, window, desktop。
package auto

import (
	"math"
	"time"

	"github.com/go-vgo/robotgo"
)

// Sleep 休眠
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// MilliSleep 毫秒休眠
func MilliSleep(ms int) {
	if ms <= 0 {
		return
	}
	robotgo.MilliSleep(ms)
}

// ScaleFactor 返回主显示器的缩放系数（截图像素 / 输入坐标）
// 无法获取时返回 1.0
func ScaleFactor() float64 {
	f := robotgo.ScaleF()
	if f <= 0 || math.IsNaN(f) {
		return 1.0
	}
	return f
}

// ScaleCoord 将截图像素坐标按缩放系数换算为输入坐标
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}

// ScaleInt 将输入坐标按缩放系数换算为截图像素
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}
