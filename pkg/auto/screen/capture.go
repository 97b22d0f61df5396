// Package screen 提供屏幕截图功能
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/zfinder/pkg/auto"
)

// CaptureScreen 截取全屏
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureRegion 截取屏幕区域（输入坐标）
func CaptureRegion(r auto.Region) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("截取区域为空: %+v", r)
	}
	img, err := robotgo.CaptureImg(r.X, r.Y, r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("截取区域失败: %w", err)
	}
	return img, nil
}

// GetScreenSize 获取屏幕尺寸（输入坐标）
func GetScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}
