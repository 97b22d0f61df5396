package finder

import (
	"errors"

	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

var (
	// ErrConfiguration 搜索参数错误：模板大于截图、区域过小或越界
	ErrConfiguration = cv.ErrConfiguration
	// ErrResource 资源错误：模板无法读取或窗口无法截图
	ErrResource = errors.New("资源不可用")
	// ErrWindowNotFound 没有记录窗口或记录的窗口已不存在
	ErrWindowNotFound = errors.New("未找到窗口")
)
