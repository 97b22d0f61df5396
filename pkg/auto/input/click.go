package input

import (
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/zfinder/pkg/auto"
)

// ClickAt 移动到指定位置，等待 ClickDelay 后点击（根据 Options 决定点击方式）
func ClickAt(x, y int, o *auto.Options) error {
	if o == nil {
		o = auto.DefaultOptions()
	}

	MoveTo(x, y)
	if o.ClickDelay > 0 {
		time.Sleep(o.ClickDelay)
	}

	switch {
	case o.RightClick:
		robotgo.Click("right", false)
	case o.DoubleClick:
		robotgo.Click("left", true)
	default:
		robotgo.Click("left", false)
	}

	return nil
}
