package auto

import "time"

// Option 配置选项函数类型
type Option func(*Options)

// Options 鼠标操作配置
type Options struct {
	// ClickDelay 移动到目标位置后、点击前的等待时间
	ClickDelay time.Duration
	// DoubleClick 是否双击
	DoubleClick bool
	// RightClick 是否右键点击
	RightClick bool
}

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 表示矩形区域
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty 区域是否没有面积
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DefaultClickDelay 默认点击前等待时间
const DefaultClickDelay = 500 * time.Millisecond

// DefaultOptions 默认配置
func DefaultOptions() *Options {
	return &Options{
		ClickDelay:  DefaultClickDelay,
		DoubleClick: false,
		RightClick:  false,
	}
}

// ApplyOptions 应用配置选项
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClickDelay 设置点击前等待时间
func WithClickDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			d = 0
		}
		o.ClickDelay = d
	}
}

// WithDoubleClick 设置双击
func WithDoubleClick() Option {
	return func(o *Options) {
		o.DoubleClick = true
	}
}

// WithRightClick 设置右键点击
func WithRightClick() Option {
	return func(o *Options) {
		o.RightClick = true
	}
}
