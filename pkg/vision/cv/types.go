// Package cv 提供图像匹配功能
package cv

import "image"

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 搜索区域（左上角偏移 + 宽高）
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect 转换为 image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// MatchResult 图像匹配结果
type MatchResult struct {
	// X, Y 最佳匹配位置的左上角（源图像坐标）
	X int `json:"x"`
	Y int `json:"y"`
	// Score NCC 得分，约在 [-1, 1]，越大越好
	Score float64 `json:"score"`
	// Width, Height 模板尺寸
	Width  int `json:"width"`
	Height int `json:"height"`
	// Time 匹配耗时（毫秒）
	Time float64 `json:"time,omitempty"`
}

// Center 返回匹配区域中心点
func (r *MatchResult) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// translate 将结果坐标平移到未裁剪图像的坐标系
func (r *MatchResult) translate(dx, dy int) {
	r.X += dx
	r.Y += dy
}
