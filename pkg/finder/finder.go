// Package finder 将窗口、截图、模板匹配与会话状态组合为脚本可调用的操作。
//
// 所有操作都不会退出进程；失败时返回 0 分或 false 以及错误，
// 失败的查找不会修改会话中的模板尺寸和匹配结果。
package finder

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/auto"
	"github.com/zoeyai/zfinder/pkg/auto/window"
	"github.com/zoeyai/zfinder/pkg/config"
	"github.com/zoeyai/zfinder/pkg/session"
	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

// Desktop 桌面能力：窗口枚举、截图、激活、点击和按键查询
type Desktop interface {
	ListWindows() ([]window.Info, error)
	Capture(w window.Info) (image.Image, error)
	Activate(pid int) (bool, error)
	MoveClick(x, y int) error
	KeysDown(keys ...string) (bool, error)
	ScaleFactor() float64
}

// Finder 模板查找器
type Finder struct {
	desktop Desktop
	cfg     *config.Config
	state   *session.State
	log     *logger.Logger
}

// Option Finder 选项
type Option func(*Finder)

// WithLogger 使用指定 logger
func WithLogger(l *logger.Logger) Option {
	return func(f *Finder) {
		f.log = l
	}
}

// WithState 使用已有的会话状态
func WithState(s *session.State) Option {
	return func(f *Finder) {
		f.state = s
	}
}

// New 创建 Finder，cfg 为 nil 时使用默认配置
func New(d Desktop, cfg *config.Config, opts ...Option) *Finder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()

	f := &Finder{
		desktop: d,
		cfg:     cfg,
		state:   session.New(),
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State 返回会话状态
func (f *Finder) State() *session.State {
	return f.state
}

// FindWindow 按标题精确查找窗口并记录到会话
func (f *Finder) FindWindow(title string) (bool, error) {
	windows, err := f.desktop.ListWindows()
	if err != nil {
		return false, fmt.Errorf("%w: 获取窗口列表失败: %w", ErrResource, err)
	}

	for _, w := range windows {
		if w.Title == title {
			f.state.RecordWindow(w.Title, w.Bounds.Width, w.Bounds.Height)
			f.log.Debug("找到窗口: %s", w)
			return true, nil
		}
	}
	return false, nil
}

// ActiveWindow 激活上次找到的窗口，同时刷新窗口尺寸
func (f *Finder) ActiveWindow() (bool, error) {
	w, err := f.lookupWindow()
	if err != nil {
		return false, err
	}
	return f.desktop.Activate(w.PID)
}

// FindTemplate 在整个窗口截图中查找模板，返回最佳得分
func (f *Finder) FindTemplate(path string) (float64, error) {
	return f.find(path, nil)
}

// FindTemplateIn 在窗口截图的指定区域内查找模板，返回最佳得分
// 匹配坐标已换算回整个窗口截图的坐标系
func (f *Finder) FindTemplateIn(path string, x, y, width, height int) (float64, error) {
	region := cv.Region{X: x, Y: y, Width: width, Height: height}
	return f.find(path, &region)
}

func (f *Finder) find(path string, region *cv.Region) (float64, error) {
	start := time.Now()
	score, detail, err := f.doFind(path, region)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		f.log.LogEvent("FIND", false, elapsed, fmt.Sprintf("%s: %v", path, err))
		return 0, err
	}
	f.log.LogEvent("FIND", true, elapsed, detail)
	return score, nil
}

func (f *Finder) doFind(path string, region *cv.Region) (float64, string, error) {
	w, err := f.lookupWindow()
	if err != nil {
		return 0, "", err
	}
	if w.Minimized() {
		f.log.Info("窗口当前是最小化状态，自动激活窗口")
		if _, err := f.desktop.Activate(w.PID); err != nil {
			f.log.Warn("激活窗口失败: %v", err)
		} else if restored, err := f.lookupWindow(); err == nil {
			w = restored
		}
	}

	tmpl := cv.NewTemplate(path,
		cv.WithTemplateThreshold(f.cfg.Threshold),
		cv.WithTemplateContrast(f.cfg.EffectiveContrast()),
		cv.WithTemplateWorkers(f.cfg.Workers),
	)
	if _, err := tmpl.Load(); err != nil {
		return 0, "", fmt.Errorf("%w: 打开模版文件失败 %s: %w", ErrResource, path, err)
	}
	tw, th := tmpl.Size()
	f.log.Debug("模版图片尺寸: (%d, %d), %s", tw, th, path)

	screen, err := f.desktop.Capture(*w)
	if err != nil {
		return 0, "", fmt.Errorf("%w: 窗口截图失败: %w", ErrResource, err)
	}

	var result *cv.MatchResult
	if region == nil {
		result, err = tmpl.MatchResultIn(screen)
	} else {
		f.log.Debug("搜索区域: (%d,%d)-(%d,%d)", region.X, region.Y, region.X+region.Width, region.Y+region.Height)
		var cropped image.Image
		result, cropped, err = tmpl.MatchInRegion(screen, *region)
		if cropped != nil && f.cfg.DebugCrop {
			f.saveCrop(tmpl.Path(), *region, cropped)
		}
	}
	if err != nil {
		return 0, "", err
	}

	f.state.RecordFind(tw, th, result.X, result.Y, result.Score)
	return result.Score, fmt.Sprintf("%s (%d,%d) ncc=%.4f", path, result.X, result.Y, result.Score), nil
}

// saveCrop 保存区域裁剪图用于调试，失败只记录日志
func (f *Finder) saveCrop(templatePath string, region cv.Region, cropped image.Image) {
	if strings.HasPrefix(templatePath, "data:image/") {
		return
	}
	out := CropPath(templatePath, region.X, region.Y)
	if err := cv.WriteImage(out, cropped); err != nil {
		f.log.Warn("保存裁剪图失败: %v", err)
		return
	}
	f.log.Debug("裁剪图已保存: %s", out)
}

// CropPath 返回区域裁剪调试图的路径: <模板名>_cut_<x>_<y>.png
func CropPath(templatePath string, x, y int) string {
	base := strings.TrimSuffix(templatePath, filepath.Ext(templatePath))
	return fmt.Sprintf("%s_cut_%d_%d.png", base, x, y)
}

// Click 点击窗口内的截图坐标，(0,0) 表示上次匹配结果的中心
func (f *Finder) Click(x, y int) (bool, error) {
	w, err := f.lookupWindow()
	if err != nil {
		return false, err
	}

	if x == 0 && y == 0 {
		x, y = f.state.MatchCenter()
		f.log.Debug("图片中心位置: %d, %d", x, y)
	}

	scale := f.desktop.ScaleFactor()
	sx := w.Bounds.X + auto.ScaleCoord(x, scale)
	sy := w.Bounds.Y + auto.ScaleCoord(y, scale)
	f.log.Debug("点击位置: %d, %d (缩放 %.2f)", sx, sy, scale)

	start := time.Now()
	if err := f.desktop.MoveClick(sx, sy); err != nil {
		f.log.LogEvent("CLICK", false, float64(time.Since(start).Milliseconds()), err.Error())
		return false, fmt.Errorf("点击失败: %w", err)
	}
	f.log.LogEvent("CLICK", true, float64(time.Since(start).Milliseconds()), fmt.Sprintf("(%d,%d)", sx, sy))
	return true, nil
}

// FindX 上次匹配的 x 坐标
func (f *Finder) FindX() int {
	x, _ := f.state.MatchPos()
	return x
}

// FindY 上次匹配的 y 坐标
func (f *Finder) FindY() int {
	_, y := f.state.MatchPos()
	return y
}

// WindowWidth 上次记录的窗口宽度（截图像素）
func (f *Finder) WindowWidth() int {
	w, _ := f.state.WindowSize()
	return auto.ScaleInt(w, f.desktop.ScaleFactor())
}

// WindowHeight 上次记录的窗口高度（截图像素）
func (f *Finder) WindowHeight() int {
	_, h := f.state.WindowSize()
	return auto.ScaleInt(h, f.desktop.ScaleFactor())
}

// IsKeyDown 查询按键是否全部按下，查询失败时返回 false
func (f *Finder) IsKeyDown(keys ...string) bool {
	down, err := f.desktop.KeysDown(keys...)
	if err != nil {
		f.log.Warn("查询按键状态失败 %v: %v", keys, err)
		return false
	}
	return down
}

// lookupWindow 按记录的标题重新查找窗口并刷新窗口尺寸
func (f *Finder) lookupWindow() (*window.Info, error) {
	title := f.state.WindowTitle()
	if title == "" {
		return nil, fmt.Errorf("%w: 请先调用 findWindow", ErrWindowNotFound)
	}

	windows, err := f.desktop.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("%w: 获取窗口列表失败: %w", ErrResource, err)
	}
	for i := range windows {
		if windows[i].Title == title {
			w := windows[i]
			f.state.RecordWindowSize(w.Bounds.Width, w.Bounds.Height)
			return &w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, title)
}
