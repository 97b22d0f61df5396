package cv

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// CurrentPath 相对模板路径的基准目录
var CurrentPath = ""

// Template 模板匹配类
type Template struct {
	// Filename 模板文件路径（或 data URL）
	Filename string
	// Threshold 提前退出阈值
	Threshold float64
	// Contrast 对比度系数，1.0 表示不调整
	Contrast float64
	// Workers 并行 worker 数，<= 0 使用 CPU 核数
	Workers int

	image image.Image
}

// TemplateOption 模板选项
type TemplateOption func(*Template)

// NewTemplate 创建新的 Template
func NewTemplate(filename string, opts ...TemplateOption) *Template {
	t := &Template{
		Filename:  filename,
		Threshold: DefaultThreshold,
		Contrast:  DefaultContrast,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewTemplateFromImage 使用已加载的图像创建 Template
func NewTemplateFromImage(img image.Image, opts ...TemplateOption) *Template {
	t := NewTemplate("", opts...)
	t.image = img
	return t
}

// WithTemplateThreshold 设置阈值
func WithTemplateThreshold(threshold float64) TemplateOption {
	return func(t *Template) {
		t.Threshold = threshold
	}
}

// WithTemplateContrast 设置对比度系数
func WithTemplateContrast(factor float64) TemplateOption {
	return func(t *Template) {
		t.Contrast = factor
	}
}

// WithTemplateWorkers 设置并行 worker 数
func WithTemplateWorkers(workers int) TemplateOption {
	return func(t *Template) {
		t.Workers = workers
	}
}

// Path 返回模板文件的实际路径，相对路径基于 CurrentPath
func (t *Template) Path() string {
	filename := t.Filename
	if CurrentPath != "" && !strings.HasPrefix(filename, "data:image/") && !filepath.IsAbs(filename) {
		filename = filepath.Join(CurrentPath, filename)
	}
	return filename
}

// Load 读取模板图像
func (t *Template) Load() (image.Image, error) {
	if t.image != nil {
		return t.image, nil
	}

	img, err := ReadImage(t.Path())
	if err != nil {
		return nil, err
	}
	t.image = img
	return img, nil
}

// Size 返回模板尺寸，需要先 Load
func (t *Template) Size() (int, int) {
	if t.image == nil {
		return 0, 0
	}
	return GetResolution(t.image)
}

// MatchResultIn 在屏幕图像中匹配模板，返回完整匹配结果
func (t *Template) MatchResultIn(screen image.Image) (*MatchResult, error) {
	tmpl, err := t.Load()
	if err != nil {
		return nil, err
	}
	screen, tmpl = t.prepare(screen, tmpl)
	return NewTemplateMatching(tmpl, screen, t.Threshold, t.Workers).FindBestResult()
}

// MatchInRegion 在屏幕图像的指定区域内匹配模板
// 返回的第二个值为裁剪出的区域（未做对比度调整），用于调试保存
func (t *Template) MatchInRegion(screen image.Image, region Region) (*MatchResult, image.Image, error) {
	tmpl, err := t.Load()
	if err != nil {
		return nil, nil, err
	}
	return matchInRegion(screen, tmpl, region, t.Threshold, t.Workers, t.prepare)
}

// prepare 对源图像和模板使用相同系数做对比度调整
func (t *Template) prepare(screen, tmpl image.Image) (image.Image, image.Image) {
	if t.Contrast <= 0 || t.Contrast == 1.0 {
		return screen, tmpl
	}
	return AdjustContrast(screen, t.Contrast), AdjustContrast(tmpl, t.Contrast)
}

// String 返回字符串表示
func (t *Template) String() string {
	return fmt.Sprintf("Template(%s)", t.Filename)
}

// FindLocation 便捷函数：在源图像中查找模板位置
func FindLocation(screen, template interface{}, opts ...TemplateOption) (*MatchResult, error) {
	// 加载源图像
	screenImg, err := LoadImageInput(screen)
	if err != nil {
		return nil, fmt.Errorf("加载源图像失败: %w", err)
	}

	// 处理模板
	var tmpl *Template
	switch v := template.(type) {
	case string:
		tmpl = NewTemplate(v, opts...)
	case image.Image:
		tmpl = NewTemplateFromImage(v, opts...)
	case *Template:
		tmpl = v
	default:
		return nil, fmt.Errorf("不支持的模板类型: %T", template)
	}

	return tmpl.MatchResultIn(screenImg)
}
