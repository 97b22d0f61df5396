package cv

import (
	"fmt"
	"image"
)

// RegionErrorKind 区域校验失败类型
type RegionErrorKind int

const (
	// RegionTooSmall 搜索区域小于模板
	RegionTooSmall RegionErrorKind = iota + 1
	// RegionOutOfBounds 搜索区域超出截图范围
	RegionOutOfBounds
)

func (k RegionErrorKind) String() string {
	switch k {
	case RegionTooSmall:
		return "search area smaller than template"
	case RegionOutOfBounds:
		return "search area exceeds captured bounds"
	default:
		return "unknown"
	}
}

// RegionError 限定区域搜索的参数错误
type RegionError struct {
	Kind         RegionErrorKind
	Region       Region
	TemplateSize [2]int
	SourceSize   [2]int
}

func (e *RegionError) Error() string {
	r := e.Region
	switch e.Kind {
	case RegionTooSmall:
		return fmt.Sprintf("设置的搜索区域小于模版尺寸 (%s): %d<%d, %d<%d",
			e.Kind, r.Width, e.TemplateSize[0], r.Height, e.TemplateSize[1])
	case RegionOutOfBounds:
		return fmt.Sprintf("设置的搜索区域超过窗口区域 (%s): %d+%d>%d, %d+%d>%d",
			e.Kind, r.X, r.Width, e.SourceSize[0], r.Y, r.Height, e.SourceSize[1])
	default:
		return "搜索区域错误"
	}
}

// Is 使 errors.Is(err, ErrConfiguration) 成立
func (e *RegionError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidateRegion 校验搜索区域：先检查是否容得下模板，再检查是否越界
func ValidateRegion(source, template image.Image, region Region) error {
	sw, sh := GetResolution(source)
	tw, th := GetResolution(template)

	if region.Width < tw || region.Height < th {
		return &RegionError{
			Kind:         RegionTooSmall,
			Region:       region,
			TemplateSize: [2]int{tw, th},
			SourceSize:   [2]int{sw, sh},
		}
	}
	// 用减法比较，避免 X+Width 溢出
	if region.X < 0 || region.Y < 0 || region.X > sw-region.Width || region.Y > sh-region.Height {
		return &RegionError{
			Kind:         RegionOutOfBounds,
			Region:       region,
			TemplateSize: [2]int{tw, th},
			SourceSize:   [2]int{sw, sh},
		}
	}
	return nil
}

// MatchInRegion 在源图像的指定区域内匹配模板
// 校验失败时不做任何比较；成功时返回的坐标已换算回源图像坐标系。
// 第二个返回值为裁剪后的区域图像，供调试输出使用。
func MatchInRegion(source, template image.Image, region Region, threshold float64, workers int) (*MatchResult, image.Image, error) {
	return matchInRegion(source, template, region, threshold, workers, nil)
}

// preprocessFunc 在匹配前对裁剪区域和模板做同样的预处理
type preprocessFunc func(src, tmpl image.Image) (image.Image, image.Image)

// matchInRegion 校验、裁剪、预处理、匹配并换算坐标
// 返回的裁剪图为预处理之前的区域
func matchInRegion(source, template image.Image, region Region, threshold float64, workers int, pre preprocessFunc) (*MatchResult, image.Image, error) {
	if err := ValidateRegion(source, template, region); err != nil {
		return nil, nil, err
	}

	cropped := CropImage(source, region.Rect())
	src, tmpl := image.Image(cropped), template
	if pre != nil {
		src, tmpl = pre(src, tmpl)
	}
	result, err := NewTemplateMatching(tmpl, src, threshold, workers).FindBestResult()
	if err != nil {
		return nil, cropped, err
	}

	result.translate(region.X, region.Y)
	return result, cropped, nil
}
