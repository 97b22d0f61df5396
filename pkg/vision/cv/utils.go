package cv

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage 读取图像文件
// 支持 png/jpeg/gif/bmp/tiff/webp，以及 data:image/...;base64, 形式的 data URL
func ReadImage(filename string) (image.Image, error) {
	if strings.HasPrefix(filename, "data:image/") {
		return decodeDataURL(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("无法读取图像: %s: %w", filename, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("无法解码图像: %s: %w", filename, err)
	}
	return img, nil
}

// decodeDataURL 解码 base64 data URL
func decodeDataURL(url string) (image.Image, error) {
	idx := strings.Index(url, ",")
	if idx < 0 {
		return nil, fmt.Errorf("无效的 data URL")
	}
	data, err := base64.StdEncoding.DecodeString(url[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("base64 解码失败: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("无法解码图像: %w", err)
	}
	return img, nil
}

// WriteImage 保存 PNG 图像文件
func WriteImage(filename string, img image.Image) error {
	// 确保目录存在
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("保存图像失败: %s: %w", filename, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("PNG 编码失败: %w", err)
	}
	return nil
}

// ToGray 转换为灰度图，结果原点为 (0, 0)
func ToGray(src image.Image) *image.Gray {
	b := src.Bounds()
	if g, ok := src.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}

	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetGray(x, y, color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray))
		}
	}
	return dst
}

// GetResolution 获取图像分辨率 (width, height)
func GetResolution(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// CropImage 裁剪图像，返回原点为 (0, 0) 的新图像
// rect 使用相对于图像左上角的坐标
func CropImage(img image.Image, rect image.Rectangle) *image.NRGBA {
	b := img.Bounds()
	rect = rect.Add(b.Min).Intersect(b)

	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}

// LoadImageInput 加载图像输入
// 支持 string (文件路径或 data URL)、image.Image
func LoadImageInput(input interface{}) (image.Image, error) {
	switch v := input.(type) {
	case string:
		return ReadImage(v)
	case image.Image:
		return v, nil
	default:
		return nil, fmt.Errorf("不支持的图像输入类型: %T", input)
	}
}
