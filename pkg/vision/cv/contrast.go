package cv

import (
	"image"
	"image/color"
)

// DefaultContrast 默认对比度系数
const DefaultContrast = 1.5

// AdjustContrast 调整图像对比度，返回新图像，不修改输入
// factor = 1.0 不变，> 1.0 增强对比度，< 1.0 减弱对比度；alpha 通道原样保留
func AdjustContrast(img image.Image, factor float64) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	// 256 项查找表，所有通道共用
	var lut [256]uint8
	for c := 0; c < 256; c++ {
		lut[c] = contrastChannel(uint8(c), factor)
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			p := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, color.NRGBA{
				R: lut[p.R],
				G: lut[p.G],
				B: lut[p.B],
				A: p.A,
			})
		}
	}
	return dst
}

// contrastChannel 对单个通道值应用线性对比度拉伸，截断取整后限制在 [0, 255]
func contrastChannel(c uint8, factor float64) uint8 {
	// (c/255)*factor*255 化简为 c*factor，factor = 1.0 时结果精确等于 c
	adjusted := int(128.0 - 128.0*factor + float64(c)*factor)
	if adjusted < 0 {
		return 0
	}
	if adjusted > 255 {
		return 255
	}
	return uint8(adjusted)
}
