package cv

import "math"

// Stats 像素均值与总体标准差
type Stats struct {
	Mean   float64
	StdDev float64
}

// ComputeStats 计算像素数据的均值和总体标准差
func ComputeStats(pix []uint8) Stats {
	n := len(pix)
	if n == 0 {
		return Stats{}
	}

	var sum uint64
	for _, v := range pix {
		sum += uint64(v)
	}
	mean := float64(sum) / float64(n)

	var variance float64
	for _, v := range pix {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(n)

	return Stats{Mean: mean, StdDev: math.Sqrt(variance)}
}

// NCC 计算两个等大像素区域的归一化互相关系数
// tmpl 为模板的预计算统计量，region 与 template 长度必须一致。
// 任一区域标准差为 0（纯色区域）时返回 0。
func NCC(region, template []uint8, tmpl Stats) float64 {
	n := len(template)
	if n == 0 || len(region) != n {
		return 0
	}

	img := ComputeStats(region)
	if img.StdDev == 0 || tmpl.StdDev == 0 {
		return 0
	}

	denom := img.StdDev * tmpl.StdDev
	var sum float64
	for i := 0; i < n; i++ {
		sum += ((float64(region[i]) - img.Mean) * (float64(template[i]) - tmpl.Mean)) / denom
	}
	return sum / float64(n)
}
