// Package cv 提供基于归一化互相关 (NCC) 的模板匹配
//
// 处理流程:
//   - 灰度转换 (ToGray)
//   - 对比度拉伸 (AdjustContrast)
//   - NCC 打分 (NCC)
//   - 按行并行的滑窗搜索，支持高置信度提前退出 (TemplateMatching)
//   - 限定区域搜索 (MatchInRegion)
//
// 不做特征点匹配，不做缩放/旋转不变匹配，也不做亚像素定位。
//
// 基本用法:
//
//	screen, _ := cv.ReadImage("screen.png")
//	tmpl := cv.NewTemplate("button.png", cv.WithTemplateThreshold(0.95))
//	result, err := tmpl.MatchResultIn(screen)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("位置: (%d, %d) 得分: %.3f\n", result.X, result.Y, result.Score)
package cv
