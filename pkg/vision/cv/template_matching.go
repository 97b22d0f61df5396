package cv

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultThreshold 默认提前退出阈值，得分严格大于该值即停止派发新的行
	DefaultThreshold = 0.95
)

// ErrConfiguration 配置错误：模板大于搜索区域、搜索区域越界等
var ErrConfiguration = errors.New("匹配配置错误")

// TemplateMatching 模板匹配器
//
// 每一行候选 y 偏移作为一个任务，在有界 worker 池上并行执行。
// 多个 worker 时，若有多个偏移同时超过阈值，最终返回哪一个取决于调度顺序；
// 单个 worker 时结果完全确定（按行、按列升序，得分相同保留最先出现的位置）。
type TemplateMatching struct {
	imSearch  image.Image
	imSource  image.Image
	threshold float64
	workers   int
}

// NewTemplateMatching 创建模板匹配器
// workers <= 0 时使用 runtime.NumCPU()
func NewTemplateMatching(search, source image.Image, threshold float64, workers int) *TemplateMatching {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &TemplateMatching{
		imSearch:  search,
		imSource:  source,
		threshold: threshold,
		workers:   workers,
	}
}

// FindBestResult 查找最佳匹配结果
// 模板大于源图像时返回 nil 和 *SizeError
func (t *TemplateMatching) FindBestResult() (*MatchResult, error) {
	startTime := time.Now()

	// 检查图像尺寸
	if err := checkSourceLargerThanSearch(t.imSource, t.imSearch); err != nil {
		return nil, err
	}

	src := ToGray(t.imSource)
	tpl := ToGray(t.imSearch)

	srcW, srcH := src.Rect.Dx(), src.Rect.Dy()
	w, h := tpl.Rect.Dx(), tpl.Rect.Dy()

	tplPix := grayPixels(tpl)
	stats := ComputeStats(tplPix)

	best := &bestMatch{score: math.Inf(-1)}

	var g errgroup.Group
	g.SetLimit(t.workers)
	for y := 0; y <= srcH-h; y++ {
		// 已触发提前退出，不再派发新行
		if best.stopped() {
			break
		}
		row := y
		g.Go(func() error {
			if best.stopped() {
				return nil
			}
			x, score := scanRow(src, tplPix, stats, w, h, srcW, row)
			best.update(x, row, score, t.threshold)
			return nil
		})
	}
	_ = g.Wait()

	x, y, score := best.result()
	return &MatchResult{
		X:      x,
		Y:      y,
		Score:  score,
		Width:  w,
		Height: h,
		Time:   float64(time.Since(startTime).Microseconds()) / 1000.0,
	}, nil
}

// scanRow 扫描第 y 行的所有 x 偏移，返回本行最佳位置和得分
func scanRow(src *image.Gray, tplPix []uint8, stats Stats, w, h, srcW, y int) (int, float64) {
	region := make([]uint8, w*h)
	bestX, bestScore := 0, math.Inf(-1)

	for x := 0; x <= srcW-w; x++ {
		for dy := 0; dy < h; dy++ {
			off := (y+dy)*src.Stride + x
			copy(region[dy*w:(dy+1)*w], src.Pix[off:off+w])
		}
		score := NCC(region, tplPix, stats)
		if score > bestScore {
			bestX, bestScore = x, score
		}
	}
	return bestX, bestScore
}

// grayPixels 返回按行紧密排列的灰度像素
func grayPixels(g *image.Gray) []uint8 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if g.Stride == w {
		return g.Pix[:w*h]
	}
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		copy(pix[y*w:(y+1)*w], g.Pix[y*g.Stride:y*g.Stride+w])
	}
	return pix
}

// bestMatch 并行搜索的共享聚合：最佳位置、得分与停止标志一起加锁更新
type bestMatch struct {
	mu    sync.Mutex
	x, y  int
	score float64
	stop  bool
}

// update 比较并更新；得分严格大于阈值时设置停止标志
func (b *bestMatch) update(x, y int, score, threshold float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if score > b.score {
		b.x, b.y, b.score = x, y, score
		if score > threshold {
			b.stop = true
		}
	}
}

func (b *bestMatch) stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop
}

func (b *bestMatch) result() (int, int, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.x, b.y, b.score
}

// checkSourceLargerThanSearch 检查源图像是否不小于模板
func checkSourceLargerThanSearch(source, search image.Image) error {
	sw, sh := GetResolution(source)
	tw, th := GetResolution(search)
	if tw == 0 || th == 0 || sw < tw || sh < th {
		return &SizeError{
			SourceSize: [2]int{sw, sh},
			SearchSize: [2]int{tw, th},
		}
	}
	return nil
}

// SizeError 图像尺寸错误：模板大于源图像（或模板为空）
type SizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("模板尺寸不能大于图像尺寸: 模板 %dx%d, 图像 %dx%d",
		e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}

// Is 使 errors.Is(err, ErrConfiguration) 成立
func (e *SizeError) Is(target error) bool {
	return target == ErrConfiguration
}
