package main

import (
	"encoding/json"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	var (
		regionStr string
		threshold float64
		contrast  float64
		workers   int
		saveCrop  string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "match <image> <template>",
		Short: "在图片文件中查找模板，输出最佳位置和得分",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Threshold
			}
			if !cmd.Flags().Changed("contrast") {
				contrast = cfg.EffectiveContrast()
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}

			screen, err := cv.ReadImage(args[0])
			if err != nil {
				return err
			}
			tmpl := cv.NewTemplate(args[1],
				cv.WithTemplateThreshold(threshold),
				cv.WithTemplateContrast(contrast),
				cv.WithTemplateWorkers(workers),
			)

			var result *cv.MatchResult
			if regionStr != "" {
				region, err := parseRegion(regionStr)
				if err != nil {
					return err
				}
				var cropped image.Image
				result, cropped, err = tmpl.MatchInRegion(screen, region)
				if cropped != nil && saveCrop != "" {
					if werr := cv.WriteImage(saveCrop, cropped); werr != nil {
						return werr
					}
				}
			} else {
				result, err = cv.FindLocation(screen, tmpl)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			center := result.Center()
			fmt.Fprintf(out, "x=%d y=%d score=%.6f center=(%d,%d) size=%dx%d time=%.1fms\n",
				result.X, result.Y, result.Score, center.X, center.Y, result.Width, result.Height, result.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&regionStr, "region", "", "搜索区域 x,y,w,h")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.95, "提前退出阈值")
	cmd.Flags().Float64Var(&contrast, "contrast", 1.5, "对比度系数，1 表示不调整")
	cmd.Flags().IntVar(&workers, "workers", 0, "并行 worker 数")
	cmd.Flags().StringVar(&saveCrop, "save-crop", "", "保存区域裁剪图的路径")
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出结果")
	return cmd
}

// parseRegion 解析 "x,y,w,h" 格式的区域
func parseRegion(s string) (cv.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return cv.Region{}, fmt.Errorf("区域格式应为 x,y,w,h: %q", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return cv.Region{}, fmt.Errorf("区域参数不是整数 %q: %w", p, err)
		}
		v[i] = n
	}
	return cv.Region{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
