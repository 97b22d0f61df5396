package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoeyai/zfinder/pkg/auto/window"
)

func newWindowsCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "windows [filter]",
		Short: "列出窗口（可按标题或进程名过滤）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			windows, err := window.List(args...)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PID\tTITLE\tOWNER\tBOUNDS\tMINIMIZED")
			for _, w := range windows {
				b := w.Bounds
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d,%d %dx%d\t%v\n",
					w.PID, w.Title, w.OwnerName, b.X, b.Y, b.Width, b.Height, w.Minimized())
			}
			return tw.Flush()
		},
	}
}
