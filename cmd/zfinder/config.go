package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "查看或初始化配置文件",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "显示当前生效的配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(root.cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "将当前生效的配置写入配置文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := root.manager()
			if err := m.Save(root.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "配置已保存到 %s\n", m.GetConfigFile())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "删除配置文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := root.manager()
			if !m.Exists() {
				fmt.Fprintf(cmd.OutOrStdout(), "配置文件不存在: %s\n", m.GetConfigFile())
				return nil
			}
			if err := m.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已删除 %s\n", m.GetConfigFile())
			return nil
		},
	})

	return cmd
}
