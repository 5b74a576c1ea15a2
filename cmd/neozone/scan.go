/*
 * @author: Sun977
 * @date: 2026.02.15
 * @description: Scan 子命令 (单次 WiFi 扫描)
 */

package main

import (
	"context"
	"fmt"
	"time"

	"neozone/internal/core/reporter"
	"neozone/internal/core/scanner/wifi"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	scanToolPath string
	scanTimeout  time.Duration
	scanCsvPath  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "单次扫描周围的 WiFi 网络",
	Long: `执行一次 WiFi 扫描并以表格形式输出观测到的接入点。
不做区域匹配，不修改任何状态，适合录制指纹前先观察周围环境。

示例:
  neozone scan
  neozone scan --oc networks.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := wifi.NewScanner(scanToolPath, scanTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		aps, err := s.Scan(ctx)
		if err != nil {
			return fmt.Errorf("wifi scan failed: %w", err)
		}

		pterm.Info.Printf("Found %d access points\n", len(aps))

		items := make([]reporter.TabularData, 0, len(aps))
		for _, ap := range aps {
			items = append(items, *ap)
		}

		rep := buildReporter(scanCsvPath)
		return rep.Report(items)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanToolPath, "tool", "", "nmcli 路径 (默认从 PATH 查找)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Second, "单次扫描超时")
	scanCmd.Flags().StringVar(&scanCsvPath, "oc", "", "同时输出 CSV 到指定文件")
}

// buildReporter 按需组合 Console/CSV 输出
func buildReporter(csvPath string) reporter.Reporter {
	if csvPath == "" {
		return reporter.NewConsoleReporter()
	}
	return reporter.NewMultiReporter(
		reporter.NewConsoleReporter(),
		reporter.NewCsvReporter(csvPath),
	)
}
