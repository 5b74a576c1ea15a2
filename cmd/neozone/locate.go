/*
 * @author: Sun977
 * @date: 2026.02.15
 * @description: Locate 子命令 (单次定位检测)
 */

package main

import (
	"context"
	"fmt"

	"neozone/internal/app/server/setup"
	"neozone/internal/config"
	"neozone/internal/core/reporter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	locateVerbose bool
)

// locateCmd represents the locate command
var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "单次定位检测",
	Long: `执行一轮 扫描->匹配->状态更新，输出判定的区域。
与守护进程共享指纹库和状态文件，检测结果会落盘。

示例:
  neozone locate
  neozone locate -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		core, err := setup.SetupCore(cfg)
		if err != nil {
			return err
		}
		defer core.Locator.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Scanner.Timeout)
		defer cancel()

		result, change, err := core.Locator.DetectOnce(ctx)
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}

		if result.Matched {
			pterm.Success.Printf("Current zone: %s (similarity %.3f)\n", result.ZoneName, result.Similarity)
		} else {
			pterm.Warning.Println("No zone detected")
		}
		if change != nil {
			pterm.Info.Printf("Zone change: %q -> %q\n", change.From, change.To)
		}

		// -v 输出每条指纹的评估明细
		if locateVerbose && len(result.Diagnostics) > 0 {
			items := make([]reporter.TabularData, 0, len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				items = append(items, d)
			}
			return reporter.NewConsoleReporter().Report(items)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)

	locateCmd.Flags().BoolVarP(&locateVerbose, "verbose", "v", false, "输出每条指纹的评估明细")
}
