package zone

import (
	"context"
	"fmt"

	"neozone/internal/core/fingerprint"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewAddCmd 创建 zone add 命令
func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "录制当前环境为新区域",
		Long: `扫描当前的 WiFi 环境，将观测转为隐私化指纹并创建新区域。
原始 SSID 不落盘，指纹中仅保存哈希与厂商前缀。`,
		Example: `  neozone zone add home`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			core, cfg, err := setupCore()
			if err != nil {
				return err
			}
			defer core.Locator.Stop()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Scanner.Timeout)
			defer cancel()

			pterm.Info.Println("Scanning WiFi environment...")
			aps, err := core.Scanner.Scan(ctx)
			if err != nil {
				return fmt.Errorf("wifi scan failed: %w", err)
			}

			fp := fingerprint.Capture(aps)
			if err := core.Store.Add(name, fp); err != nil {
				return err
			}

			pterm.Success.Printf("Zone %q created: %d networks, confidence %.1f\n",
				name, len(fp.WifiNetworks), fp.ConfidenceScore)
			return nil
		},
	}
}
