package zone

import (
	"context"
	"fmt"

	"neozone/internal/core/fingerprint"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewLearnCmd 创建 zone learn 命令
func NewLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <name>",
		Short: "为既有区域追加一条指纹",
		Long: `扫描当前的 WiFi 环境，为既有区域追加一条新指纹。
同一区域在不同时段多次学习，可以覆盖网络环境的波动。`,
		Example: `  neozone zone learn home`,
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
			if err := core.Store.AppendFingerprint(name, fp); err != nil {
				return err
			}

			pterm.Success.Printf("Zone %q learned a new fingerprint: %d networks, confidence %.1f\n",
				name, len(fp.WifiNetworks), fp.ConfidenceScore)
			return nil
		},
	}
}
