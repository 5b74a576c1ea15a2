package zone

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewShowCmd 创建 zone show 命令
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <name>",
		Short:   "查看区域详情",
		Example: `  neozone zone show home`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, _, err := setupCore()
			if err != nil {
				return err
			}
			defer core.Locator.Stop()

			z, err := core.Store.Get(args[0])
			if err != nil {
				return err
			}

			pterm.DefaultSection.Printf("Zone: %s", z.Name)
			pterm.Info.Printf("Created: %s\n", z.CreatedAt.Format("2006-01-02 15:04:05"))
			pterm.Info.Printf("Matches: %d\n", z.MatchCount)
			if z.LastMatched != nil {
				pterm.Info.Printf("Last matched: %s\n", z.LastMatched.Format("2006-01-02 15:04:05"))
			}

			tableData := pterm.TableData{{"FP#", "Networks", "Confidence", "Recorded"}}
			for i, fp := range z.Fingerprints {
				tableData = append(tableData, []string{
					fmt.Sprintf("%d", i),
					fmt.Sprintf("%d", len(fp.WifiNetworks)),
					fmt.Sprintf("%.1f", fp.ConfidenceScore),
					fp.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}

			return pterm.DefaultTable.
				WithHasHeader(true).
				WithBoxed(false).
				WithData(tableData).
				Render()
		},
	}
}
