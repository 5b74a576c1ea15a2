package zone

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewListCmd 创建 zone list 命令
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部区域",
		Example: `  neozone zone list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, _, err := setupCore()
			if err != nil {
				return err
			}
			defer core.Locator.Stop()

			zones := core.Store.List()
			if len(zones) == 0 {
				pterm.Warning.Println("No zones recorded yet. Use 'neozone zone add <name>' first.")
				return nil
			}

			current := core.Locator.Status().CurrentZone

			tableData := pterm.TableData{{"Name", "Fingerprints", "Matches", "Last Matched", "Current"}}
			for _, z := range zones {
				lastMatched := "-"
				if z.LastMatched != nil {
					lastMatched = z.LastMatched.Format("2006-01-02 15:04:05")
				}
				isCurrent := ""
				if z.Name == current {
					isCurrent = "*"
				}
				tableData = append(tableData, []string{
					z.Name,
					fmt.Sprintf("%d", len(z.Fingerprints)),
					fmt.Sprintf("%d", z.MatchCount),
					lastMatched,
					isCurrent,
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
