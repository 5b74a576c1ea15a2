package zone

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewRemoveCmd 创建 zone remove 命令
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "删除区域",
		Example: `  neozone zone remove home`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, _, err := setupCore()
			if err != nil {
				return err
			}
			defer core.Locator.Stop()

			if err := core.Store.Remove(args[0]); err != nil {
				return err
			}

			pterm.Success.Printf("Zone %q removed\n", args[0])
			return nil
		},
	}
}
