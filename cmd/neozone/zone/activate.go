package zone

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewActivateCmd 创建 zone activate 命令
func NewActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "手动激活区域",
		Long: `不经过扫描匹配，直接将当前区域切换为指定区域。
适用于用户明确知道自己所在位置的场景。`,
		Example: `  neozone zone activate office`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, _, err := setupCore()
			if err != nil {
				return err
			}
			defer core.Locator.Stop()

			change, err := core.Locator.Activate(context.Background(), args[0])
			if err != nil {
				return err
			}

			if change == nil {
				pterm.Info.Printf("Zone %q is already active\n", args[0])
				return nil
			}

			pterm.Success.Printf("Zone activated: %q -> %q\n", change.From, change.To)
			return nil
		},
	}
}
