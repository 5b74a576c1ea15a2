package zone

import (
	"fmt"

	"neozone/internal/app/server/setup"
	"neozone/internal/config"

	"github.com/spf13/cobra"
)

// NewZoneCmd 创建 zone 父命令
func NewZoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "区域指纹管理",
		Long: `管理区域指纹库: 录制、追加学习、查看、删除、手动激活。
请使用具体的子命令。`,
	}

	// 注册子命令
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewLearnCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewActivateCmd())

	return cmd
}

// setupCore 加载配置并装配核心组件，所有子命令共用
func setupCore() (*setup.Core, *config.Config, error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	core, err := setup.SetupCore(cfg)
	if err != nil {
		return nil, nil, err
	}

	return core, cfg, nil
}
