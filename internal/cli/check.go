package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1ndys/LinuxdoMonitor/internal/config"
	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
	"github.com/W1ndys/LinuxdoMonitor/internal/monitor"
	"github.com/W1ndys/LinuxdoMonitor/internal/notify"
	"github.com/W1ndys/LinuxdoMonitor/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check pass over all subscriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetGlobalConfig()

		checker := monitor.NewChecker(
			feed.NewLoader(config.GetFeedsDir()),
			feed.NewFetcher(),
			store.NewFileStore(config.GetDataFile()),
			notify.NewFeishuNotifier(cfg.FeishuWebhook, cfg.FeishuSecret),
		)

		if err := checker.Run(cmd.Context()); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
