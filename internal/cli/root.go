package cli

import (
	"github.com/spf13/cobra"

	"github.com/W1ndys/LinuxdoMonitor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "linuxdo-monitor",
	Short: "linuxdo-monitor - Periodic RSS monitor with Feishu notifications",
	Long: `linuxdo-monitor periodically checks RSS/Atom subscriptions (linux.do
welfare category by default), remembers which entries it has already seen
and pushes new entries to a Feishu bot webhook.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global configuration flags
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", "", "config file path (default: ~/.linuxdo-monitor/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&config.Verbose, "verbose", false, "verbose output")
}

func initConfig() {
	config.InitConfig()
}
