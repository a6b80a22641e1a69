package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/W1ndys/LinuxdoMonitor/internal/config"
	"github.com/W1ndys/LinuxdoMonitor/internal/monitor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the periodic monitor loop in the foreground",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetGlobalConfig()

		command := monitor.ResolveCheckCommand(cfg.CheckCommand)
		mon := monitor.NewMonitor(cfg.CheckInterval(), command)

		// Set up signal handling for graceful shutdown
		setupSignalHandling(mon)

		// Blocks until the process is signalled
		mon.Start()
		return nil
	},
}

// setupSignalHandling exits the whole process on SIGINT/SIGTERM,
// without waiting for an in-flight check or the remaining sleep
func setupSignalHandling(mon *monitor.Monitor) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Printf("\nReceived signal %v, stopping monitor...\n", sig)

		mon.Stop()

		os.Exit(0)
	}()
}

func init() {
	rootCmd.AddCommand(runCmd)
}
