package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1ndys/LinuxdoMonitor/internal/config"
	"github.com/W1ndys/LinuxdoMonitor/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all stored items so every entry counts as new again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileStore := store.NewFileStore(config.GetDataFile())

		if err := fileStore.Reset(); err != nil {
			return fmt.Errorf("failed to reset stored items: %w", err)
		}

		fmt.Printf("Stored items removed from %s\n", fileStore.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
