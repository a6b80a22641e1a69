package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1ndys/LinuxdoMonitor/internal/config"
	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
)

var addDisplayName string

var addCmd = &cobra.Command{
	Use:   "add [feed-name] [url]",
	Short: "Add a feed subscription",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := feed.NewLoader(config.GetFeedsDir())

		sub := &feed.Subscription{
			Name:        args[0],
			DisplayName: addDisplayName,
			URL:         args[1],
		}
		if err := loader.Add(sub); err != nil {
			return fmt.Errorf("failed to add feed: %w", err)
		}

		fmt.Printf("Feed '%s' added successfully\n", sub.Name)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List feed subscriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := feed.NewLoader(config.GetFeedsDir())

		subs, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to list feeds: %w", err)
		}

		fmt.Printf("%-24s %s\n", "NAME", "URL")
		for _, sub := range subs {
			name := sub.Name
			if sub.Name == feed.DefaultFeedName && len(subs) == 1 {
				name = sub.Name + " (builtin)"
			}
			fmt.Printf("%-24s %s\n", name, sub.URL)
		}
		return nil
	},
}

var delCmd = &cobra.Command{
	Use:   "del [feed-name]",
	Short: "Delete a feed subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := feed.NewLoader(config.GetFeedsDir())

		if err := loader.Del(args[0]); err != nil {
			return fmt.Errorf("failed to delete feed: %w", err)
		}

		fmt.Printf("Feed '%s' deleted successfully\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDisplayName, "display-name", "", "human readable name used in notifications")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(delCmd)
}
