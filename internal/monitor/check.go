package monitor

import (
	"context"
	"fmt"

	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
	"github.com/W1ndys/LinuxdoMonitor/internal/notify"
	"github.com/W1ndys/LinuxdoMonitor/internal/store"
)

// Checker runs a single check pass: fetch every subscription, compare
// against the stored items, notify the new ones and save the result.
type Checker struct {
	loader   *feed.Loader
	fetcher  *feed.Fetcher
	store    *store.FileStore
	notifier *notify.FeishuNotifier
}

// NewChecker wires a check pass from its parts
func NewChecker(loader *feed.Loader, fetcher *feed.Fetcher, fileStore *store.FileStore, notifier *notify.FeishuNotifier) *Checker {
	return &Checker{
		loader:   loader,
		fetcher:  fetcher,
		store:    fileStore,
		notifier: notifier,
	}
}

// Run performs one check pass. A fetch failure for one subscription is
// reported and skips that subscription; it never aborts the pass.
func (c *Checker) Run(ctx context.Context) error {
	subs, err := c.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	stored, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load stored items: %w", err)
	}

	storedGUIDs := make(map[string]bool, len(stored))
	for _, item := range stored {
		if item.GUID != "" {
			storedGUIDs[item.GUID] = true
		}
	}
	fmt.Printf("Checker: loaded %d stored item GUID(s)\n", len(storedGUIDs))

	fetched := make(map[string]bool)
	var current []feed.Item

	for _, sub := range subs {
		fmt.Printf("Checker: fetching %s (%s)\n", sub.Label(), sub.URL)

		items, err := c.fetcher.Fetch(ctx, sub)
		if err != nil {
			fmt.Printf("Checker: %v\n", err)
			continue
		}
		if len(items) == 0 {
			fmt.Printf("Checker: %s is empty or could not be parsed, no new items\n", sub.Label())
			continue
		}

		fmt.Printf("Checker: fetched %d item(s) from %s\n", len(items), sub.Label())
		fetched[sub.Name] = true
		current = append(current, items...)

		newItems := make([]feed.Item, 0)
		for _, item := range items {
			if !storedGUIDs[item.GUID] {
				newItems = append(newItems, item)
			}
		}

		if len(newItems) == 0 {
			fmt.Printf("Checker: no new items in %s\n", sub.Label())
			continue
		}

		fmt.Printf("Checker: found %d new item(s) in %s\n", len(newItems), sub.Label())
		for i, item := range newItems {
			fmt.Printf("  %d. %s\n     %s\n", i+1, item.Title, item.Link)
		}

		if err := c.notifier.NotifyNewItems(ctx, sub.Label(), newItems); err != nil {
			fmt.Printf("Checker: failed to notify new items for %s: %v\n", sub.Label(), err)
		}
	}

	if len(fetched) == 0 {
		fmt.Println("Checker: no subscription could be fetched, keeping stored items")
		return nil
	}

	// Keep stored items of subscriptions that failed this pass so
	// their entries are not re-reported next time
	for _, item := range stored {
		if !fetched[item.Feed] {
			current = append(current, item)
		}
	}

	fmt.Printf("Checker: saving %d item(s) to %s\n", len(current), c.store.Path())
	if err := c.store.Save(current); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}

	return nil
}
