package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Some servers reject unadorned clients, so present a browser UA
const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const fetchTimeout = 10 * time.Second

// Fetcher downloads and parses RSS/Atom subscriptions
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a fetcher with the default HTTP client settings
func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	parser.UserAgent = fetchUserAgent

	return &Fetcher{parser: parser}
}

// Fetch downloads the subscription and returns its items.
// Entries without both a GUID and a link are dropped; a missing GUID
// falls back to the link, a missing link is recorded as "N/A".
func (f *Fetcher) Fetch(ctx context.Context, sub *Subscription) ([]Item, error) {
	parsed, err := f.parser.ParseURLWithContext(sub.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed '%s': %w", sub.Label(), err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item, ok := normalizeEntry(entry)
		if ok {
			item.Feed = sub.Name
			items = append(items, item)
		}
	}

	return items, nil
}

// normalizeEntry maps a parsed feed entry onto the stored item shape
func normalizeEntry(entry *gofeed.Item) (Item, bool) {
	title := strings.TrimSpace(entry.Title)
	link := strings.TrimSpace(entry.Link)

	guid := strings.TrimSpace(entry.GUID)
	if guid == "" {
		// Fall back to the link as the unique identifier
		guid = link
	}

	if title == "" || guid == "" {
		return Item{}, false
	}

	if link == "" {
		// Edge case: entry carries a GUID but no link
		link = "N/A"
	}

	return Item{Title: title, Link: link, GUID: guid}, true
}
