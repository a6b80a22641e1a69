package monitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
	"github.com/W1ndys/LinuxdoMonitor/internal/notify"
	"github.com/W1ndys/LinuxdoMonitor/internal/store"
)

const checkFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Channel</title>
    <item><title>Post one</title><link>https://example.com/1</link><guid>guid-1</guid></item>
    <item><title>Post two</title><link>https://example.com/2</link><guid>guid-2</guid></item>
  </channel>
</rss>`

func writeFeedConfig(t *testing.T, feedsDir, name, url string) {
	t.Helper()
	if err := os.MkdirAll(feedsDir, 0755); err != nil {
		t.Fatalf("failed to create feeds dir: %v", err)
	}
	content := fmt.Sprintf("url = %q\n", url)
	if err := os.WriteFile(filepath.Join(feedsDir, name+".toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write feed config: %v", err)
	}
}

func newTestChecker(t *testing.T, feedsDir string, dataFile string, notifier *notify.FeishuNotifier) *Checker {
	t.Helper()
	return NewChecker(
		feed.NewLoader(feedsDir),
		feed.NewFetcher(),
		store.NewFileStore(dataFile),
		notifier,
	)
}

func TestCheckerRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(checkFixture))
	}))
	defer server.Close()

	dir := t.TempDir()
	feedsDir := filepath.Join(dir, "feeds")
	dataFile := filepath.Join(dir, "rss_feed_data.json")
	writeFeedConfig(t, feedsDir, "test", server.URL)

	checker := newTestChecker(t, feedsDir, dataFile, notify.NewFeishuNotifier("", ""))

	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	items, err := store.NewFileStore(dataFile).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("stored %d items, want 2", len(items))
	}

	// A second pass over the same feed stores the same items again
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	items, _ = store.NewFileStore(dataFile).Load()
	if len(items) != 2 {
		t.Errorf("stored %d items after second pass, want 2", len(items))
	}
}

func TestCheckerNotifiesOnlyNewItems(t *testing.T) {
	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(checkFixture))
	}))
	defer feedServer.Close()

	notifications := int32(0)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&notifications, 1)
		w.Write([]byte(`{"code":0}`))
	}))
	defer webhook.Close()

	dir := t.TempDir()
	feedsDir := filepath.Join(dir, "feeds")
	dataFile := filepath.Join(dir, "rss_feed_data.json")
	writeFeedConfig(t, feedsDir, "test", feedServer.URL)

	checker := newTestChecker(t, feedsDir, dataFile, notify.NewFeishuNotifier(webhook.URL, ""))

	// First pass: everything is new, one notification
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := atomic.LoadInt32(&notifications); got != 1 {
		t.Errorf("got %d notifications after first pass, want 1", got)
	}

	// Second pass: nothing new, no further notification
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if got := atomic.LoadInt32(&notifications); got != 1 {
		t.Errorf("got %d notifications after second pass, want 1", got)
	}
}

func TestCheckerFetchFailureKeepsStore(t *testing.T) {
	// Server that immediately goes away
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	dir := t.TempDir()
	feedsDir := filepath.Join(dir, "feeds")
	dataFile := filepath.Join(dir, "rss_feed_data.json")
	writeFeedConfig(t, feedsDir, "gone", url)

	fileStore := store.NewFileStore(dataFile)
	existing := []feed.Item{{Title: "Old post", Link: "https://example.com/old", GUID: "old-1", Feed: "gone"}}
	if err := fileStore.Save(existing); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	checker := newTestChecker(t, feedsDir, dataFile, notify.NewFeishuNotifier("", ""))

	// The fetch failure is reported, not returned
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	items, err := fileStore.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(items) != 1 || items[0].GUID != "old-1" {
		t.Errorf("stored items = %v, want the pre-existing item kept", items)
	}
}

func TestCheckerRetainsItemsOfFailedFeeds(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(checkFixture))
	}))
	defer okServer.Close()

	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadServer.URL
	deadServer.Close()

	dir := t.TempDir()
	feedsDir := filepath.Join(dir, "feeds")
	dataFile := filepath.Join(dir, "rss_feed_data.json")
	writeFeedConfig(t, feedsDir, "alive", okServer.URL)
	writeFeedConfig(t, feedsDir, "dead", deadURL)

	fileStore := store.NewFileStore(dataFile)
	existing := []feed.Item{{Title: "Dead feed post", Link: "https://example.com/d", GUID: "dead-1", Feed: "dead"}}
	if err := fileStore.Save(existing); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	checker := newTestChecker(t, feedsDir, dataFile, notify.NewFeishuNotifier("", ""))
	if err := checker.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	items, err := fileStore.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Two items from the live feed plus the retained dead-feed item
	if len(items) != 3 {
		t.Fatalf("stored %d items, want 3", len(items))
	}

	guids := make(map[string]bool)
	for _, item := range items {
		guids[item.GUID] = true
	}
	if !guids["dead-1"] {
		t.Error("item of the failed feed should be retained")
	}
	if !guids["guid-1"] || !guids["guid-2"] {
		t.Error("items of the live feed should be stored")
	}
}
