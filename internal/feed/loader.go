package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFeedName is the builtin subscription used when none are configured
const DefaultFeedName = "linuxdo-welfare"

// DefaultFeedURL is the linux.do welfare category feed
const DefaultFeedURL = "https://linux.do/c/welfare/36.rss"

// Loader loads feed subscriptions from a directory of TOML files
type Loader struct {
	feedsDir string
}

// NewLoader creates a loader for the given subscription directory
func NewLoader(feedsDir string) *Loader {
	return &Loader{feedsDir: feedsDir}
}

// BuiltinSubscription returns the default subscription used when the
// feeds directory holds no configuration
func BuiltinSubscription() *Subscription {
	return &Subscription{
		Name:        DefaultFeedName,
		DisplayName: "linux.do welfare",
		URL:         DefaultFeedURL,
	}
}

// Load returns all enabled subscriptions in name order.
// When no subscription files exist the builtin default is returned.
func (l *Loader) Load() ([]*Subscription, error) {
	entries, err := os.ReadDir(l.feedsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Subscription{BuiltinSubscription()}, nil
		}
		return nil, fmt.Errorf("failed to read feeds directory: %w", err)
	}

	var subs []*Subscription
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		sub, err := l.loadFile(filepath.Join(l.feedsDir, entry.Name()))
		if err != nil {
			fmt.Printf("Warning: Skipping feed config %s: %v\n", entry.Name(), err)
			continue
		}

		if sub.Disabled {
			continue
		}
		subs = append(subs, sub)
	}

	if len(subs) == 0 {
		return []*Subscription{BuiltinSubscription()}, nil
	}

	sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	return subs, nil
}

// Get returns a single subscription by name
func (l *Loader) Get(name string) (*Subscription, error) {
	if name == DefaultFeedName {
		if _, err := os.Stat(l.configPath(name)); os.IsNotExist(err) {
			return BuiltinSubscription(), nil
		}
	}
	return l.loadFile(l.configPath(name))
}

// Add saves a new subscription configuration file
func (l *Loader) Add(sub *Subscription) error {
	if sub.Name == "" {
		return fmt.Errorf("feed name cannot be empty")
	}
	if sub.URL == "" {
		return fmt.Errorf("feed URL cannot be empty")
	}

	configPath := l.configPath(sub.Name)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("feed '%s' already exists", sub.Name)
	}

	if err := os.MkdirAll(l.feedsDir, 0755); err != nil {
		return fmt.Errorf("failed to create feeds directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create feed config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(sub); err != nil {
		return fmt.Errorf("failed to write feed config file: %w", err)
	}

	return nil
}

// Del removes a subscription configuration file
func (l *Loader) Del(name string) error {
	configPath := l.configPath(name)
	if err := os.Remove(configPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("feed '%s' does not exist", name)
		}
		return fmt.Errorf("failed to delete feed config file: %w", err)
	}
	return nil
}

func (l *Loader) loadFile(path string) (*Subscription, error) {
	var sub Subscription
	if _, err := toml.DecodeFile(path, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode feed config: %w", err)
	}

	sub.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	if sub.URL == "" {
		return nil, fmt.Errorf("feed config %s has no url", path)
	}

	return &sub, nil
}

func (l *Loader) configPath(name string) string {
	return filepath.Join(l.feedsDir, name+".toml")
}
