package config

import (
	"os"
	"path/filepath"
)

// GetMonitorHome returns the monitor home directory.
// It checks the MONITOR_HOME environment variable first,
// if not set, defaults to $HOME/.linuxdo-monitor
func GetMonitorHome() string {
	// Check MONITOR_HOME environment variable
	if monitorHome := os.Getenv("MONITOR_HOME"); monitorHome != "" {
		// Ensure the directory exists
		if err := os.MkdirAll(monitorHome, 0755); err != nil {
			// If we can't create the custom directory, fall back to default
			return getDefaultMonitorHome()
		}
		return monitorHome
	}

	return getDefaultMonitorHome()
}

// getDefaultMonitorHome returns the default home directory ($HOME/.linuxdo-monitor)
func getDefaultMonitorHome() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home directory
		return ".linuxdo-monitor"
	}

	monitorHome := filepath.Join(homeDir, ".linuxdo-monitor")

	// Ensure the directory exists
	os.MkdirAll(monitorHome, 0755)

	return monitorHome
}

// GetFeedsDir returns the feed subscription directory within the monitor home
func GetFeedsDir() string {
	return filepath.Join(GetMonitorHome(), "feeds")
}

// GetDataFile returns the stored feed item file path
func GetDataFile() string {
	return filepath.Join(GetMonitorHome(), "rss_feed_data.json")
}
