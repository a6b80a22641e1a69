package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
)

// FileStore persists the last fetched feed items as a JSON file.
// Every save goes through a temp file and an atomic rename, with a
// backup copy of the previous contents kept next to the main file.
type FileStore struct {
	dataPath string
	mu       sync.RWMutex
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(dataPath string) *FileStore {
	return &FileStore{
		dataPath: dataPath,
	}
}

// Path returns the backing file path
func (fs *FileStore) Path() string {
	return fs.dataPath
}

// Load reads the stored items. A missing file is an empty store.
func (fs *FileStore) Load() ([]feed.Item, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.loadUnsafe()
}

// GUIDSet returns the set of stored item GUIDs
func (fs *FileStore) GUIDSet() (map[string]bool, error) {
	items, err := fs.Load()
	if err != nil {
		return nil, err
	}

	guids := make(map[string]bool, len(items))
	for _, item := range items {
		if item.GUID != "" {
			guids[item.GUID] = true
		}
	}

	return guids, nil
}

// Save replaces the stored items with the given list
func (fs *FileStore) Save(items []feed.Item) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.saveUnsafe(items)
}

// Reset removes the backing file so every item counts as new again
func (fs *FileStore) Reset() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.dataPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove data file: %w", err)
	}
	return nil
}

// loadUnsafe loads items (no lock, internal use)
func (fs *FileStore) loadUnsafe() ([]feed.Item, error) {
	data, err := os.ReadFile(fs.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return empty store
			return []feed.Item{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		// JSON parsing failed, attempt recovery
		fmt.Printf("Warning: Data file corrupted, attempting recovery: %v\n", err)

		if recovered, recoverErr := fs.recoverCorruptedData(); recoverErr == nil {
			return recovered, nil
		}

		// Recovery failed, set the corrupted file aside and start empty
		fs.backupCorruptedData()
		return []feed.Item{}, nil
	}

	return items, nil
}

// recoverCorruptedData attempts to recover the item list from the backup file
func (fs *FileStore) recoverCorruptedData() ([]feed.Item, error) {
	backupPath := fs.dataPath + ".backup"
	if _, err := os.Stat(backupPath); err != nil {
		return nil, fmt.Errorf("no backup file available")
	}

	fmt.Printf("Attempting to recover from backup file: %s\n", backupPath)

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("backup file also corrupted: %w", err)
	}

	// Recovery successful, save back to the main file
	if err := fs.saveUnsafe(items); err != nil {
		fmt.Printf("Warning: Failed to save recovered data: %v\n", err)
	} else {
		fmt.Println("Successfully recovered items from backup")
	}

	return items, nil
}

// backupCorruptedData sets the corrupted data file aside with a timestamp suffix
func (fs *FileStore) backupCorruptedData() {
	corruptedPath := fs.dataPath + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(fs.dataPath, corruptedPath); err != nil {
		fmt.Printf("Warning: Failed to back up corrupted data file: %v\n", err)
	} else {
		fmt.Printf("Corrupted data file backed up to: %s\n", corruptedPath)
	}
}

// saveUnsafe saves items (no lock, internal use)
func (fs *FileStore) saveUnsafe(items []feed.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal item data: %w", err)
	}

	// Create backup (if main file exists)
	if _, err := os.Stat(fs.dataPath); err == nil {
		backupPath := fs.dataPath + ".backup"
		if err := fs.copyFile(fs.dataPath, backupPath); err != nil {
			fmt.Printf("Warning: Failed to create backup: %v\n", err)
		}
	}

	// Atomic update: write to temp file first, then rename
	tempPath := fs.dataPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp data file: %w", err)
	}

	if err := os.Rename(tempPath, fs.dataPath); err != nil {
		// Clean up temp file
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp data file: %w", err)
	}

	return nil
}

// copyFile copies a file
func (fs *FileStore) copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
