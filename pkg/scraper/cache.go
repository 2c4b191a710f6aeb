package scraper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coursectl/pkg/catalog"

	"github.com/gofiber/fiber/v2/log"
)

// cacheDuration determines how long a scraped schedule is kept before refreshing
const cacheDuration = 12 * time.Hour

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time             `json:"timestamp"`
	Schedule  catalog.RawDepartment `json:"schedule"`
}

func getCachePath(key string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".coursectl_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// "2510_AIAA" -> "2510_AIAA.json"
	return filepath.Join(cacheDir, filepath.Base(key)+".json"), nil
}

// readCache checks if a valid, unexpired cache exists for this key
func readCache(key string) (catalog.RawDepartment, bool) {
	path, err := getCachePath(key)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warnf("ignoring unreadable cache file %s: %v", path, err)
		return nil, false
	}

	if time.Since(entry.Timestamp) > cacheDuration {
		return nil, false
	}

	return entry.Schedule, true
}

// writeCache saves the schedule to disk. Failures only cost a refetch later.
func writeCache(key string, schedule catalog.RawDepartment) {
	path, err := getCachePath(key)
	if err != nil {
		log.Warnf("schedule cache disabled: %v", err)
		return
	}

	entry := CacheEntry{
		Timestamp: time.Now(),
		Schedule:  schedule,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Warnf("could not write schedule cache %s: %v", path, err)
	}
}
