package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unowned-ai/jubiland/pkg/journal"
)

// Backend persists whole collections. Every Save replaces everything
// previously stored for that collection.
type Backend interface {
	LoadMoodEntries() ([]journal.MoodEntry, error)
	SaveMoodEntries(entries []journal.MoodEntry) error
	LoadCelebrations() ([]journal.Celebration, error)
	SaveCelebrations(celebrations []journal.Celebration) error
	Close() error
}

const (
	MoodEntriesFile  = "moodEntries.json"
	CelebrationsFile = "celebrations.json"
)

// JSONFiles keeps each collection in its own JSON array file inside a
// directory.
type JSONFiles struct {
	dir string
}

// NewJSONFiles creates dir if needed and returns a backend rooted there.
func NewJSONFiles(dir string) (*JSONFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory '%s': %w", dir, err)
	}
	return &JSONFiles{dir: dir}, nil
}

// Dir returns the directory holding the collection files.
func (f *JSONFiles) Dir() string {
	return f.dir
}

func (f *JSONFiles) LoadMoodEntries() ([]journal.MoodEntry, error) {
	return readJSONFile[journal.MoodEntry](filepath.Join(f.dir, MoodEntriesFile))
}

func (f *JSONFiles) SaveMoodEntries(entries []journal.MoodEntry) error {
	return writeJSONFile(filepath.Join(f.dir, MoodEntriesFile), entries)
}

func (f *JSONFiles) LoadCelebrations() ([]journal.Celebration, error) {
	return readJSONFile[journal.Celebration](filepath.Join(f.dir, CelebrationsFile))
}

func (f *JSONFiles) SaveCelebrations(celebrations []journal.Celebration) error {
	return writeJSONFile(filepath.Join(f.dir, CelebrationsFile), celebrations)
}

func (f *JSONFiles) Close() error {
	return nil
}

func readJSONFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", path, err)
	}
	return items, nil
}

// writeJSONFile overwrites path in place. A failed write can leave a
// truncated file behind; the next successful save replaces it.
func writeJSONFile[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}
