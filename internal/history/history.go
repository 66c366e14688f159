// Package history is the append-only log of past queries and their payloads
// or responses, stored as a JSON array next to the directory the query ran
// in. Appends load the current array, push the new entry, and rewrite the
// whole file; concurrent writers may race, which is an accepted limitation.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quietfold/aictx/internal/llm"
)

// HistoryFileName is the per-directory history file name.
const HistoryFileName = ".context_history.json"

// Entry is one recorded query outcome. Payload is set for deferred queries,
// Response for sent ones.
type Entry struct {
	Query     string       `json:"query"`
	Payload   *llm.Payload `json:"payload,omitempty"`
	Response  string       `json:"response,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Manager reads and writes the history file for a single directory.
type Manager struct {
	filePath string
}

// NewManager creates a Manager for the history file in dir.
func NewManager(dir string) *Manager {
	return &Manager{
		filePath: filepath.Join(dir, HistoryFileName),
	}
}

// FilePath returns the path of the managed history file.
func (m *Manager) FilePath() string {
	return m.filePath
}

// Entries loads the current history. A missing or unparseable file reads as
// empty history.
func (m *Manager) Entries() ([]Entry, error) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt history is treated as empty rather than blocking appends.
		return nil, nil
	}
	return entries, nil
}

// Append pushes a new entry and rewrites the file.
func (m *Manager) Append(entry Entry) error {
	entries, err := m.Entries()
	if err != nil {
		entries = nil
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// Clear truncates the history file to an empty array, creating it if needed.
func (m *Manager) Clear() error {
	return os.WriteFile(m.filePath, []byte("[]"), 0644)
}
