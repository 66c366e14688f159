package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietfold/aictx/internal/llm"
)

func TestManager(t *testing.T) {
	t.Run("entries of a missing file read as empty", func(t *testing.T) {
		m := NewManager(t.TempDir())

		entries, err := m.Entries()

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("append creates the file and preserves prior entries", func(t *testing.T) {
		m := NewManager(t.TempDir())

		require.NoError(t, m.Append(Entry{Query: "first", CreatedAt: time.Now()}))
		require.NoError(t, m.Append(Entry{Query: "second", CreatedAt: time.Now()}))

		entries, err := m.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "first", entries[0].Query)
		assert.Equal(t, "second", entries[1].Query)
	})

	t.Run("appended payloads round-trip", func(t *testing.T) {
		m := NewManager(t.TempDir())
		payload := &llm.Payload{
			Model: "gpt-4o",
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: "[Project Context]\nfacts"},
				{Role: llm.RoleUser, Content: "hello"},
			},
		}

		require.NoError(t, m.Append(Entry{Query: "hello", Payload: payload, CreatedAt: time.Now()}))

		entries, err := m.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].Payload)
		assert.Equal(t, payload.Messages, entries[0].Payload.Messages)
	})

	t.Run("clear leaves a file that parses as an empty list", func(t *testing.T) {
		dir := t.TempDir()
		m := NewManager(dir)
		require.NoError(t, m.Append(Entry{Query: "something", CreatedAt: time.Now()}))

		require.NoError(t, m.Clear())

		data, err := os.ReadFile(filepath.Join(dir, HistoryFileName))
		require.NoError(t, err)
		var entries []Entry
		require.NoError(t, json.Unmarshal(data, &entries))
		assert.Empty(t, entries)
	})

	t.Run("clear works without prior history", func(t *testing.T) {
		dir := t.TempDir()
		m := NewManager(dir)

		require.NoError(t, m.Clear())

		entries, err := m.Entries()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("corrupt history reads as empty and append recovers", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, HistoryFileName), []byte("{not json"), 0644))
		m := NewManager(dir)

		entries, err := m.Entries()
		require.NoError(t, err)
		assert.Empty(t, entries)

		require.NoError(t, m.Append(Entry{Query: "fresh start", CreatedAt: time.Now()}))
		entries, err = m.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "fresh start", entries[0].Query)
	})
}
