// Package history persists a record of every command run under the spinner.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const recordExt = ".json"

// Manager stores records as one JSON file per run in a directory.
type Manager struct {
	dir string
	now func() time.Time
}

// NewManager creates a record manager over dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("history directory is required")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Manager{
		dir: dir,
		now: time.Now,
	}, nil
}

// Dir returns the records directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// NewRecord starts a record for argv with a generated ID. It is not saved
// until Save is called.
func (m *Manager) NewRecord(argv []string) *Record {
	command := make([]string, len(argv))
	copy(command, argv)

	return &Record{
		ID:        uuid.New().String(),
		Command:   command,
		StartedAt: m.now(),
	}
}

// Save writes rec to disk, replacing any earlier version.
func (m *Manager) Save(rec *Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New("record has no ID")
	}
	return saveRecord(m.path(rec.ID), rec)
}

// Load reads the record with the given ID.
func (m *Manager) Load(id string) (*Record, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("invalid record ID %q: %w", id, err)
	}
	return loadRecord(m.path(id))
}

// List returns all readable records, most recent first. Corrupted files are
// skipped.
func (m *Manager) List() ([]*Record, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Record{}, nil
		}
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	records := []*Record{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}

		rec, err := loadRecord(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	return records, nil
}

// Delete removes the record with the given ID.
func (m *Manager) Delete(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("invalid record ID %q: %w", id, err)
	}
	return remove(m.path(id))
}

func remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Clear removes every record and returns how many were deleted.
func (m *Manager) Clear() (int, error) {
	return m.Prune(-1)
}

// Prune deletes the oldest records so that at most keep remain and returns
// how many were deleted. keep == 0 keeps everything; keep < 0 deletes all.
func (m *Manager) Prune(keep int) (int, error) {
	if keep == 0 {
		return 0, nil
	}

	records, err := m.List()
	if err != nil {
		return 0, err
	}

	if keep < 0 {
		keep = 0
	}
	if len(records) <= keep {
		return 0, nil
	}

	deleted := 0
	// Remove the file each record came from; its ID may not match the name.
	for _, rec := range records[keep:] {
		if err := remove(rec.path); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.dir, id+recordExt)
}
