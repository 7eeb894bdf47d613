// Package manifest keeps the append-only ledger of components added through
// the add workflow. The ledger is provenance only: nothing reads it to drive
// install or uninstall logic.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceType is a closed tag describing how a manifest entry was produced.
type SourceType string

const (
	// SourceURLSuccess records a component whose registry descriptor was
	// fetched successfully from a URL.
	SourceURLSuccess SourceType = "url_success"

	// SourceDirectName records a component identified by plain name.
	SourceDirectName SourceType = "direct_name"

	// SourceURLFetchFailed records a URL component whose descriptor fetch
	// failed; the install itself was still attempted.
	SourceURLFetchFailed SourceType = "url_fetch_failed"
)

// Entry is one record of a component installation attempt.
type Entry struct {
	Name         string          `json:"name"`
	SourceType   SourceType      `json:"sourceType"`
	SourceURL    string          `json:"sourceUrl,omitempty"`
	RegistryItem json.RawMessage `json:"registryItem,omitempty"`
	FetchError   string          `json:"fetchError,omitempty"`

	// AddedByCLI marks CLI-managed entries apart from hand-edited ones.
	// Record always forces it to true.
	AddedByCLI bool `json:"addedByCLI"`
}

// WarnFunc receives non-fatal problems the tracker recovers from. err may be
// nil.
type WarnFunc func(msg string, err error)

// Tracker appends entries to a JSON-array manifest file. Entries are never
// edited or removed.
type Tracker struct {
	Path string

	// Warn is called when a corrupt manifest is reinitialized. Nil means
	// recover silently.
	Warn WarnFunc
}

func New(path string, warn WarnFunc) *Tracker {
	return &Tracker{Path: path, Warn: warn}
}

// Load reads the manifest. A missing file yields an empty ledger; a file that
// fails to parse or is not a JSON array is reported through Warn and
// reinitialized rather than aborting the run.
func (t *Tracker) Load() ([]Entry, error) {
	content, err := os.ReadFile(t.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(content, &entries); err != nil {
		if t.Warn != nil {
			t.Warn(fmt.Sprintf("manifest at %s is not a valid JSON array, reinitializing", t.Path), err)
		}
		return nil, nil
	}
	return entries, nil
}

// Record appends entry to the manifest unless an entry with the same
// (name, sourceType) pair already exists. It returns false without writing
// when the entry is a duplicate. Entries sharing a name but differing in
// sourceType are distinct and both kept.
func (t *Tracker) Record(entry Entry) (bool, error) {
	entry.AddedByCLI = true

	entries, err := t.Load()
	if err != nil {
		return false, err
	}

	for _, existing := range entries {
		if existing.Name == entry.Name && existing.SourceType == entry.SourceType {
			return false, nil
		}
	}

	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(t.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}
	if err := os.WriteFile(t.Path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}
	return true, nil
}
