package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Manifest records the content hash and output paths of every processed
// topology document, so unchanged documents are skipped on later runs.
type Manifest struct {
	Entries map[string]ManifestEntry `msgpack:"entries"`
}

// ManifestEntry is the recorded state of one processed document.
type ManifestEntry struct {
	Hash       string `msgpack:"hash"`
	SourcePath string `msgpack:"source_path"`
	OraclePath string `msgpack:"oracle_path"`
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Entries: make(map[string]ManifestEntry)}
}

// LoadManifest reads a manifest file. A missing file yields an empty
// manifest; a corrupt one is discarded the same way, since the worst case is
// redoing work.
func LoadManifest(path string) *Manifest {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewManifest()
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return NewManifest()
	}
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry)
	}
	return &m
}

// Save writes the manifest, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// UpToDate reports whether the document's recorded entry matches hash and its
// outputs still exist on disk.
func (m *Manifest) UpToDate(doc, hash string) (ManifestEntry, bool) {
	entry, ok := m.Entries[doc]
	if !ok || entry.Hash != hash {
		return ManifestEntry{}, false
	}
	if _, err := os.Stat(entry.SourcePath); err != nil {
		return ManifestEntry{}, false
	}
	if _, err := os.Stat(entry.OraclePath); err != nil {
		return ManifestEntry{}, false
	}
	return entry, true
}

// hashFile returns the hex SHA-256 of a file's contents.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
