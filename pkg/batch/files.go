package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// writeFile writes content, creating parent directories as needed.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FindDocuments returns the topology documents (*.yaml, *.yml) under dir,
// sorted for deterministic dispatch order.
func FindDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			docs = append(docs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(docs)
	return docs, nil
}
