package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchEntry is one download in a YAML batch file.
type BatchEntry struct {
	Link       string `yaml:"link"`
	OutputPath string `yaml:"op,omitempty"`
}

// BatchFile is the on-disk shape of a batch file: a list of entries
// under a top-level "downloads" key.
type BatchFile struct {
	Downloads []BatchEntry `yaml:"downloads"`
}

// ReadBatchList loads a YAML batch file and returns its entries.
// Entries without a link are skipped with a warning on stderr.
func ReadBatchList(path string) ([]BatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var batchFile BatchFile
	if err := yaml.Unmarshal(data, &batchFile); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	var entries []BatchEntry
	for _, entry := range batchFile.Downloads {
		if entry.Link == "" {
			fmt.Fprintf(os.Stderr, "Warning: Empty link found in batch file, skipping...\n")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
