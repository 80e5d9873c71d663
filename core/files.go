package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteManifest writes a manifest as indented JSON.
// The manifest is validated before writing.
func WriteManifest(m *Manifest, path string) error {
	if err := ValidateManifest(m); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest to %s: %w", path, err)
	}

	return nil
}

// ReadManifest reads and validates a manifest file.
// Returns ErrManifestNotFound if the file does not exist.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if err := ValidateManifest(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// WriteMetrics writes a metrics report as indented JSON.
func WriteMetrics(r *MetricsReport, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}

	return nil
}
