// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// WriteRunFile saves the run log to a YAML file so the outcome can be
// inspected or re-processed later without the history database.
func WriteRunFile(path string, l *RunLog) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var l RunLog
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &l, nil
}
