// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a YAML summary of a conversion run, so the outcome
// of a batch can be inspected or diffed after the fact.
package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Run is the on-disk record of one conversion run.
type Run struct {
	Timestamp time.Time `yaml:"timestamp"`
	KeepDir   string    `yaml:"keep_dir"`
	OutDir    string    `yaml:"out_dir"`
	Backend   string    `yaml:"backend,omitempty"`
	DryRun    bool      `yaml:"dry_run,omitempty"`
	Converted []string  `yaml:"converted,omitempty"`
	Skipped   []string  `yaml:"skipped,omitempty"`
	Failed    []Failure `yaml:"failed,omitempty"`
	Totals    Totals    `yaml:"totals"`
}

// Failure records one note that did not complete, with the error text that
// was logged for it.
type Failure struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

// Totals holds the summary counts for a run.
type Totals struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
}

// Write saves the run record to a YAML file.
func Write(path string, run Run) error {
	data, err := yaml.Marshal(&run)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}

// Read loads a previously written run report.
func Read(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report %s: %w", path, err)
	}
	var run Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run report %s: %w", path, err)
	}
	return &run, nil
}
