// Package store persists CaseSets as JSON artifacts. A CaseSet is
// write-once: it is saved exactly as produced and loaded verbatim for
// aggregation and reporting.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gbase-tools/chateval/internal/models"
)

// Save writes a CaseSet to path, creating parent directories as needed.
func Save(path string, set *models.CaseSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("encode case set: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write case set: %w", err)
	}
	return nil
}

// Load reads and validates a persisted CaseSet. Schema violations are
// fatal for the caller: silently dropping records would corrupt every
// aggregate computed downstream, so a malformed file is surfaced whole.
func Load(path string) (*models.CaseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case set: %w", err)
	}

	var set models.CaseSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode case set %s: %w", path, err)
	}

	if err := Validate(&set); err != nil {
		return nil, fmt.Errorf("case set %s: %w", path, err)
	}
	return &set, nil
}

// Validate checks the logical schema of a CaseSet.
func Validate(set *models.CaseSet) error {
	if set.Meta.BotID == "" {
		return fmt.Errorf("missing meta.bot_id")
	}
	if set.Meta.TotalCases != len(set.Results) {
		return fmt.Errorf("meta.total_cases is %d but %d records present",
			set.Meta.TotalCases, len(set.Results))
	}
	for i, c := range set.Results {
		if c.Question == "" {
			return fmt.Errorf("record %d: missing question", i)
		}
		if !c.Outcome.Valid() {
			return fmt.Errorf("record %d: invalid outcome %q", i, c.Outcome)
		}
	}
	return nil
}
