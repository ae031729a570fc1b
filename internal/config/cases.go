package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gbase-tools/chateval/internal/models"
)

// LoadCases reads a test-case list from a YAML file. Entries without a
// question are skipped; descriptions and categories get positional
// defaults so every record in the output is attributable.
func LoadCases(path string) ([]models.TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []caseEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cases := make([]models.TestCase, 0, len(entries))
	for i, entry := range entries {
		question := entry.Question
		if question == "" {
			question = entry.Vars.UserInput
		}
		if question == "" {
			continue
		}

		description := entry.Description
		if description == "" {
			description = fmt.Sprintf("case-%03d", i+1)
		}

		cat := entry.Category
		if cat == "" {
			cat = entry.Metadata.Category
		}
		if cat == "" {
			cat = "unknown"
		}

		cases = append(cases, models.TestCase{
			Description: description,
			Question:    question,
			Category:    cat,
		})
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("%s: no usable cases", path)
	}

	return cases, nil
}
