package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gbase-tools/chateval/internal/category"
)

// LoadCategoriesConfig reads categories.yaml. The path can be
// overridden with CHATEVAL_CATEGORIES_PATH. When the file is absent the
// built-in general table is used, since most clients never customize
// it.
func LoadCategoriesConfig() (*CategoriesConfig, error) {
	path := os.Getenv("CHATEVAL_CATEGORIES_PATH")
	if path == "" {
		path = "configs/categories.yaml"
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &CategoriesConfig{General: category.DefaultTable()}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyCategoriesDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func applyCategoriesDefaults(cfg *CategoriesConfig) {
	if len(cfg.General.Entries) == 0 {
		cfg.General = category.DefaultTable()
	}
	if cfg.General.Fallback == "" {
		cfg.General.Fallback = category.FallbackCategory
	}
	if cfg.Industry != nil && cfg.Industry.Fallback == "" {
		cfg.Industry.Fallback = category.FallbackCategory
	}
}

func (c *CategoriesConfig) Validate() error {
	if err := validateTable("general", c.General); err != nil {
		return err
	}
	if c.Industry != nil {
		return validateTable("industry", *c.Industry)
	}
	return nil
}

func validateTable(tier string, table category.Table) error {
	seen := make(map[string]bool, len(table.Entries))
	for _, entry := range table.Entries {
		if entry.Name == "" {
			return fmt.Errorf("%s table: category without a name", tier)
		}
		if seen[entry.Name] {
			return fmt.Errorf("%s table: duplicate category %q", tier, entry.Name)
		}
		seen[entry.Name] = true
		if len(entry.Keywords) == 0 {
			return fmt.Errorf("%s table: category %q has no keywords", tier, entry.Name)
		}
	}
	return nil
}

// Classifier builds the category classifier from the loaded tables.
func (c *CategoriesConfig) Classifier() *category.Classifier {
	return category.New(c.General, c.Industry)
}
