// Package category assigns inbound questions to a fixed set of topic
// categories via keyword matching. Classification is two-tier: a general
// table shared by all clients, plus an optional industry-specific table.
package category

import (
	"strings"
)

// Entry is one category with its keyword set. Tables are ordered slices,
// not maps: scan order IS the priority order, and the first category with
// a matching keyword wins. Match counts are never compared; that would
// make results depend on keyword-list sizes instead of a fixed priority.
type Entry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered list of category entries plus the fallback label
// used when nothing matches.
type Table struct {
	Fallback string  `yaml:"fallback"`
	Entries  []Entry `yaml:"entries"`
}

// Classifier holds the general table and an optional industry table for
// the subcategory tier.
type Classifier struct {
	general  Table
	industry *Table
}

// New builds a classifier. industry may be nil when no industry-specific
// table is configured.
func New(general Table, industry *Table) *Classifier {
	return &Classifier{general: general, industry: industry}
}

// Categorize returns the first-tier category for a question.
func (c *Classifier) Categorize(question string) string {
	return match(question, c.general)
}

// Names returns the first-tier category names in priority order, with
// the fallback label last. Reports iterate this to get a stable column
// order.
func (c *Classifier) Names() []string {
	names := make([]string, 0, len(c.general.Entries)+1)
	for _, entry := range c.general.Entries {
		names = append(names, entry.Name)
	}
	return append(names, c.general.Fallback)
}

// Subcategorize returns the industry-specific subcategory, or the empty
// string when no industry table is configured. The second tier is
// independent of and subordinate to the first.
func (c *Classifier) Subcategorize(question string) string {
	if c.industry == nil {
		return ""
	}
	return match(question, *c.industry)
}

func match(question string, table Table) string {
	lowered := strings.ToLower(question)
	for _, entry := range table.Entries {
		for _, keyword := range entry.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return entry.Name
			}
		}
	}
	return table.Fallback
}
