package recommend

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var defaultTableYAML []byte

// Table is the static fallback table keyed by category.
type Table struct {
	baseline string
	sets     map[string]RecommendationSet
}

type tableFile struct {
	Baseline   string                    `yaml:"baseline"`
	Categories map[string]map[string]any `yaml:"categories"`
}

// DefaultTable parses the embedded fallback table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTableYAML)
}

// LoadTable reads a fallback table from path, or the embedded one when path is empty.
func LoadTable(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML table. Every category is run through Normalize
// so the table obeys the same invariants as remote data.
func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode fallback table: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("fallback table has no categories")
	}
	t := &Table{
		baseline: NormalizeCategory(file.Baseline),
		sets:     make(map[string]RecommendationSet, len(file.Categories)),
	}
	for category, payload := range file.Categories {
		set, err := Normalize(payload)
		if err != nil {
			return nil, fmt.Errorf("fallback category %q: %w", category, err)
		}
		t.sets[NormalizeCategory(category)] = set
	}
	if _, ok := t.sets[t.baseline]; !ok {
		return nil, fmt.Errorf("fallback baseline %q not in table", file.Baseline)
	}
	return t, nil
}

// For returns a copy of the set for category and the key that answered.
// Unknown categories resolve to the baseline.
func (t *Table) For(category string) (RecommendationSet, string) {
	key := NormalizeCategory(category)
	set, ok := t.sets[key]
	if !ok {
		key = t.baseline
		set = t.sets[key]
	}
	return set.Clone(), key
}

// Baseline is the category used for unknown keys.
func (t *Table) Baseline() string {
	return t.baseline
}

// Categories lists the keys present in the table.
func (t *Table) Categories() []string {
	out := make([]string, 0, len(t.sets))
	for k := range t.sets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
