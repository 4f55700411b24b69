package rotation

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed crops.yaml
var cropsYAML []byte

// ErrCropNotFound is returned for keys missing from the crop table.
var ErrCropNotFound = errors.New("crop not found in database")

// Fertilizer is an organic input suited to the crop that follows.
type Fertilizer struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Crop is one row of the rotation table.
type Crop struct {
	Key                string            `yaml:"-" json:"key"`
	Name               string            `yaml:"name" json:"name"`
	Soil               string            `yaml:"soil" json:"soil"`
	Region             string            `yaml:"region" json:"region"`
	NextCrops          []string          `yaml:"nextCrops" json:"nextCrops"`
	Benefits           map[string]string `yaml:"benefits" json:"benefits"`
	OrganicFertilizers []Fertilizer      `yaml:"organicFertilizers" json:"organicFertilizers"`
}

// Option is one entry of the crop dropdown.
type Option struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Table holds crops in file order. Several keys may share a display name.
type Table struct {
	order []string
	crops map[string]Crop
}

// DefaultTable parses the embedded crop table.
func DefaultTable() (*Table, error) {
	return ParseTable(cropsYAML)
}

// ParseTable decodes a crops YAML document, keeping key order so the first
// key for a display name wins in Crops.
func ParseTable(data []byte) (*Table, error) {
	var doc struct {
		Crops yaml.Node `yaml:"crops"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode crop table: %w", err)
	}
	if doc.Crops.Kind != yaml.MappingNode || len(doc.Crops.Content) == 0 {
		return nil, fmt.Errorf("crop table has no crops")
	}

	t := &Table{crops: make(map[string]Crop, len(doc.Crops.Content)/2)}
	for i := 0; i+1 < len(doc.Crops.Content); i += 2 {
		key := NormalizeKey(doc.Crops.Content[i].Value)
		var crop Crop
		if err := doc.Crops.Content[i+1].Decode(&crop); err != nil {
			return nil, fmt.Errorf("crop %q: %w", key, err)
		}
		if key == "" || strings.TrimSpace(crop.Name) == "" {
			return nil, fmt.Errorf("crop %q: key and name are required", key)
		}
		if len(crop.NextCrops) == 0 {
			return nil, fmt.Errorf("crop %q: nextCrops is empty", key)
		}
		if _, dup := t.crops[key]; dup {
			return nil, fmt.Errorf("crop %q: duplicate key", key)
		}
		crop.Key = key
		t.order = append(t.order, key)
		t.crops[key] = crop
	}
	return t, nil
}

// NormalizeKey lowercases and collapses whitespace.
func NormalizeKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), " ")
}

// Lookup returns the crop stored under key.
func (t *Table) Lookup(key string) (Crop, error) {
	crop, ok := t.crops[NormalizeKey(key)]
	if !ok {
		return Crop{}, ErrCropNotFound
	}
	return crop, nil
}

// Crops lists one option per display name in table order.
func (t *Table) Crops() []Option {
	seen := make(map[string]struct{}, len(t.order))
	out := make([]Option, 0, len(t.order))
	for _, key := range t.order {
		crop := t.crops[key]
		if _, ok := seen[crop.Name]; ok {
			continue
		}
		seen[crop.Name] = struct{}{}
		out = append(out, Option{Key: key, Name: crop.Name, Region: crop.Region})
	}
	return out
}

// Len reports the number of keys, aliases included.
func (t *Table) Len() int {
	return len(t.order)
}
