package rotation

import (
	"strconv"
	"strings"
)

// Request is a rotation query. Only PreviousCrop drives the answer; the
// remaining fields are echoed so callers can see what was assumed.
type Request struct {
	PreviousCrop string   `json:"previousCrop"`
	Soil         string   `json:"soilType,omitempty"`
	Region       string   `json:"region,omitempty"`
	FarmSize     *float64 `json:"farmSize,omitempty"`
}

// NextCrop pairs a follow-up crop with why it helps.
type NextCrop struct {
	Crop    string `json:"crop"`
	Benefit string `json:"benefit,omitempty"`
}

// Advice is the rotation plan for one previous crop.
type Advice struct {
	Key                string       `json:"key"`
	Name               string       `json:"name"`
	Soil               string       `json:"soil"`
	Region             string       `json:"region"`
	FarmSize           *float64     `json:"farmSize,omitempty"`
	NextCrops          []NextCrop   `json:"nextCrops"`
	OrganicFertilizers []Fertilizer `json:"organicFertilizers"`
}

// Advisor answers rotation queries from a crop table.
type Advisor struct {
	table *Table
}

// NewAdvisor constructs an Advisor over table.
func NewAdvisor(table *Table) *Advisor {
	return &Advisor{table: table}
}

// Advise returns the plan for key or ErrCropNotFound.
func (a *Advisor) Advise(key string) (Advice, error) {
	crop, err := a.table.Lookup(key)
	if err != nil {
		return Advice{}, err
	}
	next := make([]NextCrop, 0, len(crop.NextCrops))
	for _, name := range crop.NextCrops {
		next = append(next, NextCrop{Crop: name, Benefit: crop.Benefits[name]})
	}
	return Advice{
		Key:                crop.Key,
		Name:               crop.Name,
		Soil:               crop.Soil,
		Region:             crop.Region,
		NextCrops:          next,
		OrganicFertilizers: append([]Fertilizer(nil), crop.OrganicFertilizers...),
	}, nil
}

// Crops lists dropdown options.
func (a *Advisor) Crops() []Option {
	return a.table.Crops()
}

// Describe renders the history query for a request.
func (r Request) Describe() string {
	var b strings.Builder
	b.WriteString("after ")
	b.WriteString(NormalizeKey(r.PreviousCrop))
	if r.FarmSize != nil {
		b.WriteString(" on ")
		b.WriteString(strconv.FormatFloat(*r.FarmSize, 'f', -1, 64))
		b.WriteString(" acres")
	}
	return b.String()
}
