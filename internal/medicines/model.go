package medicines

import "errors"

var (
	ErrNotFound     = errors.New("medicine not found")
	ErrInvalidQuery = errors.New("invalid medicine query")
)

// Info describes one regulated medicine.
type Info struct {
	Name             string   `json:"name"`
	GenericName      string   `json:"genericName"`
	DosageForms      []string `json:"dosageForms"`
	Strengths        []string `json:"strengths"`
	SideEffects      []string `json:"sideEffects"`
	Manufacturer     string   `json:"manufacturer,omitempty"`
	TherapeuticClass string   `json:"therapeuticClass,omitempty"`
	Description      string   `json:"description,omitempty"`
}

// Result is a successful lookup. MatchedName is set when the answer came
// from a corrected spelling of Query.
type Result struct {
	Query       string `json:"query"`
	MatchedName string `json:"matchedName,omitempty"`
	Info        Info   `json:"medicine"`
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Name    string `json:"name"`
	Generic string `json:"generic,omitempty"`
}

// Suggestions is the autocomplete answer. Degraded is set when every
// attempt failed and the list is empty for that reason.
type Suggestions struct {
	Items    []Suggestion `json:"suggestions"`
	Degraded bool         `json:"degraded"`
}
