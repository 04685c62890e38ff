// Package catalogue holds the feature catalogue: the directory of solutions
// and features shown on the host landing pages.
package catalogue

import (
	"errors"
	"fmt"

	"entsearch/core"

	"github.com/go-playground/validator/v10"
)

// Errors
var (
	ErrInvalidEntry   = errors.New("invalid catalogue entry")
	ErrDuplicateEntry = errors.New("catalogue entry already registered")
)

// Registration kinds, used as metric labels.
const (
	KindSolution = "solution"
	KindFeature  = "feature"
)

// Solution is a top level catalogue entry.
type Solution struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Subtitle     string   `json:"subtitle"`
	Icon         string   `json:"icon" validate:"required"`
	Descriptions []string `json:"descriptions"`
	Path         string   `json:"path" validate:"required,startswith=/"`
}

// Feature is a catalogue entry listed under a category.
type Feature struct {
	ID             string               `json:"id" validate:"required"`
	Title          string               `json:"title" validate:"required"`
	Icon           string               `json:"icon" validate:"required"`
	Description    string               `json:"description"`
	Path           string               `json:"path" validate:"required,startswith=/"`
	Category       core.FeatureCategory `json:"category" validate:"required"`
	ShowOnHomePage bool                 `json:"showOnHomePage"`
}

// Registry accepts catalogue registrations. Whether an id may be registered
// twice depends on the implementation: Memory rejects it with
// ErrDuplicateEntry, Redis replaces the stored entry.
type Registry interface {
	RegisterSolution(solution Solution) error
	Register(feature Feature) error
}

// Catalogue is a Registry that can also list its entries.
type Catalogue interface {
	Registry
	Solutions() ([]Solution, error)
	Features() ([]Feature, error)
}

var validate = validator.New()

func validateSolution(s Solution) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: solution %q: %v", ErrInvalidEntry, s.ID, err)
	}
	return nil
}

func validateFeature(f Feature) error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: feature %q: %v", ErrInvalidEntry, f.ID, err)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("%w: feature %q: unknown category %q", ErrInvalidEntry, f.ID, f.Category)
	}
	return nil
}
