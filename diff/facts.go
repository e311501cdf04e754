package diff

import (
	"strings"

	"github.com/tsawler/redline/model"
)

// FactChange is a registered factual substitution, such as a corrected name.
// Only Original and Corrected take part in classification.
type FactChange struct {
	Original  string `json:"original" yaml:"original"`
	Corrected string `json:"corrected" yaml:"corrected"`
	Context   string `json:"context" yaml:"context"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Side says which version of the text a span comes from.
type Side int

const (
	// Original is the text before correction.
	Original Side = iota
	// Corrected is the text after correction.
	Corrected
)

func (s Side) String() string {
	if s == Original {
		return "original"
	}
	return "corrected"
}

// FactSet holds the lookup keys derived from a list of fact changes. It is
// built once per comparison and never modified afterwards, so it can be
// shared freely.
type FactSet struct {
	originals map[string]struct{}
	corrected map[string]struct{}
}

// NewFactSet builds a FactSet. Keys are trimmed and lower-cased; values that
// are empty after trimming are ignored since they would match any
// whitespace span.
func NewFactSet(changes []FactChange) FactSet {
	fs := FactSet{
		originals: make(map[string]struct{}, len(changes)),
		corrected: make(map[string]struct{}, len(changes)),
	}
	for _, fc := range changes {
		if k := factKey(fc.Original); k != "" {
			fs.originals[k] = struct{}{}
		}
		if k := factKey(fc.Corrected); k != "" {
			fs.corrected[k] = struct{}{}
		}
	}
	return fs
}

// Len returns the number of distinct keys on both sides.
func (fs FactSet) Len() int {
	return len(fs.originals) + len(fs.corrected)
}

// IsFact reports whether span is a registered fact value on the given side.
func (fs FactSet) IsFact(span string, side Side) bool {
	key := factKey(span)
	if key == "" {
		return false
	}
	var ok bool
	if side == Original {
		_, ok = fs.originals[key]
	} else {
		_, ok = fs.corrected[key]
	}
	return ok
}

// Classify returns the category of a changed span: FactCorrection when it
// matches a registered fact, otherwise Deleted for the original side and
// Added for the corrected side.
func (fs FactSet) Classify(span string, side Side) model.Category {
	if fs.IsFact(span, side) {
		return model.FactCorrection
	}
	if side == Original {
		return model.Deleted
	}
	return model.Added
}

func factKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
