package redline

import (
	"log/slog"
	"time"

	"github.com/tsawler/redline/diff"
)

// CompareOptions holds configuration for a comparison.
type CompareOptions struct {
	facts     []FactChange
	threshold float64

	// Document properties
	title  string
	author string
	date   time.Time

	logger *slog.Logger
}

// defaultOptions returns the default comparison options.
func defaultOptions() CompareOptions {
	return CompareOptions{
		facts:     nil,
		threshold: diff.DefaultThreshold,
		logger:    nil, // nil means no logging
	}
}

// clone creates a deep copy of CompareOptions.
func (o CompareOptions) clone() CompareOptions {
	newOpts := o

	// Deep copy facts slice
	if o.facts != nil {
		newOpts.facts = make([]FactChange, len(o.facts))
		copy(newOpts.facts, o.facts)
	}

	return newOpts
}
