// Package redline renders the comparison of an original and a corrected
// text as two DOCX documents: a clean copy of the corrected text, and a
// diff where insertions, deletions and registered fact corrections are
// highlighted.
//
// Basic usage:
//
//	clean, diff, err := redline.Generate(original, corrected, nil)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	clean, diff, err := redline.Compare(original, corrected).
//	    Facts(redline.FactChange{Original: "95", Corrected: "92"}).
//	    Threshold(0.7).
//	    Title("Editorial review").
//	    Generate()
//
// The alignment, fact classification and styling live in the diff and
// model packages; the docx package serializes the result.
package redline

import (
	"github.com/tsawler/redline/diff"
)

// FactChange is a registered factual correction. Spans matching Original
// (in the original text) or Corrected (in the corrected text) are rendered
// as fact corrections instead of plain deletions or insertions.
type FactChange = diff.FactChange

// Compare starts a comparison of original against corrected. Configuration
// methods return a new Comparison, so a partially configured value can be
// shared and extended safely.
//
// Example:
//
//	clean, diff, err := redline.Compare(a, b).Generate()
func Compare(original, corrected string) *Comparison {
	return &Comparison{
		original:  original,
		corrected: corrected,
		options:   defaultOptions(),
	}
}

// Generate renders original and corrected with the default options and
// returns the clean and diff documents as DOCX bytes.
func Generate(original, corrected string, facts []FactChange) (clean, diffDoc []byte, err error) {
	return Compare(original, corrected).Facts(facts...).Generate()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := redline.Must(docx.Marshal(doc))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
