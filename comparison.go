package redline

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tsawler/redline/diff"
	"github.com/tsawler/redline/docx"
	"github.com/tsawler/redline/model"
)

// Comparison provides a fluent interface for rendering one comparison.
// Each configuration method returns a new Comparison instance, making it
// safe for concurrent use and allowing method chaining.
type Comparison struct {
	original  string
	corrected string

	// Configuration
	options CompareOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Comparison with a deep copy of options.
func (c *Comparison) clone() *Comparison {
	return &Comparison{
		original:  c.original,
		corrected: c.corrected,
		options:   c.options.clone(),
		err:       c.err,
	}
}

// Facts registers fact changes. Repeated calls accumulate.
func (c *Comparison) Facts(facts ...FactChange) *Comparison {
	newCmp := c.clone()
	newCmp.options.facts = append(newCmp.options.facts, facts...)
	return newCmp
}

// Threshold sets the similarity ratio above which a replaced word range is
// diffed character by character. It must lie in [0, 1].
func (c *Comparison) Threshold(threshold float64) *Comparison {
	newCmp := c.clone()
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		if newCmp.err == nil {
			newCmp.err = fmt.Errorf("similarity threshold %v out of range [0, 1]", threshold)
		}
		return newCmp
	}
	newCmp.options.threshold = threshold
	return newCmp
}

// Title sets the title recorded in both documents' properties.
func (c *Comparison) Title(title string) *Comparison {
	newCmp := c.clone()
	newCmp.options.title = title
	return newCmp
}

// Author sets the author recorded in both documents' properties.
func (c *Comparison) Author(author string) *Comparison {
	newCmp := c.clone()
	newCmp.options.author = author
	return newCmp
}

// Date sets the creation and modification dates recorded in both
// documents. Without it the documents carry no dates, and the same inputs
// always produce the same bytes.
func (c *Comparison) Date(t time.Time) *Comparison {
	newCmp := c.clone()
	newCmp.options.date = t
	return newCmp
}

// Logger sets a logger that receives a debug summary of each rendering.
func (c *Comparison) Logger(logger *slog.Logger) *Comparison {
	newCmp := c.clone()
	newCmp.options.logger = logger
	return newCmp
}

// Documents renders the clean and diff documents without serializing them.
func (c *Comparison) Documents() (clean, diffDoc *model.Document, err error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	facts := diff.NewFactSet(c.options.facts)
	builder := diff.NewBuilderWithThreshold(facts, c.options.threshold)

	clean = diff.Clean(c.corrected)
	diffDoc = builder.Diff(c.original, c.corrected)

	meta := c.metadata()
	clean.Metadata = meta
	diffDoc.Metadata = meta

	if logger := c.options.logger; logger != nil {
		stats := diffDoc.Stats()
		logger.Debug("rendered comparison",
			slog.Int("facts", facts.Len()),
			slog.Int("clean_paragraphs", clean.ParagraphCount()),
			slog.Int("diff_paragraphs", diffDoc.ParagraphCount()),
			slog.Int("added_runs", stats.Runs[model.Added]),
			slog.Int("deleted_runs", stats.Runs[model.Deleted]),
			slog.Int("fact_runs", stats.Runs[model.FactCorrection]),
		)
	}

	return clean, diffDoc, nil
}

// Generate renders both documents and serializes them as DOCX.
func (c *Comparison) Generate() (clean, diffDoc []byte, err error) {
	cleanModel, diffModel, err := c.Documents()
	if err != nil {
		return nil, nil, err
	}

	clean, err = docx.Marshal(cleanModel)
	if err != nil {
		return nil, nil, fmt.Errorf("writing clean document: %w", err)
	}
	diffDoc, err = docx.Marshal(diffModel)
	if err != nil {
		return nil, nil, fmt.Errorf("writing diff document: %w", err)
	}
	return clean, diffDoc, nil
}

func (c *Comparison) metadata() model.Metadata {
	return model.Metadata{
		Title:        c.options.title,
		Author:       c.options.author,
		Creator:      docx.Application,
		CreationDate: c.options.date,
		ModDate:      c.options.date,
	}
}
