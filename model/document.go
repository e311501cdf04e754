package model

import (
	"strings"
	"time"
)

// Document represents a rendered document: paragraphs of styled runs.
type Document struct {
	Metadata   Metadata
	Paragraphs []*Paragraph
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Paragraphs: make([]*Paragraph, 0),
	}
}

// AddParagraph appends an empty paragraph and returns it.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.Paragraphs = append(d.Paragraphs, p)
	return p
}

// ParagraphCount returns the number of paragraphs
func (d *Document) ParagraphCount() int {
	return len(d.Paragraphs)
}

// Text returns the paragraph texts joined with newlines.
func (d *Document) Text() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Stats counts runs and characters per category across the document.
func (d *Document) Stats() Stats {
	var s Stats
	for _, p := range d.Paragraphs {
		for _, r := range p.Runs {
			s.Runs[r.Category]++
			s.Chars[r.Category] += len([]rune(r.Text))
		}
	}
	return s
}

// Stats holds per-category totals, indexed by Category.
type Stats struct {
	Runs  [categoryCount]int
	Chars [categoryCount]int
}

// Changed reports whether any run is not Unchanged.
func (s Stats) Changed() bool {
	return s.Runs[Added]+s.Runs[Deleted]+s.Runs[FactCorrection] > 0
}

// Paragraph is an ordered sequence of runs.
type Paragraph struct {
	Runs []Run
}

// Append adds a run with the given text and category. Empty text is
// ignored so that paragraphs never carry zero-length runs.
func (p *Paragraph) Append(text string, category Category) {
	if text == "" {
		return
	}
	p.Runs = append(p.Runs, Run{Text: text, Category: category})
}

// AppendRuns adds runs in order, skipping empty ones.
func (p *Paragraph) AppendRuns(runs ...Run) {
	for _, r := range runs {
		p.Append(r.Text, r.Category)
	}
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run is a contiguous span of text sharing one category.
type Run struct {
	Text     string
	Category Category
}

// Style returns the style the run is rendered with.
func (r Run) Style() Style {
	return r.Category.Style()
}
