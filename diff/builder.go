package diff

import (
	"strings"

	"github.com/tsawler/redline/align"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/text"
)

// Builder produces the clean and diff documents for one comparison.
type Builder struct {
	differ Differ
}

// NewBuilder returns a Builder using the default similarity threshold.
func NewBuilder(facts FactSet) *Builder {
	return NewBuilderWithThreshold(facts, DefaultThreshold)
}

// NewBuilderWithThreshold returns a Builder with a custom similarity
// threshold.
func NewBuilderWithThreshold(facts FactSet, threshold float64) *Builder {
	return &Builder{differ: NewDiffer(facts, threshold)}
}

// Clean renders the corrected text as plain paragraphs, one per line.
func Clean(corrected string) *model.Document {
	doc := model.NewDocument()
	for _, line := range strings.Split(corrected, "\n") {
		doc.AddParagraph().Append(line, model.Unchanged)
	}
	return doc
}

// Diff renders the comparison of original and corrected. Paragraphs are
// processed in opcode order, so every character of both inputs lands in
// exactly one run.
func (b *Builder) Diff(original, corrected string) *model.Document {
	doc := model.NewDocument()
	src := strings.Split(original, "\n")
	dst := strings.Split(corrected, "\n")

	for _, op := range align.Opcodes(src, dst) {
		switch op.Tag {
		case align.Equal:
			for _, para := range src[op.I1:op.I2] {
				doc.AddParagraph().Append(para, model.Unchanged)
			}
		case align.Delete:
			for _, para := range src[op.I1:op.I2] {
				b.deleted(doc.AddParagraph(), para)
			}
		case align.Insert:
			for _, para := range dst[op.J1:op.J2] {
				b.inserted(doc.AddParagraph(), para)
			}
		case align.Replace:
			b.replace(doc, src[op.I1:op.I2], dst[op.J1:op.J2])
		}
	}
	return doc
}

// replace pairs paragraphs by position. Excess paragraphs on either side,
// and pairs where one side is empty, render as whole insertions or
// deletions.
func (b *Builder) replace(doc *model.Document, src, dst []string) {
	n := max(len(src), len(dst))
	for i := 0; i < n; i++ {
		var orig, corr string
		if i < len(src) {
			orig = src[i]
		}
		if i < len(dst) {
			corr = dst[i]
		}

		p := doc.AddParagraph()
		switch {
		case orig == "":
			b.inserted(p, corr)
		case corr == "":
			b.deleted(p, orig)
		default:
			p.AppendRuns(b.differ.Words(orig, corr)...)
		}
	}
}

// deleted renders a whole deleted paragraph. Whole paragraphs are not
// checked against facts.
func (b *Builder) deleted(p *model.Paragraph, para string) {
	p.Append(para, model.Deleted)
}

// inserted renders a whole inserted paragraph, classifying each symbol.
func (b *Builder) inserted(p *model.Paragraph, para string) {
	for _, tok := range text.Symbols(para) {
		p.Append(tok, b.differ.facts.Classify(tok, Corrected))
	}
}
