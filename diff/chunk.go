package diff

import (
	"strings"

	"github.com/tsawler/redline/align"
	"github.com/tsawler/redline/model"
	"github.com/tsawler/redline/text"
)

// DefaultThreshold is the similarity ratio above which a replaced range is
// highlighted character by character.
const DefaultThreshold = 0.6

// Differ renders replaced ranges into classified runs. The zero value is
// not usable; create one with NewDiffer.
type Differ struct {
	facts     FactSet
	threshold float64
}

// NewDiffer returns a Differ that classifies spans against facts and
// switches to character-level alignment when the similarity ratio is
// strictly greater than threshold.
func NewDiffer(facts FactSet, threshold float64) Differ {
	return Differ{facts: facts, threshold: threshold}
}

// Words aligns two paragraphs word by word.
func (d Differ) Words(original, corrected string) []model.Run {
	a, b := text.Words(original), text.Words(corrected)

	var runs []model.Run
	for _, op := range align.Opcodes(a, b) {
		switch op.Tag {
		case align.Equal:
			runs = append(runs, model.Run{Text: strings.Join(a[op.I1:op.I2], ""), Category: model.Unchanged})
		case align.Delete:
			runs = append(runs, d.each(a[op.I1:op.I2], Original)...)
		case align.Insert:
			runs = append(runs, d.each(b[op.J1:op.J2], Corrected)...)
		case align.Replace:
			runs = append(runs, d.Chunk(a[op.I1:op.I2], b[op.J1:op.J2])...)
		}
	}
	return runs
}

// Chunk renders one replaced range. A missing side degrades to a pure
// deletion or insertion. Otherwise the joined texts are compared: similar
// chunks are aligned by character, dissimilar ones become a single deleted
// span followed by a single inserted span.
func (d Differ) Chunk(original, corrected []string) []model.Run {
	switch {
	case len(original) == 0:
		return d.each(corrected, Corrected)
	case len(corrected) == 0:
		return d.each(original, Original)
	}

	a, b := strings.Join(original, ""), strings.Join(corrected, "")
	m := align.NewMatcher([]rune(a), []rune(b))
	if m.Ratio() > d.threshold {
		return d.chars([]rune(a), []rune(b), m.Opcodes())
	}
	return []model.Run{
		{Text: a, Category: d.facts.Classify(a, Original)},
		{Text: b, Category: d.facts.Classify(b, Corrected)},
	}
}

// Chars aligns two strings character by character.
func (d Differ) Chars(original, corrected string) []model.Run {
	a, b := []rune(original), []rune(corrected)
	return d.chars(a, b, align.Opcodes(a, b))
}

func (d Differ) chars(a, b []rune, ops []align.Opcode) []model.Run {
	var runs []model.Run
	for _, op := range ops {
		del, ins := string(a[op.I1:op.I2]), string(b[op.J1:op.J2])
		switch op.Tag {
		case align.Equal:
			runs = append(runs, model.Run{Text: del, Category: model.Unchanged})
		case align.Delete:
			runs = append(runs, model.Run{Text: del, Category: d.facts.Classify(del, Original)})
		case align.Insert:
			runs = append(runs, model.Run{Text: ins, Category: d.facts.Classify(ins, Corrected)})
		case align.Replace:
			runs = append(runs,
				model.Run{Text: del, Category: d.facts.Classify(del, Original)},
				model.Run{Text: ins, Category: d.facts.Classify(ins, Corrected)},
			)
		}
	}
	return runs
}

// each classifies every token on its own.
func (d Differ) each(tokens []string, side Side) []model.Run {
	runs := make([]model.Run, 0, len(tokens))
	for _, tok := range tokens {
		runs = append(runs, model.Run{Text: tok, Category: d.facts.Classify(tok, side)})
	}
	return runs
}
