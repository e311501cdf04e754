// Package diff turns two versions of a text into a styled comparison
// document.
//
// Alignment cascades through three granularities. Paragraphs (split on
// "\n") are aligned first. Replaced paragraphs are aligned word by word
// using [text.Words]. Replaced word ranges are then either aligned character
// by character, when the two sides are similar enough, or rendered as a
// whole-range deletion followed by a whole-range insertion.
//
// Every deleted or inserted span is checked against a [FactSet]. Spans that
// match a registered [FactChange] are tagged [model.FactCorrection] instead
// of [model.Deleted] or [model.Added].
//
//	facts := diff.NewFactSet([]diff.FactChange{{Original: "Trump", Corrected: "Musk"}})
//	doc := diff.NewBuilder(facts).Diff(original, corrected)
package diff
