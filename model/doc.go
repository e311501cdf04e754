// Package model provides the intermediate representation (IR) for rendered
// comparison documents.
//
// The types here are independent of any file format. The diff engine
// produces them and the serializers in sibling packages consume them, so
// the comparison algorithm never depends on how a document is encoded.
//
// # Document Structure
//
// A [Document] is metadata plus an ordered list of [Paragraph] values. Each
// paragraph is an ordered list of [Run] values:
//
//	doc := model.NewDocument()
//	p := doc.AddParagraph()
//	p.Append("Hello ", model.Unchanged)
//	p.Append("beautiful ", model.Added)
//
// # Categories and Styles
//
// Every run carries a [Category]:
//
//   - [Unchanged] - text present in both versions
//   - [Added] - text only in the corrected version
//   - [Deleted] - text only in the original version
//   - [FactCorrection] - an edit matching a registered fact change
//
// [Category.Style] maps a category to its foreground colour and highlight.
package model
