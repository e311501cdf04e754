// Package align computes edit scripts between two sequences.
//
// The algorithm is Ratcliff/Obershelp pattern matching: find the longest
// contiguous block common to both sequences, then recurse on the pieces to
// the left and to the right of it. The resulting matching blocks are turned
// into [Opcode] values that describe how to turn the source sequence into the
// target sequence.
//
// A [Matcher] works over any comparable unit, so the same code aligns
// paragraphs, word tokens and single characters:
//
//	m := align.NewMatcher([]string{"Hello ", "world"}, []string{"Hello ", "beautiful ", "world"})
//	for _, op := range m.Opcodes() {
//	    fmt.Println(op.Tag, op.I1, op.I2, op.J1, op.J2)
//	}
//
// No junk heuristics are applied, so the output depends only on the content
// of the two sequences.
package align
