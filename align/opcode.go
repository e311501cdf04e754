package align

import "fmt"

// OpTag identifies the kind of edit an Opcode describes.
type OpTag int

const (
	// Equal means source[I1:I2] == target[J1:J2].
	Equal OpTag = iota
	// Delete means source[I1:I2] is removed; J1 == J2.
	Delete
	// Insert means target[J1:J2] is added; I1 == I2.
	Insert
	// Replace means source[I1:I2] is replaced by target[J1:J2].
	Replace
)

// String returns the conventional lower-case name of the tag.
func (t OpTag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Opcode maps source[I1:I2] to target[J1:J2].
type Opcode struct {
	Tag    OpTag
	I1, I2 int
	J1, J2 int
}

// String returns a compact representation such as "replace a[2:4] b[2:3]".
func (o Opcode) String() string {
	return fmt.Sprintf("%s a[%d:%d] b[%d:%d]", o.Tag, o.I1, o.I2, o.J1, o.J2)
}

// Match is a matching block: source[A:A+Size] == target[B:B+Size].
type Match struct {
	A, B, Size int
}
