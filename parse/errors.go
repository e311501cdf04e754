package parse

import "fmt"

// Kind classifies a parse failure.
type Kind int

const (
	// EmptyFile means the input, or the text extracted from it, is empty.
	EmptyFile Kind = iota + 1
	// CorruptedFile means the input could not be decoded in its declared format.
	CorruptedFile
	// UnsupportedFormat means the declared type is not handled.
	UnsupportedFormat
)

func (k Kind) String() string {
	switch k {
	case EmptyFile:
		return "EmptyFile"
	case CorruptedFile:
		return "CorruptedFile"
	case UnsupportedFormat:
		return "UnsupportedFormat"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Parse. Message is suitable for showing to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrEmptyFile         = &Error{Kind: EmptyFile, Message: "File is empty"}
	ErrCorruptedFile     = &Error{Kind: CorruptedFile, Message: "File is corrupted"}
	ErrUnsupportedFormat = &Error{Kind: UnsupportedFormat, Message: "Unsupported file type"}
)

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
