package model

// Category classifies a run of rendered text.
type Category int

const (
	// Unchanged text appears in both versions.
	Unchanged Category = iota
	// Added text appears only in the corrected version.
	Added
	// Deleted text appears only in the original version.
	Deleted
	// FactCorrection marks an edit that matches a registered fact change.
	FactCorrection

	categoryCount
)

func (c Category) String() string {
	switch c {
	case Unchanged:
		return "Unchanged"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case FactCorrection:
		return "FactCorrection"
	default:
		return "Unknown"
	}
}

// Highlight names a WordprocessingML highlight colour.
type Highlight string

// Highlight colours used by the renderer. HighlightGreen is Word's
// "bright green".
const (
	HighlightNone   Highlight = ""
	HighlightGreen  Highlight = "green"
	HighlightRed    Highlight = "red"
	HighlightYellow Highlight = "yellow"
)

// Foreground colours as RRGGBB hex. An empty colour keeps the default.
const (
	ColorDefault   = ""
	ColorDarkGreen = "005000"
	ColorBlack     = "000000"
)

// Style is the visual treatment of a run.
type Style struct {
	Foreground string
	Highlight  Highlight
}

// IsDefault reports whether the style leaves text unformatted.
func (s Style) IsDefault() bool {
	return s.Foreground == ColorDefault && s.Highlight == HighlightNone
}

var styles = [categoryCount]Style{
	Unchanged:      {Foreground: ColorDefault, Highlight: HighlightNone},
	Added:          {Foreground: ColorDarkGreen, Highlight: HighlightGreen},
	Deleted:        {Foreground: ColorBlack, Highlight: HighlightRed},
	FactCorrection: {Foreground: ColorBlack, Highlight: HighlightYellow},
}

// Style returns the style for the category. Unknown categories render
// unstyled.
func (c Category) Style() Style {
	if c < 0 || c >= categoryCount {
		return Style{}
	}
	return styles[c]
}

// CategoryFromHighlight maps a highlight colour back to its category.
// Unknown or missing highlights map to Unchanged.
func CategoryFromHighlight(h Highlight) Category {
	switch h {
	case HighlightGreen:
		return Added
	case HighlightRed:
		return Deleted
	case HighlightYellow:
		return FactCorrection
	default:
		return Unchanged
	}
}
