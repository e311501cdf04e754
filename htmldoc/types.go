package htmldoc

import "strings"

// parsedElement represents a parsed block from the HTML document.
type parsedElement struct {
	Type    ElementType
	Text    string
	Level   int        // For headings (1-6)
	Items   []listItem // For lists
	Ordered bool       // For lists
	Table   *ParsedTable
}

// ElementType represents the type of HTML block.
type ElementType int

const (
	ElementParagraph ElementType = iota
	ElementHeading
	ElementList
	ElementTable
	ElementCode
	ElementBlockquote
)

// listItem represents an item in a list.
type listItem struct {
	Text  string
	Level int
}

// ParsedTable represents a table extracted from HTML.
type ParsedTable struct {
	Rows      [][]TableCell
	HasHeader bool
}

// TableCell represents a cell in an HTML table.
type TableCell struct {
	Text     string
	IsHeader bool
}

// ToText renders the table one row per line with tab-separated cells.
func (t *ParsedTable) ToText() string {
	lines := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.ReplaceAll(cell.Text, "\n", " ")
		}
		lines[i] = strings.Join(cells, "\t")
	}
	return strings.Join(lines, "\n")
}
