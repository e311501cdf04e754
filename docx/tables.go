package docx

import (
	"strings"
)

// ParsedTable represents a parsed table.
type ParsedTable struct {
	Rows []ParsedTableRow
}

// ParsedTableRow represents a parsed table row.
type ParsedTableRow struct {
	Cells []ParsedTableCell
}

// ParsedTableCell represents a parsed table cell.
type ParsedTableCell struct {
	// Text is the cell's paragraphs joined by newlines.
	Text string
}

// ToText returns a plain text representation of the table: one line per
// row, cells separated by tabs.
func (pt *ParsedTable) ToText() string {
	var sb strings.Builder
	for i, row := range pt.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row.Cells {
			if j > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(cell.Text)
		}
	}
	return sb.String()
}

// ColCount returns the number of columns in the widest row.
func (pt *ParsedTable) ColCount() int {
	count := 0
	for _, row := range pt.Rows {
		if len(row.Cells) > count {
			count = len(row.Cells)
		}
	}
	return count
}

// parseTable converts a table XML element into a ParsedTable.
func parseTable(tbl tableXML) ParsedTable {
	var parsed ParsedTable
	for _, row := range tbl.Rows {
		var pr ParsedTableRow
		for _, cell := range row.Cells {
			texts := make([]string, len(cell.Paragraphs))
			for i, p := range cell.Paragraphs {
				texts[i] = processParagraph(p).Text
			}
			pr.Cells = append(pr.Cells, ParsedTableCell{Text: strings.Join(texts, "\n")})
		}
		parsed.Rows = append(parsed.Rows, pr)
	}
	return parsed
}
