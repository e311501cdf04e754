package docx

import (
	"encoding/xml"
	"strings"
)

// XML namespaces used in DOCX files
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
// Note: Paragraphs and Tables are collected separately by xml.Unmarshal.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	Tables     []tableXML     `xml:"tbl"`
}

// paragraphXML represents a paragraph element (<w:p>). Runs are collected
// in document order, including runs nested in hyperlinks, insertions and
// smart tags.
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style styleRefXML `xml:"pStyle"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// runContainers are paragraph children whose runs belong to the paragraph.
var runContainers = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"smartTag":   true,
	"fldSimple":  true,
	"sdt":        true,
	"sdtContent": true,
}

// UnmarshalXML decodes a paragraph keeping run order.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return p.collect(d)
}

func (p *paragraphXML) collect(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case t.Name.Local == "r":
				var run runXML
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Runs = append(p.Runs, run)
			case runContainers[t.Name.Local]:
				if err := p.collect(d); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// runXML represents a text run (<w:r>). Text, tabs and breaks are
// flattened into Text in document order.
type runXML struct {
	Properties runPropsXML
	Text       string
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      boolXML      `xml:"b"`
	Italic    boolXML      `xml:"i"`
	Color     colorXML     `xml:"color"`
	Highlight highlightXML `xml:"highlight"`
}

// boolXML represents a boolean attribute.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// colorXML represents text color.
type colorXML struct {
	Val string `xml:"val,attr"` // Hex color or "auto"
}

// highlightXML represents highlight color.
type highlightXML struct {
	Val string `xml:"val,attr"` // Color name like "yellow"
}

// textXML represents text content (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"` // preserve
	Value string `xml:",chardata"`
}

// UnmarshalXML decodes a run keeping the order of text, tabs and breaks.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var tx textXML
				if err := d.DecodeElement(&tx, &t); err != nil {
					return err
				}
				sb.WriteString(tx.Value)
			case "tab":
				sb.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			case "br":
				sb.WriteString(breakText(t))
				if err := d.Skip(); err != nil {
					return err
				}
			case "cr":
				sb.WriteString("\v")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = sb.String()
			return nil
		}
	}
}

// breakText maps a w:br to text: page breaks read as a form feed, any
// other break as a newline.
func breakText(start xml.StartElement) string {
	for _, a := range start.Attr {
		if a.Name.Local == "type" && a.Value == "page" {
			return "\f"
		}
	}
	return "\n"
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"tbl"`
	Rows    []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Paragraphs []paragraphXML `xml:"p"`
}
