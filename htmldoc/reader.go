// Package htmldoc extracts the readable text of an HTML document.
//
// Block elements (headings, paragraphs, list items, table rows, quotes and
// preformatted text) become lines of plain text. Scripts, styles and
// navigation chrome are skipped.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/redline/model"
)

// Reader provides access to HTML document content.
type Reader struct {
	title    string
	metadata map[string]string
	elements []parsedElement
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		metadata: make(map[string]string),
	}

	// Extract title and metadata from head
	reader.extractHead(doc)

	// Extract content from body
	reader.extractBody(doc)

	return reader, nil
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	head := findElement(n, "head")
	if head == nil {
		return
	}
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "title":
			r.title = getTextContent(c)
		case "meta":
			name := strings.ToLower(getAttr(c, "name"))
			if name == "" {
				name = strings.ToLower(getAttr(c, "property"))
			}
			if content := getAttr(c, "content"); name != "" && content != "" {
				r.metadata[name] = content
			}
		}
	}
}

// extractBody extracts content from the body element.
func (r *Reader) extractBody(n *html.Node) {
	body := findElement(n, "body")
	if body == nil {
		// No body tag, try to extract from root
		body = n
	}
	r.traverseNode(body)
}

func (r *Reader) addText(typ ElementType, text string) {
	if text != "" {
		r.elements = append(r.elements, parsedElement{Type: typ, Text: text})
	}
}

// traverseNode recursively processes DOM nodes.
func (r *Reader) traverseNode(n *html.Node) {
	if n.Type == html.ElementNode {
		// Skip non-content elements
		if shouldSkipElement(n) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := getTextContent(n); text != "" {
				r.elements = append(r.elements, parsedElement{
					Type:  ElementHeading,
					Text:  text,
					Level: int(n.Data[1] - '0'),
				})
			}
			return

		case "p", "div", "blockquote":
			if isBlockContainer(n) {
				r.traverseChildren(n)
				return
			}
			typ := ElementParagraph
			if n.Data == "blockquote" {
				typ = ElementBlockquote
			}
			r.addText(typ, getTextContent(n))
			return

		case "ul", "ol":
			if items := collectItems(n, 0, nil); len(items) > 0 {
				r.elements = append(r.elements, parsedElement{
					Type:    ElementList,
					Items:   items,
					Ordered: n.Data == "ol",
				})
			}
			return

		case "table":
			if table := parseTable(n); len(table.Rows) > 0 {
				r.elements = append(r.elements, parsedElement{
					Type:  ElementTable,
					Table: table,
				})
			}
			return

		case "pre":
			r.addText(ElementCode, strings.Trim(rawText(n), "\n"))
			return
		}
	}

	r.traverseChildren(n)
}

// traverseChildren processes the children of a container. Runs of inline
// children, such as bare text mixed with <b> or <a>, form one paragraph.
func (r *Reader) traverseChildren(n *html.Node) {
	var inline strings.Builder
	flush := func() {
		r.addText(ElementParagraph, normalizeSpace(inline.String()))
		inline.Reset()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isInline(c) {
			getTextContentRecursive(c, &inline)
			continue
		}
		flush()
		r.traverseNode(c)
	}
	flush()
}

// collectItems gathers li children of a list, descending into nested lists.
func collectItems(list *html.Node, level int, items []listItem) []listItem {
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if text := getDirectTextContent(li); text != "" {
			items = append(items, listItem{Text: text, Level: level})
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				items = collectItems(c, level+1, items)
			}
		}
	}
	return items
}

// parseTable extracts a table from an HTML table element.
func parseTable(tableNode *html.Node) *ParsedTable {
	table := &ParsedTable{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				walk(c)
			case "tr":
				if row := parseTableRow(c); len(row) > 0 {
					table.Rows = append(table.Rows, row)
				}
			}
		}
	}
	walk(tableNode)

	// If the first row has th elements, mark as header
	if len(table.Rows) > 0 {
		for _, cell := range table.Rows[0] {
			if cell.IsHeader {
				table.HasHeader = true
				break
			}
		}
	}

	return table
}

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node) []TableCell {
	var row []TableCell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, TableCell{
				Text:     getTextContent(c),
				IsHeader: c.Data == "th",
			})
		}
	}
	return row
}

// shouldSkipElement returns true if the element should be skipped during
// content extraction.
func shouldSkipElement(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	case "nav", "aside":
		return true
	}
	switch getAttr(n, "role") {
	case "navigation", "complementary", "banner", "contentinfo":
		return true
	}
	return false
}

// blockTags are elements that start a new block of text.
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "body": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"ul": true,
}

// isInline reports whether n contributes to the surrounding line of text.
func isInline(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return !blockTags[n.Data]
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			return true
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts the text of a node and its descendants with
// whitespace collapsed. <br> is kept as a line break.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return normalizeSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		result.WriteString(n.Data)
	case html.ElementNode:
		if shouldSkipElement(n) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "td", "th":
			result.WriteString(" ")
		}
	}
}

// getDirectTextContent gets text content from a node, excluding nested
// block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			result.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				getTextContentRecursive(c, &result)
			}
		}
	}
	return normalizeSpace(result.String())
}

// rawText returns the text of a node verbatim.
func rawText(n *html.Node) string {
	var result strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			result.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			result.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return result.String()
}

// normalizeSpace collapses whitespace within each line and drops blank
// lines.
func normalizeSpace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Text returns the document text, one block per line. List items are
// prefixed with a bullet indented by nesting level; table rows are
// tab-separated.
func (r *Reader) Text() (string, error) {
	var blocks []string

	for _, elem := range r.elements {
		switch elem.Type {
		case ElementList:
			n := 0
			for _, item := range elem.Items {
				marker := "• "
				if elem.Ordered && item.Level == 0 {
					n++
					marker = fmt.Sprintf("%d. ", n)
				}
				blocks = append(blocks, strings.Repeat("  ", item.Level)+marker+item.Text)
			}
		case ElementTable:
			blocks = append(blocks, elem.Table.ToText())
		default:
			blocks = append(blocks, elem.Text)
		}
	}

	return strings.Join(blocks, "\n"), nil
}

// Title returns the document title.
func (r *Reader) Title() string {
	return r.title
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{
		Title:  r.title,
		Author: r.metadata["author"],
	}
	meta.Subject = r.metadata["description"]
	if keywords, ok := r.metadata["keywords"]; ok {
		meta.Keywords = strings.Split(keywords, ",")
		for i, kw := range meta.Keywords {
			meta.Keywords[i] = strings.TrimSpace(kw)
		}
	}
	if generator, ok := r.metadata["generator"]; ok {
		meta.Creator = generator
	}

	return meta
}
