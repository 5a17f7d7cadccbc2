package rst

import (
	"regexp"
	"strings"
)

var tableBorderRe = regexp.MustCompile(`^=+( +=+)+ *$`)

func isTableBorder(s string) bool {
	return tableBorderRe.MatchString(s)
}

// columnSpans derives column extents from a border line. The last column is
// open-ended because simple-table rows may overrun the final border span.
func columnSpans(border string) [][2]int {
	border = strings.TrimRight(border, " ")
	var spans [][2]int
	start := -1
	for i := 0; i <= len(border); i++ {
		if i < len(border) && border[i] == '=' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, [2]int{start, i})
			start = -1
		}
	}
	if len(spans) > 0 {
		spans[len(spans)-1][1] = 1 << 30
	}
	return spans
}

// parseSimpleTable consumes a simple table: a border, optional header rows
// and separator border, body rows, and a closing border. Each non-blank line
// is one row; cells hold inline content only.
func (p *parser) parseSimpleTable() []Node {
	spans := columnSpans(p.lines[p.pos])
	p.pos++

	var bands [][]*TableRow
	var current []*TableRow
	closed := false
	for p.pos < len(p.lines) && !closed {
		line := p.lines[p.pos]
		switch {
		case isBlank(line):
			// A blank line before the closing border ends the table; the
			// source is malformed but tolerated.
			closed = true
		case isTableBorder(line):
			p.pos++
			bands = append(bands, current)
			current = nil
			// A border followed by a blank line or EOF closes the table.
			if p.pos >= len(p.lines) || isBlank(p.lines[p.pos]) {
				closed = true
			}
		default:
			current = append(current, p.tableRow(line, spans))
			p.pos++
		}
	}
	if len(current) > 0 {
		p.warnf(LevelWarning, "simple table missing bottom border")
		bands = append(bands, current)
	}

	t := &Table{}
	switch len(bands) {
	case 0:
		return nil
	case 1:
		t.Body = bands[0]
	default:
		t.Head = bands[0]
		for _, b := range bands[1:] {
			t.Body = append(t.Body, b...)
		}
	}
	return []Node{t}
}

func (p *parser) tableRow(line string, spans [][2]int) *TableRow {
	row := &TableRow{}
	for _, sp := range spans {
		start, end := sp[0], sp[1]
		if start > len(line) {
			row.Cells = append(row.Cells, &TableCell{})
			continue
		}
		if end > len(line) {
			end = len(line)
		}
		text := strings.TrimSpace(line[start:end])
		row.Cells = append(row.Cells, &TableCell{Children: p.parseInline(text)})
	}
	return row
}
