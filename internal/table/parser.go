package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	cellDelim    = "|"
	columnSep    = "||"
	rowSeparator = "|-"
	tableEnd     = "|}"

	maxLineSize = 1024 * 1024
)

// Parser reads the body of a MediaWiki table.
type Parser struct {
	r io.Reader
}

// NewParser creates a new table parser.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// ParseString parses table markup held in memory.
func ParseString(text string) (*Table, error) {
	return NewParser(strings.NewReader(text)).Parse()
}

// Parse extracts the data rows. Headings, the table open marker, the header row,
// row separators and prose are skipped.
func (p *Parser) Parse() (*Table, error) {
	t := &Table{}

	scanner := bufio.NewScanner(p.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !isDataRow(line) {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		t.Append(row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	return t, nil
}

func isDataRow(line string) bool {
	return strings.HasPrefix(line, cellDelim) &&
		!strings.HasPrefix(line, rowSeparator) &&
		!strings.HasPrefix(line, tableEnd)
}

func parseRow(line string) (Row, *MalformedRowError) {
	fields := strings.Split(strings.TrimPrefix(line, cellDelim), columnSep)

	// The last cell may be elided entirely
	if len(fields) == 3 {
		fields = append(fields, "")
	}
	if len(fields) != 4 {
		return Row{}, &MalformedRowError{Text: line, Fields: len(fields)}
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return rowFromFields(fields), nil
}
