package table

import (
	"errors"
	"fmt"
)

// ErrMalformedRow matches any *MalformedRowError via errors.Is.
var ErrMalformedRow = errors.New("malformed table row")

// MalformedRowError reports a body line that looks like a data row but does not
// split into three or four cells.
type MalformedRowError struct {
	Line   int    // 1-based line number in the parsed text
	Text   string // the offending line
	Fields int    // number of cells found
}

// Error implements the error interface
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: expected 3 or 4 cells, got %d: %q", e.Line, e.Fields, e.Text)
}

// Is implements errors.Is support
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
