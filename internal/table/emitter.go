package table

import (
	"fmt"
	"io"
	"strings"
)

const (
	heading   = "== Python 3 already in Fedora ==\n"
	tableOpen = "{|\n"
	header    = "! Python Module !! Fedora Python 2 package !! Upstream status of Python 3 !! Fedora Python 3 package\n"
)

// Emitter writes a table in the same MediaWiki dialect Parser reads.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates a new table emitter.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the section heading, the table and its rows in their current
// order. The closing marker is not followed by a newline.
func (e *Emitter) Emit(t *Table) error {
	if _, err := fmt.Fprint(e.w, heading+tableOpen+header); err != nil {
		return err
	}

	for _, r := range t.Rows {
		if err := e.emitRow(r); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(e.w, tableEnd)
	return err
}

func (e *Emitter) emitRow(r Row) error {
	if _, err := fmt.Fprint(e.w, rowSeparator+"\n"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.w, "%s\n", RenderRow(r))
	return err
}

// RenderRow formats a row as one markup line. Empty cells render as a single
// space so the cell structure survives.
func RenderRow(r Row) string {
	fields := r.Fields()
	cells := make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			cells[i] = " "
		} else {
			cells[i] = " " + f + " "
		}
	}
	return cellDelim + strings.TrimRight(strings.Join(cells, columnSep), " \t")
}

// String renders the whole table.
func (t *Table) String() string {
	var b strings.Builder
	// strings.Builder never fails
	_ = NewEmitter(&b).Emit(t)
	return b.String()
}
