package table

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Row is one entry of the "Python 3 already in Fedora" table.
// Fields are stored trimmed.
type Row struct {
	Modules  string // space-separated importable module names
	Legacy   string // Fedora Python 2 package
	Upstream string // upstream status of Python 3 support
	Current  string // how the module is packaged for Python 3
}

// Fields returns the cells in column order.
func (r Row) Fields() [4]string {
	return [4]string{r.Modules, r.Legacy, r.Upstream, r.Current}
}

func rowFromFields(fields []string) Row {
	return Row{
		Modules:  fields[0],
		Legacy:   fields[1],
		Upstream: fields[2],
		Current:  fields[3],
	}
}

// Compare orders rows column by column, each column compared case-insensitively.
// It returns -1, 0 or +1.
func Compare(a, b Row) int {
	fa, fb := a.Fields(), b.Fields()
	for i := range fa {
		if c := strings.Compare(fold(fa[i]), fold(fb[i])); c != 0 {
			return c
		}
	}
	return 0
}

func fold(s string) string {
	// A Caser keeps state, so one per call.
	return cases.Fold().String(s)
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row at the end.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Sort orders the rows by Compare. Equal rows keep their relative order.
func (t *Table) Sort() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return Compare(t.Rows[i], t.Rows[j]) < 0
	})
}
