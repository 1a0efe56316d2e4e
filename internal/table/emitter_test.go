package table

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmitter_Emit(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
		want string
	}{
		{
			name: "empty",
			rows: nil,
			want: `== Python 3 already in Fedora ==
{|
! Python Module !! Fedora Python 2 package !! Upstream status of Python 3 !! Fedora Python 3 package
|}`,
		},
		{
			name: "full row",
			rows: []Row{{Modules: "six", Legacy: "python-six", Upstream: "Yes", Current: "python3-six"}},
			want: `== Python 3 already in Fedora ==
{|
! Python Module !! Fedora Python 2 package !! Upstream status of Python 3 !! Fedora Python 3 package
|-
| six || python-six || Yes || python3-six
|}`,
		},
		{
			name: "empty cells",
			rows: []Row{
				{Modules: "mpi4py", Current: "In Fedora as subpackages '''a''' '''b''' of mpi4py"},
				{Modules: "six", Legacy: "python-six"},
			},
			want: `== Python 3 already in Fedora ==
{|
! Python Module !! Fedora Python 2 package !! Upstream status of Python 3 !! Fedora Python 3 package
|-
| mpi4py || || || In Fedora as subpackages '''a''' '''b''' of mpi4py
|-
| six || python-six || ||
|}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			emitter := NewEmitter(&buf)
			if err := emitter.Emit(&Table{Rows: tt.rows}); err != nil {
				t.Fatalf("Emit() error = %v", err)
			}
			got := buf.String()
			if got != tt.want {
				t.Errorf("Emit() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderRow(t *testing.T) {
	tests := []struct {
		row  Row
		want string
	}{
		{Row{}, "| || || ||"},
		{Row{Modules: "a"}, "| a || || ||"},
		{Row{Current: "d"}, "| || || || d"},
		{Row{Modules: "a", Legacy: "b", Upstream: "c", Current: "d"}, "| a || b || c || d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := RenderRow(tt.row); got != tt.want {
				t.Errorf("RenderRow(%+v) = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestTable_RoundTrip(t *testing.T) {
	// Parse, emit, parse again - should get the same rows and the same text
	tbl, err := ParseString(page)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	first := tbl.String()
	again, err := ParseString(first)
	if err != nil {
		t.Fatalf("Parse() of emitted text error = %v", err)
	}

	if diff := cmp.Diff(tbl.Rows, again.Rows); diff != "" {
		t.Errorf("round trip rows mismatch (-want +got):\n%s", diff)
	}
	if second := again.String(); second != first {
		t.Errorf("round trip text mismatch:\ngot:\n%s\nwant:\n%s", second, first)
	}
}

func TestTable_RoundTripCanonicalInput(t *testing.T) {
	// Already-canonical markup comes back byte for byte, apart from the
	// elided last cell which is written out as an empty cell.
	input := `== Python 3 already in Fedora ==
{|
! Python Module !! Fedora Python 2 package !! Upstream status of Python 3 !! Fedora Python 3 package
|-
| Cython || Cython || || In Fedora as '''python3-Cython''' subpackage of Cython
|-
| six || python-six || Yes ||
|}`

	tbl, err := ParseString(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.String(); got != input {
		t.Errorf("round trip failed:\ngot:\n%s\nwant:\n%s", got, input)
	}
}
