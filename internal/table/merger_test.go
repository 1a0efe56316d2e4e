package table

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	modules map[string][]string
	calls   [][]string
	err     error
}

func (f *fakeResolver) Modules(_ context.Context, subpackages []string) ([]string, error) {
	f.calls = append(f.calls, subpackages)
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, s := range subpackages {
		out = append(out, f.modules[s]...)
	}
	return out, nil
}

func existing() *Table {
	return &Table{Rows: []Row{
		{Modules: "foo", Legacy: "foo", Current: "python3-foo"},
		{Modules: "bar", Current: "In Fedora as '''python3-bar''' subpackage of bar-tools"},
	}}
}

func TestTable_AddCandidate_AlreadyPresent(t *testing.T) {
	tests := []struct {
		name string
		pkg  string
	}{
		{"legacy package match", "foo"},
		{"current package substring", "bar-tools"},
		{"substring false positive", "python3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := existing()
			resolver := &fakeResolver{}

			added, err := tbl.AddCandidate(context.Background(), tt.pkg, []string{"anything"}, resolver)

			require.NoError(t, err)
			assert.False(t, added)
			assert.Equal(t, 2, tbl.Len())
			assert.Empty(t, resolver.calls, "resolver must not be called for represented packages")
		})
	}
}

func TestTable_AddCandidate_LegacyMatchIsExact(t *testing.T) {
	tbl := &Table{Rows: []Row{{Legacy: "foobar"}}}
	resolver := &fakeResolver{}

	added, err := tbl.AddCandidate(context.Background(), "foo", []string{"python3-foo"}, resolver)

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_AddCandidate_SingleSubpackage(t *testing.T) {
	tbl := &Table{}
	resolver := &fakeResolver{modules: map[string][]string{"bar": {"bar"}}}

	added, err := tbl.AddCandidate(context.Background(), "baz", []string{"bar"}, resolver)

	require.NoError(t, err)
	assert.True(t, added)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, Row{
		Modules: "bar",
		Current: "In Fedora as '''bar''' subpackage of baz",
	}, tbl.Rows[0])
}

func TestTable_AddCandidate_MultipleSubpackages(t *testing.T) {
	tbl := &Table{}
	resolver := &fakeResolver{modules: map[string][]string{
		"qux": {"zmod", "qmod"},
		"bar": {"amod"},
	}}

	added, err := tbl.AddCandidate(context.Background(), "baz", []string{"qux", "bar"}, resolver)

	require.NoError(t, err)
	assert.True(t, added)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "amod qmod zmod", tbl.Rows[0].Modules)
	assert.Empty(t, tbl.Rows[0].Legacy)
	assert.Empty(t, tbl.Rows[0].Upstream)
	assert.Equal(t, "In Fedora as subpackages '''bar''' '''qux''' of baz", tbl.Rows[0].Current)
	assert.Equal(t, [][]string{{"bar", "qux"}}, resolver.calls)
}

func TestTable_AddCandidate_ThenPresent(t *testing.T) {
	tbl := &Table{}
	resolver := &fakeResolver{}

	_, err := tbl.AddCandidate(context.Background(), "baz", []string{"python3-baz"}, resolver)
	require.NoError(t, err)
	added, err := tbl.AddCandidate(context.Background(), "baz", []string{"python3-baz"}, resolver)
	require.NoError(t, err)

	assert.False(t, added)
	assert.Equal(t, 1, tbl.Len())
	assert.Len(t, resolver.calls, 1)
}

func TestTable_AddCandidate_Errors(t *testing.T) {
	t.Run("no subpackages", func(t *testing.T) {
		tbl := &Table{}
		_, err := tbl.AddCandidate(context.Background(), "baz", nil, &fakeResolver{})
		assert.Error(t, err)
		assert.Zero(t, tbl.Len())
	})

	t.Run("resolver failure", func(t *testing.T) {
		tbl := &Table{}
		sentinel := errors.New("query failed")
		_, err := tbl.AddCandidate(context.Background(), "baz", []string{"python3-baz"}, &fakeResolver{err: sentinel})
		require.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "baz")
		assert.Zero(t, tbl.Len())
	})
}

func TestDescribe(t *testing.T) {
	assert.Equal(t,
		"In Fedora as '''python3-cobbler''' subpackage of cobbler",
		Describe("cobbler", []string{"python3-cobbler"}))
	assert.Equal(t,
		"In Fedora as subpackages '''python3-mpi4py-mpich2''' '''python3-mpi4py-openmpi''' of mpi4py",
		Describe("mpi4py", []string{"python3-mpi4py-openmpi", "python3-mpi4py-mpich2"}))
}
