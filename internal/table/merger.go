package table

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ModuleResolver computes the module names installed by subpackages.
type ModuleResolver interface {
	Modules(ctx context.Context, subpackages []string) ([]string, error)
}

// Contains reports whether pkg is already represented: some row lists it as the
// Python 2 package, or mentions it anywhere in the Python 3 description.
//
// The substring match can false-positive ("foo" is found in "foobar").
func (t *Table) Contains(pkg string) bool {
	for _, r := range t.Rows {
		if r.Legacy == pkg || strings.Contains(r.Current, pkg) {
			return true
		}
	}
	return false
}

// AddCandidate appends a row for pkg unless the table already covers it.
// The resolver is only consulted when a row is added. It reports whether a row
// was added.
func (t *Table) AddCandidate(ctx context.Context, pkg string, subpackages []string, resolver ModuleResolver) (bool, error) {
	if len(subpackages) == 0 {
		return false, fmt.Errorf("adding %s: no subpackages", pkg)
	}
	if t.Contains(pkg) {
		return false, nil
	}

	subs := make([]string, len(subpackages))
	copy(subs, subpackages)
	sort.Strings(subs)

	modules, err := resolver.Modules(ctx, subs)
	if err != nil {
		return false, fmt.Errorf("adding %s: %w", pkg, err)
	}
	sort.Strings(modules)

	t.Append(Row{
		Modules: strings.Join(modules, " "),
		Current: Describe(pkg, subs),
	})
	return true, nil
}

// Describe generates the Python 3 package description for a source package
// whose subpackages require Python 3.
func Describe(pkg string, subpackages []string) string {
	subs := make([]string, len(subpackages))
	copy(subs, subpackages)
	sort.Strings(subs)

	bold := make([]string, len(subs))
	for i, s := range subs {
		bold[i] = "'''" + s + "'''"
	}
	names := strings.Join(bold, " ")

	if len(subs) > 1 {
		return fmt.Sprintf("In Fedora as subpackages %s of %s", names, pkg)
	}
	return fmt.Sprintf("In Fedora as %s subpackage of %s", names, pkg)
}
