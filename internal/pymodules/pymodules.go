package pymodules

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// SitePackages is the directory suffix a file must live under to count as an
// importable module.
const SitePackages = "site-packages"

var nativeExtRe = regexp.MustCompile(`^(.+)\.cpython-(.+)\.so$`)

// FileLister returns the paths installed by a binary package.
type FileLister interface {
	Files(ctx context.Context, subpackage string) ([]string, error)
}

// Set is a set of module names.
type Set map[string]struct{}

// Sorted returns the names in ascending byte order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModulesFor derives the importable module names provided by a file list.
func ModulesFor(files []string) Set {
	result := make(Set)
	for _, file := range files {
		dir, base := split(file)
		if !strings.HasSuffix(dir, SitePackages) {
			continue
		}
		if name, ok := moduleName(base); ok {
			result[name] = struct{}{}
		}
	}
	return dropPrivateAliases(result)
}

func moduleName(base string) (string, bool) {
	if base == "__pycache__" {
		return "", false
	}
	if strings.HasSuffix(base, "egg-info") ||
		strings.HasSuffix(base, ".egg") ||
		strings.HasSuffix(base, ".pth") {
		return "", false
	}

	if m := nativeExtRe.FindStringSubmatch(base); m != nil {
		return m[1], true
	}

	for _, ext := range []string{".py", ".pyc", ".pyo"} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext), true
		}
	}

	// Packages (directories) and anything else count by their bare name
	return base, true
}

// split mirrors a head/tail path split: the directory has no trailing slash.
func split(p string) (dir, base string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	dir = strings.TrimRight(p[:i], "/")
	if dir == "" {
		dir = "/"
	}
	return dir, p[i+1:]
}

// dropPrivateAliases removes "_x" when "x" is also present. Membership is
// checked against the set as it was before the pass.
func dropPrivateAliases(s Set) Set {
	out := make(Set, len(s))
	for name := range s {
		if strings.HasPrefix(name, "_") {
			if _, public := s[name[1:]]; public {
				continue
			}
		}
		out[name] = struct{}{}
	}
	return out
}

// Extractor resolves subpackages to the modules they install.
type Extractor struct {
	lister    FileLister
	overrides Overrides
}

// NewExtractor creates an extractor. A nil overrides uses DefaultOverrides.
func NewExtractor(lister FileLister, overrides Overrides) *Extractor {
	if overrides == nil {
		overrides = DefaultOverrides()
	}
	return &Extractor{lister: lister, overrides: overrides}
}

// ModulesForSubpackages unions the modules of every subpackage.
func (e *Extractor) ModulesForSubpackages(ctx context.Context, subpackages []string) (Set, error) {
	union := make(Set)
	for _, sub := range subpackages {
		if module, ok := e.overrides[sub]; ok {
			union[module] = struct{}{}
			continue
		}

		files, err := e.lister.Files(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("listing files of %s: %w", sub, err)
		}
		for name := range ModulesFor(files) {
			union[name] = struct{}{}
		}
	}
	return dropPrivateAliases(union), nil
}

// Modules returns the sorted module names for subpackages.
func (e *Extractor) Modules(ctx context.Context, subpackages []string) ([]string, error) {
	set, err := e.ModulesForSubpackages(ctx, subpackages)
	if err != nil {
		return nil, err
	}
	return set.Sorted(), nil
}
