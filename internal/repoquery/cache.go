package repoquery

import "context"

// FileLister returns the paths installed by a binary package.
type FileLister interface {
	Files(ctx context.Context, subpackage string) ([]string, error)
}

// CachingLister memoises file listings so each subpackage is queried at most
// once per run. Errors are not cached. Not safe for concurrent use.
type CachingLister struct {
	next  FileLister
	files map[string][]string
}

// NewCachingLister wraps next.
func NewCachingLister(next FileLister) *CachingLister {
	return &CachingLister{next: next, files: make(map[string][]string)}
}

// Files returns the cached listing or queries next.
func (c *CachingLister) Files(ctx context.Context, subpackage string) ([]string, error) {
	if files, ok := c.files[subpackage]; ok {
		return files, nil
	}
	files, err := c.next.Files(ctx, subpackage)
	if err != nil {
		return nil, err
	}
	c.files[subpackage] = files
	return files, nil
}
