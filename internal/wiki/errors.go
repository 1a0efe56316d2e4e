package wiki

import (
	"errors"
	"fmt"
)

// ErrFetch matches any *FetchError via errors.Is.
var ErrFetch = errors.New("fetching wiki document")

// ErrNoTextarea is wrapped by a FetchError when the edit page has no editable
// fragment.
var ErrNoTextarea = errors.New("no textarea in edit page")

// FetchError reports that the document could not be retrieved or did not
// contain the editable fragment.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no HTTP response was involved
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
