package repoquery

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuery matches any *QueryError via errors.Is.
	ErrQuery = errors.New("package query failed")

	// ErrAmbiguousSourcePackage matches any *AmbiguousSourcePackageError via errors.Is.
	ErrAmbiguousSourcePackage = errors.New("ambiguous source package")
)

// QueryError reports a failed or unparsable package-query invocation.
type QueryError struct {
	Args   []string // full command line
	Stderr string
	Err    error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *QueryError) Is(target error) bool {
	return target == ErrQuery
}

// AmbiguousSourcePackageError reports a source RPM filename that does not have
// the name-version-release shape.
type AmbiguousSourcePackageError struct {
	SourceRPM string
	Line      string // query output line it came from
}

// Error implements the error interface
func (e *AmbiguousSourcePackageError) Error() string {
	return fmt.Sprintf("cannot extract source package name from %q (line %q)", e.SourceRPM, e.Line)
}

// Is implements errors.Is support
func (e *AmbiguousSourcePackageError) Is(target error) bool {
	return target == ErrAmbiguousSourcePackage
}
