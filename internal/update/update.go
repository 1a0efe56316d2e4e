package update

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/frederic-klein/py3wiki/internal/diff"
	"github.com/frederic-klein/py3wiki/internal/pymodules"
	"github.com/frederic-klein/py3wiki/internal/repoquery"
	"github.com/frederic-klein/py3wiki/internal/table"
)

// DocumentFetcher returns the current wiki markup of the table section.
type DocumentFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// CandidateSource lists source packages whose subpackages require capability.
type CandidateSource interface {
	Candidates(ctx context.Context, capability string) ([]repoquery.Candidate, error)
}

// Deps are the external collaborators of a run.
type Deps struct {
	Fetcher    DocumentFetcher
	Candidates CandidateSource
	Files      pymodules.FileLister
	Overrides  pymodules.Overrides // nil means pymodules.DefaultOverrides
	Log        zerolog.Logger
}

// Options configure a run.
type Options struct {
	Capability string
}

// Result is what a run produced.
type Result struct {
	Old   string
	New   string
	Diff  string
	Added []string // source packages that got a new row
}

// Run fetches the table, merges every candidate, sorts and re-renders it.
// Nothing is written; see Print.
func Run(ctx context.Context, deps Deps, opts Options) (*Result, error) {
	log := deps.Log

	old, err := deps.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	tbl, err := table.ParseString(old)
	if err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}
	log.Info().Int("rows", tbl.Len()).Msg("Parsed existing table")

	candidates, err := deps.Candidates.Candidates(ctx, opts.Capability)
	if err != nil {
		return nil, fmt.Errorf("discovering candidates: %w", err)
	}
	log.Info().Int("candidates", len(candidates)).Str("capability", opts.Capability).Msg("Discovered candidates")

	extractor := pymodules.NewExtractor(repoquery.NewCachingLister(deps.Files), deps.Overrides)

	var added []string
	for _, c := range candidates {
		ok, err := tbl.AddCandidate(ctx, c.Package, c.Subpackages, extractor)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Debug().Str("package", c.Package).Strs("subpackages", c.Subpackages).Msg("Added row")
			added = append(added, c.Package)
		}
	}
	log.Info().Int("added", len(added)).Msg("Merged candidates")

	tbl.Sort()
	updated := tbl.String()

	d, err := diff.Unified(old, updated)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	return &Result{Old: old, New: updated, Diff: d, Added: added}, nil
}

// Print writes the diff followed by the full new document, each terminated by
// a newline.
func Print(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintln(w, res.Diff); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, res.New)
	return err
}
