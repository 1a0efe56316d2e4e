package repoquery

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// DefaultCommand is the package-query tool.
const DefaultCommand = "repoquery"

// DefaultCapability is what candidate packages must require.
const DefaultCapability = "python3"

const candidateFormat = "%{sourcerpm} %{name}"

// Candidate is a source package with the subpackages that require the
// tracked capability.
type Candidate struct {
	Package     string
	Subpackages []string // sorted, deduplicated
}

// Client queries the package repository.
type Client struct {
	command []string
	runner  Runner
	log     zerolog.Logger
}

// NewClient creates a client. command is split shell-style, so "dnf repoquery"
// works as well as a bare "repoquery". A nil runner runs on the host.
func NewClient(command string, runner Runner, log zerolog.Logger) (*Client, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing query command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("parsing query command: empty command")
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{command: argv, runner: runner, log: log}, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	argv := append(append([]string{}, c.command[1:]...), args...)
	out, err := c.runner.Run(ctx, c.command[0], argv...)
	if err != nil {
		var queryErr *QueryError
		if errors.As(err, &queryErr) {
			return nil, err
		}
		return nil, &QueryError{Args: append([]string{c.command[0]}, argv...), Err: err}
	}
	return out, nil
}

// Candidates lists the source packages building something that requires
// capability, grouped with those subpackages and sorted by package name.
func (c *Client) Candidates(ctx context.Context, capability string) ([]Candidate, error) {
	args := []string{"--qf", candidateFormat, "--whatrequires", capability}
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	candidates, err := ParseCandidates(out)
	if err != nil {
		var queryErr *QueryError
		if errors.As(err, &queryErr) {
			queryErr.Args = append(append([]string{}, c.command...), args...)
		}
		return nil, err
	}

	c.log.Debug().
		Str("capability", capability).
		Int("packages", len(candidates)).
		Msg("Found candidate source packages")
	return candidates, nil
}

// ParseCandidates parses "<sourcerpm> <name>" lines.
func ParseCandidates(out []byte) ([]Candidate, error) {
	groups := make(map[string]map[string]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &QueryError{Err: fmt.Errorf("unparsable output line %q", line)}
		}
		sourceRPM, subpackage := fields[0], fields[1]

		pkg, err := SourcePackageName(sourceRPM)
		if err != nil {
			return nil, &AmbiguousSourcePackageError{SourceRPM: sourceRPM, Line: line}
		}

		if groups[pkg] == nil {
			groups[pkg] = make(map[string]struct{})
		}
		groups[pkg][subpackage] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, &QueryError{Err: fmt.Errorf("reading output: %w", err)}
	}

	candidates := make([]Candidate, 0, len(groups))
	for pkg, subs := range groups {
		names := make([]string, 0, len(subs))
		for s := range subs {
			names = append(names, s)
		}
		sort.Strings(names)
		candidates = append(candidates, Candidate{Package: pkg, Subpackages: names})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Package < candidates[j].Package
	})
	return candidates, nil
}

// SourcePackageName strips version and release from a source RPM filename:
// "cobbler-2.2.2-1.fc17.src.rpm" becomes "cobbler".
func SourcePackageName(sourceRPM string) (string, error) {
	rel := strings.LastIndex(sourceRPM, "-")
	if rel <= 0 || rel == len(sourceRPM)-1 {
		return "", ErrAmbiguousSourcePackage
	}
	ver := strings.LastIndex(sourceRPM[:rel], "-")
	if ver <= 0 || ver == rel-1 {
		return "", ErrAmbiguousSourcePackage
	}
	return sourceRPM[:ver], nil
}

// Files lists the paths installed by subpackage.
func (c *Client) Files(ctx context.Context, subpackage string) ([]string, error) {
	c.log.Debug().Str("subpackage", subpackage).Msg("Listing files")

	out, err := c.run(ctx, "--list", subpackage)
	if err != nil {
		return nil, err
	}

	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.log.Trace().Str("subpackage", subpackage).Str("file", line).Msg("Listed file")
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &QueryError{Args: append(append([]string{}, c.command...), "--list", subpackage), Err: err}
	}
	return files, nil
}
