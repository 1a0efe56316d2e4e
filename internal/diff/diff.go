package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// ContextLines is the number of unchanged lines shown around each change.
	ContextLines = 3

	fromLabel = "original"
	toLabel   = "proposed"
)

// Unified returns a line-based unified diff between two documents, or "" when
// they are identical.
func Unified(oldText, newText string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(oldText),
		B:        lines(newText),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  ContextLines,
	})
}

// lines splits on line terminators and re-appends "\n" to each line, so a
// missing final newline does not show up as a change.
func lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	parts := strings.Split(text, "\n")
	for i := range parts {
		parts[i] += "\n"
	}
	return parts
}
