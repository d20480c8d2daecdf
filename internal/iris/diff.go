package iris

import (
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// diffPreview renders a unified diff between a file's original and
// proposed new content, mirroring the original agent's difflib-based
// preview without the ANSI color codes (those depended on an
// interactive terminal this engine doesn't assume).
func diffPreview(filePath, original, updated string) (string, error) {
	if original == "" || updated == "" {
		return "", nil
	}
	name := filepath.Base(filePath)
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(updated),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("iris: render diff: %w", err)
	}
	return text, nil
}
