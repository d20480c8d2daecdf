package iris

import (
	"go/parser"
	"go/token"
	"strings"
)

// verifyChanges checks that filePath still parses as valid Go after
// an edit, the Go-native analogue of the original agent's `python -m
// py_compile` check. Non-.go files pass through unverified.
func verifyChanges(filePath string) bool {
	if !strings.HasSuffix(filePath, ".go") {
		return true
	}
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, filePath, nil, parser.AllErrors)
	return err == nil
}
