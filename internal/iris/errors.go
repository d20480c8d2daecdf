package iris

import "fmt"

// EnforcementError is raised when the WRITE phase is asked to touch a
// file that was never read in the current task's ReadState.
type EnforcementError struct {
	File string
}

func (e *EnforcementError) Error() string {
	return fmt.Sprintf("MUST_READ_FIRST: file %s not in read state", e.File)
}
