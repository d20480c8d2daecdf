package tasks

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Repository.Get/Update when the requested
// task id does not exist.
var ErrNotFound = errors.New("task not found")

// nowFunc is overridable in tests that need deterministic timestamps.
var nowFunc = time.Now
