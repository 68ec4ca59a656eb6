package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ExitSetupFailure is the status used when the pipeline itself could not be
// built or supervised.
const ExitSetupFailure = 1

// ErrNoPager is the reason the sink fails when neither the pager variable nor
// any fallback names a program.
var ErrNoPager = errors.New("no pager configured")

// SetupError is returned when a pipe, process, or descriptor operation fails
// in the parent. A half-built pipeline can't continue, so it is always fatal.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ExecError is recorded when no program for a stage could be started. Only
// that stage fails; it is treated as having exited with status 1.
type ExecError struct {
	Role Role
	// Tried lists the programs attempted, in order.
	Tried []string
	Err   error
}

func (e *ExecError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("%s: %v", e.Role, e.Err)
	}
	return fmt.Sprintf("%s: can't execute %s: %v", e.Role, strings.Join(e.Tried, ", "), e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
