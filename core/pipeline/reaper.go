package pipeline

import (
	"errors"
	"os/exec"
	"syscall"

	"go.uber.org/zap"
)

// Outcome is how one child terminated.
type Outcome struct {
	Child *Child
	// Status is the exit code, or 128 plus the signal number for children
	// killed by a signal.
	Status int
	// Signal is non-zero if the child was killed by a signal.
	Signal syscall.Signal
	// Err is an *ExecError for a stage that never ran or a *SetupError if
	// waiting failed.
	Err error
}

func (c *Child) wait() Outcome {
	out := Outcome{Child: c}
	if c.execErr != nil {
		out.Status = 1
		out.Err = c.execErr
		return out
	}

	err := c.cmd.Wait()
	if err == nil {
		return out
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		out.Status = ExitSetupFailure
		out.Err = &SetupError{Op: "wait " + c.Role.String(), Err: err}
		return out
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		out.Signal = ws.Signal()
		out.Status = 128 + int(out.Signal)
		return out
	}
	out.Status = exitErr.ExitCode()
	return out
}

// Reaper waits for launched children and folds their outcomes into one exit
// status.
type Reaper struct {
	Diag *Diagnostics
	Log  *zap.Logger

	results chan Outcome
	pending int
}

// NewReaper creates an empty reaper.
func NewReaper(diag *Diagnostics, log *zap.Logger) *Reaper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reaper{
		Diag:    diag,
		Log:     log,
		results: make(chan Outcome),
	}
}

// Track starts waiting on a child in the background.
func (r *Reaper) Track(c *Child) {
	r.pending++
	go func() {
		r.results <- c.wait()
	}()
}

// Pending returns the number of children not reaped yet.
func (r *Reaper) Pending() int {
	return r.pending
}

// Wait blocks until every tracked child has terminated, handling them in the
// order they finish. The status is 0 if all exited 0, otherwise that of the
// first failure observed; every failure gets a diagnostic. A non-nil error
// means a child could not be waited for, the status is then ExitSetupFailure.
func (r *Reaper) Wait() (int, error) {
	status := 0
	var internal error

	for ; r.pending > 0; r.pending-- {
		out := <-r.results
		c := out.Child
		r.Log.Debug("stage reaped",
			zap.Stringer("role", c.Role),
			zap.Int("pid", c.Pid),
			zap.Int("status", out.Status))

		var setupErr *SetupError
		var execErr *ExecError
		switch {
		case errors.As(out.Err, &setupErr):
			r.Diag.Printf("%v", setupErr)
			if internal == nil {
				internal = setupErr
			}
			continue
		case errors.As(out.Err, &execErr):
			r.Diag.Printf("%v", execErr)
		case out.Signal != 0:
			r.Diag.Printf("%s (pid %d) was terminated by signal %d (%v)", c, c.Pid, int(out.Signal), out.Signal)
		case out.Status != 0:
			r.Diag.Printf("%s (pid %d) failed with exit code %d", c, c.Pid, out.Status)
		default:
			continue
		}

		if status == 0 {
			status = out.Status
		}
	}

	if internal != nil {
		return ExitSetupFailure, internal
	}
	return status, nil
}

// Drain reaps every tracked child without reporting anything.
func (r *Reaper) Drain() {
	for ; r.pending > 0; r.pending-- {
		<-r.results
	}
}
