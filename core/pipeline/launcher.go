package pipeline

import (
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/digenv/core/vos"
	"go.uber.org/zap"
)

// Launcher starts stage processes.
type Launcher struct {
	OS    vos.VOS
	Pager PagerResolver

	// Stdin is given to a stage without an input channel, Stdout to a stage
	// without an output channel. Nil means the null device.
	Stdin  io.Reader
	Stdout io.Writer
	// Stderr is shared by every stage.
	Stderr io.Writer

	Log *zap.Logger
}

// Child is a launched stage.
type Child struct {
	Role Role
	// Program is the program name the stage runs, empty if none started.
	Program string
	Pid     int

	cmd     *exec.Cmd
	execErr *ExecError
}

func (c *Child) String() string {
	if c.cmd == nil {
		return c.Role.String()
	}
	return c.Role.String() + " " + c.Program
}

// Launch starts a stage with stage.In as its standard input and stage.Out as
// its standard output. Every other channel end stays behind in the parent
// because channels are close-on-exec.
//
// If no program for the stage can be executed, Launch still returns a Child:
// one that never ran and reaps as exit status 1 with an *ExecError. The
// returned error is non-nil only for a *SetupError.
//
// The sink runs the first pager from l.Pager that starts; its stage.Command
// is ignored.
func (l *Launcher) Launch(stage Stage) (*Child, error) {
	programs := []string{stage.Command}
	execErr := &ExecError{Role: stage.Role, Err: vos.ErrNotFound}
	if stage.Role == RoleSink {
		programs = l.Pager.Candidates(l.OS)
		if preferred := l.OS.Getenv(l.Pager.Env); preferred != "" {
			l.log().Debug("found pager", zap.String("env", l.Pager.Env), zap.String("pager", preferred))
		}
		if len(programs) == 0 {
			execErr.Err = ErrNoPager
		}
	}

	for _, program := range programs {
		execErr.Tried = append(execErr.Tried, program)

		cmd, err := l.start(stage, program)
		switch {
		case err == nil:
			child := &Child{
				Role:    stage.Role,
				Program: program,
				Pid:     cmd.Process.Pid,
				cmd:     cmd,
			}
			l.log().Debug("stage started",
				zap.Stringer("role", stage.Role),
				zap.String("path", cmd.Path),
				zap.Strings("args", cmd.Args[1:]),
				zap.Int("pid", child.Pid))
			return child, nil

		case isExecFailure(err):
			l.log().Debug("can't execute program",
				zap.Stringer("role", stage.Role),
				zap.String("program", program),
				zap.Error(err))
			execErr.Err = err

		default:
			return nil, &SetupError{Op: "start " + stage.Role.String(), Err: err}
		}
	}

	return &Child{Role: stage.Role, execErr: execErr}, nil
}

func (l *Launcher) start(stage Stage, program string) (*exec.Cmd, error) {
	path, err := vos.LookPath(l.OS, program)
	if err != nil {
		return nil, err
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   append([]string{program}, stage.Args...),
		Env:    l.OS.Environ(),
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}
	if stage.In != nil {
		cmd.Stdin = stage.In
	}
	if stage.Out != nil {
		cmd.Stdout = stage.Out
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (l *Launcher) log() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// isExecFailure reports whether err means the program itself can't be run,
// as opposed to the system failing to create a process.
func isExecFailure(err error) bool {
	var errno syscall.Errno
	switch {
	case errors.Is(err, exec.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return true
	case errors.As(err, &errno):
		return errno == syscall.ENOEXEC || errno == syscall.ENOTDIR
	default:
		return false
	}
}
