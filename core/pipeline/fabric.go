package pipeline

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Channel is a pipe between two adjacent stages.
type Channel struct {
	R *os.File
	W *os.File
}

func newChannel(i int) (*Channel, error) {
	var fds [2]int
	// Close-on-exec so a stage only inherits the ends it is explicitly given.
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, &SetupError{Op: "pipe", Err: os.NewSyscallError("pipe2", err)}
	}

	return &Channel{
		R: os.NewFile(uintptr(fds[0]), fmt.Sprintf("|%d.r", i)),
		W: os.NewFile(uintptr(fds[1]), fmt.Sprintf("|%d.w", i)),
	}, nil
}

// Close closes both ends, ends that are already closed are skipped.
func (c *Channel) Close() error {
	return errors.Join(closeEnd(c.R), closeEnd(c.W))
}

func closeEnd(f *os.File) error {
	if f == nil {
		return nil
	}
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// Fabric holds the channels of one pipeline; channel i connects stage i to
// stage i+1.
type Fabric struct {
	channels []*Channel
}

// NewFabric allocates n channels. If any allocation fails the ones already
// created are closed and a *SetupError is returned.
func NewFabric(n int) (*Fabric, error) {
	f := &Fabric{}
	for i := 0; i < n; i++ {
		ch, err := newChannel(i)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		f.channels = append(f.channels, ch)
	}

	return f, nil
}

// Len returns the number of channels.
func (f *Fabric) Len() int {
	return len(f.channels)
}

// Channel returns channel i.
func (f *Fabric) Channel(i int) *Channel {
	return f.channels[i]
}

// Wire returns a copy of stage with the ends it uses for position i of a
// pipeline with n stages.
func (f *Fabric) Wire(stage Stage, i, n int) Stage {
	if i > 0 {
		stage.In = f.channels[i-1].R
	}
	if i < n-1 {
		stage.Out = f.channels[i].W
	}
	return stage
}

// Close closes every end still open in this process.
func (f *Fabric) Close() error {
	var errs []error
	for _, ch := range f.channels {
		errs = append(errs, ch.Close())
	}
	return errors.Join(errs...)
}
