package vos

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// VFS is the part of the filesystem needed to locate programs.
type VFS interface {
	Stat(name string) (fs.FileInfo, error)
}

// VOS is the view of the operating system a pipeline is started from: the
// environment handed to every stage and the filesystem searched for their
// programs.
type VOS interface {
	VEnv
	VFS
}

type hostOS struct {
	*MapEnv
	fs afero.Fs
}

var _ VOS = (*hostOS)(nil)

// Stat implements VFS.Stat.
func (h *hostOS) Stat(name string) (fs.FileInfo, error) {
	return h.fs.Stat(name)
}

// New creates a VOS from a filesystem and an environment.
func New(fsys afero.Fs, env *MapEnv) VOS {
	return &hostOS{MapEnv: env, fs: fsys}
}

// Host returns a VOS backed by the real filesystem and a snapshot of the
// current process environment.
func Host() VOS {
	return New(afero.NewOsFs(), NewMapEnvFromEnvList(os.Environ()))
}
