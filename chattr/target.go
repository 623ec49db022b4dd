package chattr

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/afero"
)

// Target is the file a flag operation acts on: a Path, opened and closed by
// the operation, or a File owned by the caller.
type Target interface {
	open(fs afero.Fs) (f afero.File, release func() error, err error)
	String() string
}

// Path is a file name resolved through the filesystem of Attrs.
type Path string

func (p Path) open(fs afero.Fs) (afero.File, func() error, error) {
	// O_NONBLOCK keeps fifos from blocking the open; the ioctl rejects them.
	f, err := fs.OpenFile(string(p), os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTargetUnavailable, err)
	}
	return f, f.Close, nil
}

func (p Path) String() string {
	return string(p)
}

type fileTarget struct {
	f afero.File
}

// File wraps an already open file. It is never closed by this package.
// A nil *os.File is treated like a nil file.
func File(f afero.File) Target {
	if o, ok := f.(*os.File); ok && o == nil {
		f = nil
	}
	return fileTarget{f}
}

func (t fileTarget) open(afero.Fs) (afero.File, func() error, error) {
	if t.f == nil {
		return nil, nil, fmt.Errorf("%w: nil file", ErrTargetUnavailable)
	}
	return t.f, func() error { return nil }, nil
}

func (t fileTarget) String() string {
	if t.f == nil {
		return "<nil>"
	}
	return t.f.Name()
}
