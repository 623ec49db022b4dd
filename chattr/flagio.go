package chattr

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/foxboron/go-chattr/attr"
	"github.com/spf13/afero"
)

// FlagIO reads and writes the flag word of an open file.
type FlagIO interface {
	GetFlags(f afero.File) (uint32, error)
	SetFlags(f afero.File, v uint32) error
}

// KernelIO issues the flag ioctls on the descriptor behind f. Files that are
// not backed by an OS descriptor return ErrUnsupported.
type KernelIO struct{}

var _ FlagIO = KernelIO{}

func (KernelIO) GetFlags(f afero.File) (uint32, error) {
	fd, err := fdOf(f)
	if err != nil {
		return 0, err
	}
	return attr.GetFlags(fd)
}

func (KernelIO) SetFlags(f afero.File, v uint32) error {
	fd, err := fdOf(f)
	if err != nil {
		return err
	}
	return attr.SetFlags(fd, v)
}

func fdOf(f afero.File) (uintptr, error) {
	// Unwrap afero.BasePathFile instances.
	for {
		if baseFile, ok := f.(*afero.BasePathFile); ok {
			f = baseFile.File
			continue
		}
		break
	}
	o, ok := f.(interface{ Fd() uintptr })
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an OS file", ErrUnsupported, f.Name())
	}
	fd := o.Fd()
	if fd == ^uintptr(0) {
		return 0, fmt.Errorf("%w: file is closed", ErrTargetUnavailable)
	}
	return fd, nil
}

// MemoryIO keeps flag words in a map keyed by file name. It stands in for
// the kernel on in-memory filesystems and, like the kernel, only accepts
// regular files and directories.
type MemoryIO struct {
	mu    sync.Mutex
	flags map[string]uint32
}

var _ FlagIO = &MemoryIO{}

// NewMemoryIO returns an empty MemoryIO.
func NewMemoryIO() *MemoryIO {
	return &MemoryIO{flags: map[string]uint32{}}
}

func (m *MemoryIO) GetFlags(f afero.File) (uint32, error) {
	if err := checkFileType(f); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[filepath.Clean(f.Name())], nil
}

func (m *MemoryIO) SetFlags(f afero.File, v uint32) error {
	if err := checkFileType(f); err != nil {
		return err
	}
	m.Store(f.Name(), v)
	return nil
}

// Store sets the flag word of name without going through a file.
func (m *MemoryIO) Store(name string, v uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[filepath.Clean(name)] = v
}

// Lookup returns the flag word stored for name.
func (m *MemoryIO) Lookup(name string) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[filepath.Clean(name)]
}

func checkFileType(f afero.File) error {
	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: could not stat %s: %w", ErrIO, f.Name(), err)
	}
	if !fi.Mode().IsRegular() && !fi.IsDir() {
		return fmt.Errorf("%w: %s is a %s", ErrUnsupported, f.Name(), fi.Mode().Type())
	}
	return nil
}
