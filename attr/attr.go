// Package attr reads and writes the inode flag word of open files with the
// FS_IOC_GETFLAGS and FS_IOC_SETFLAGS ioctls.
package attr

import (
	"errors"
	"os"
)

var (
	// ErrUnsupported is returned when the file, or its filesystem, does not
	// implement the flag ioctls under either request number.
	ErrUnsupported = errors.New("flag ioctl not supported")
	// ErrIO wraps every other ioctl failure. The errno stays in the chain.
	ErrIO = errors.New("flag ioctl failed")
)

// GetAttrFromFile retrieves the flag word of f.
func GetAttrFromFile(f *os.File) (uint32, error) {
	return GetFlags(f.Fd())
}

// SetAttrOnFile sets the flag word of f to the given value.
func SetAttrOnFile(f *os.File, attr uint32) error {
	return SetFlags(f.Fd(), attr)
}
