package attr

import (
	"golang.org/x/sys/unix"
)

// GetFlags retrieves the flag word of the file open as fd. Only regular files
// and directories support it; other file types return ErrUnsupported.
func GetFlags(fd uintptr) (uint32, error) {
	var v uint32
	err := getFlagsRequest.do(func(req uint) (err error) {
		v, err = unix.IoctlGetUint32(int(fd), req)
		return err
	})
	return v, err
}

// SetFlags sets the flag word of the file open as fd.
func SetFlags(fd uintptr, v uint32) error {
	return setFlagsRequest.do(func(req uint) error {
		return unix.IoctlSetPointerInt(int(fd), req, int(int32(v)))
	})
}
