//go:build linux

package attr

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// request is one ioctl with the request numbers a 32-bit and a 64-bit kernel
// expect. The numbers differ in the encoded argument size, and which one the
// running kernel accepts can only be found by trying.
type request struct {
	name     string
	variants [2]uint

	// index of the variant that last succeeded
	preferred atomic.Int32
}

var (
	getFlagsRequest = &request{name: "FS_IOC_GETFLAGS", variants: [2]uint{0x80046601, 0x80086601}}
	setFlagsRequest = &request{name: "FS_IOC_SETFLAGS", variants: [2]uint{0x40046602, 0x40086602}}
)

// do calls fn with the preferred request number and retries with the other
// one when the kernel answers ENOTTY.
func (r *request) do(fn func(req uint) error) error {
	first := int(r.preferred.Load())
	for i := 0; i < len(r.variants); i++ {
		idx := (first + i) % len(r.variants)
		err := fn(r.variants[idx])
		switch {
		case err == nil:
			r.preferred.Store(int32(idx))
			return nil
		case !errors.Is(err, unix.ENOTTY):
			return fmt.Errorf("%w: %s: %w", ErrIO, r.name, err)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, r.name)
}
