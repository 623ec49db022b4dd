//go:build !linux

package attr

// Stub implementation for systems without the ext2 flag ioctls
func GetFlags(fd uintptr) (uint32, error) {
	return 0, ErrUnsupported
}

// Stub implementation for systems without the ext2 flag ioctls
func SetFlags(fd uintptr, v uint32) error {
	return ErrUnsupported
}
