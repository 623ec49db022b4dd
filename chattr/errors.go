package chattr

import (
	"errors"

	"github.com/foxboron/go-chattr/attr"
	"github.com/foxboron/go-chattr/ext2"
)

var (
	// ErrTargetUnavailable is returned when a path cannot be opened or a
	// file handle is not open.
	ErrTargetUnavailable = errors.New("target unavailable")
	ErrUnsupported       = attr.ErrUnsupported
	ErrIO                = attr.ErrIO
	ErrInvalidSyntax     = ext2.ErrInvalidSyntax
)

// OpError records the operation and target of a failed flag operation.
type OpError struct {
	Op     string
	Target string
	Err    error
}

func (e *OpError) Error() string {
	return e.Op + " " + e.Target + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
