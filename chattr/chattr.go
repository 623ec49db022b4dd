// Package chattr changes the ext2/3/4 inode flags of files the way chattr(1)
// does: read the current flags, merge the requested change and write the
// result back, keeping the flags the kernel reserves for itself.
//
// The read-modify-write is not atomic. A change made by another process
// between the read and the write is overwritten; callers must serialize
// access to the same file themselves.
package chattr

import (
	"github.com/foxboron/go-chattr/ext2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Attrs resolves targets through an afero.Fs and accesses their flag words
// through a FlagIO.
type Attrs struct {
	fs     afero.Fs
	io     FlagIO
	force  bool
	strict bool
	log    logrus.FieldLogger
}

// New returns Attrs working on the OS filesystem with the flag ioctls.
func New() *Attrs {
	return NewWith(afero.NewOsFs(), KernelIO{})
}

// NewMemory returns Attrs backed by an in-memory filesystem and flag store.
func NewMemory() *Attrs {
	return NewWith(afero.NewMemMapFs(), NewMemoryIO())
}

// NewWith returns Attrs resolving paths on fs and accessing flags through io.
func NewWith(fs afero.Fs, io FlagIO) *Attrs {
	return &Attrs{
		fs:  fs,
		io:  io,
		log: logrus.StandardLogger(),
	}
}

// Force allows SetAttrs to change the flags in ext2.ReadOnlyMask.
func (a *Attrs) Force() *Attrs {
	a.force = true
	return a
}

// Strict makes SetAttrs fail on a malformed change instead of logging a
// warning and writing the flags back unchanged.
func (a *Attrs) Strict() *Attrs {
	a.strict = true
	return a
}

// WithLogger sets the logger receiving warnings and debug output.
func (a *Attrs) WithLogger(l logrus.FieldLogger) *Attrs {
	a.log = l
	return a
}

// Fs returns the filesystem paths are resolved on.
func (a *Attrs) Fs() afero.Fs {
	return a.fs
}

// FlagIO returns the backend reading and writing flag words.
func (a *Attrs) FlagIO() FlagIO {
	return a.io
}

// with opens t for the duration of fn. Close errors are merged into the
// result.
func (a *Attrs) with(t Target, op string, fn func(f afero.File) error) error {
	f, release, err := t.open(a.fs)
	if err != nil {
		return &OpError{Op: op, Target: t.String(), Err: err}
	}
	var result *multierror.Error
	if err := fn(f); err != nil {
		result = multierror.Append(result, err)
	}
	if err := release(); err != nil {
		result = multierror.Append(result, &OpError{Op: "close", Target: t.String(), Err: err})
	}
	if result != nil && len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result.ErrorOrNil()
}

// Load returns the current flags of t.
func (a *Attrs) Load(t Target) (ext2.Flags, error) {
	var fl ext2.Flags
	err := a.with(t, "load", func(f afero.File) error {
		v, err := a.io.GetFlags(f)
		if err != nil {
			return &OpError{Op: "load", Target: t.String(), Err: err}
		}
		fl = ext2.New(v)
		return nil
	})
	return fl, err
}

// SetAttrs applies c to the flags of t. Unless Force was set, the bits in
// ext2.ReadOnlyMask keep the values they had before the change.
func (a *Attrs) SetAttrs(t Target, c ext2.Change) error {
	return a.setAttrs(t, c, a.force)
}

// Save writes fl to t. Protected bits are never changed by Save.
func (a *Attrs) Save(fl ext2.Flags, t Target) error {
	return a.setAttrs(t, ext2.CopyFrom(fl), false)
}

func (a *Attrs) setAttrs(t Target, c ext2.Change, force bool) error {
	if c == nil {
		return &OpError{Op: "set", Target: t.String(), Err: errors.Wrap(ErrInvalidSyntax, "nil change")}
	}
	return a.with(t, "set", func(f afero.File) error {
		old, err := a.io.GetFlags(f)
		if err != nil {
			return &OpError{Op: "load", Target: t.String(), Err: err}
		}
		fl := ext2.New(old)
		if err := fl.Set(c); err != nil {
			if a.strict {
				return &OpError{Op: "set", Target: t.String(), Err: err}
			}
			a.log.WithField("target", t.String()).WithError(err).Warn("flags left unchanged")
		}
		if !force {
			fl = ext2.New(old&ext2.ReadOnlyMask | fl.Strip().Value())
		}
		if err := a.io.SetFlags(f, fl.Value()); err != nil {
			return &OpError{Op: "set", Target: t.String(), Err: err}
		}
		a.log.WithField("target", t.String()).Debugf("flags 0x%08x -> 0x%08x", old, fl.Value())
		return nil
	})
}

var std = New()

// SetAttrs applies c to the flags of t on the OS filesystem. force allows
// changing the flags in ext2.ReadOnlyMask.
func SetAttrs(t Target, c ext2.Change, force bool) error {
	return std.setAttrs(t, c, force)
}

// Load returns the flags of t on the OS filesystem.
func Load(t Target) (ext2.Flags, error) {
	return std.Load(t)
}

// Save writes fl to t on the OS filesystem, keeping the protected bits.
func Save(fl ext2.Flags, t Target) error {
	return std.Save(fl, t)
}
