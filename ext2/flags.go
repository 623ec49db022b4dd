package ext2

import (
	"strings"

	"github.com/pkg/errors"
)

// Flags is the flag word of a single inode. It is a plain value: it is only
// associated with a file while it is being loaded or saved.
//
// Bits without a character in the flag table are kept as-is by every
// operation.
type Flags struct {
	value uint32
}

// New returns the Flags holding v.
func New(v uint32) Flags {
	return Flags{value: v}
}

// Value returns the raw flag word.
func (f Flags) Value() uint32 {
	return f.value
}

// String returns one chattr character per known flag that is set, in the
// order lsattr prints them.
func (f Flags) String() string {
	var sb strings.Builder
	for _, e := range flagTable {
		if f.value&uint32(e.flag) != 0 {
			sb.WriteByte(e.char)
		}
	}
	return sb.String()
}

// Format returns the lsattr layout of f: one column per known flag, holding
// its character when set and '-' otherwise.
func (f Flags) Format() string {
	b := make([]byte, len(flagTable))
	for i, e := range flagTable {
		b[i] = '-'
		if f.value&uint32(e.flag) != 0 {
			b[i] = e.char
		}
	}
	return string(b)
}

// Names returns the lsattr -l names of the known flags that are set.
func (f Flags) Names() []string {
	var names []string
	for _, e := range flagTable {
		if f.value&uint32(e.flag) != 0 {
			names = append(names, e.name)
		}
	}
	return names
}

// Set applies c to f. Malformed string changes return an error wrapping
// ErrInvalidSyntax and leave f untouched, as does a nil c.
func (f *Flags) Set(c Change) error {
	if c == nil {
		return errors.Wrap(ErrInvalidSyntax, "nil change")
	}
	v, err := c.apply(f.value)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

// SetString parses s with ParseChange and applies the result.
func (f *Flags) SetString(s string) error {
	c, err := ParseChange(s)
	if err != nil {
		return err
	}
	return f.Set(c)
}

// Strip clears the bits in ReadOnlyMask and returns f.
func (f *Flags) Strip() *Flags {
	f.value &^= ReadOnlyMask
	return f
}

// Has reports whether every bit of fl is set. The empty Flag is never set.
func (f Flags) Has(fl Flag) bool {
	return fl != 0 && f.value&uint32(fl) == uint32(fl)
}

// SetFlag sets or clears the bits of fl.
func (f *Flags) SetFlag(fl Flag, on bool) {
	if on {
		f.value |= uint32(fl)
	} else {
		f.value &^= uint32(fl)
	}
}

// HasChar is Has for a chattr character.
func (f Flags) HasChar(c byte) (bool, error) {
	fl, ok := BitFor(c)
	if !ok {
		return false, errors.Wrapf(ErrUnknownFlag, "%q", c)
	}
	return f.Has(fl), nil
}

// SetChar is SetFlag for a chattr character. Unknown characters are an error
// and change nothing.
func (f *Flags) SetChar(c byte, on bool) error {
	fl, ok := BitFor(c)
	if !ok {
		return errors.Wrapf(ErrUnknownFlag, "%q", c)
	}
	f.SetFlag(fl, on)
	return nil
}

// Immutable reports whether the immutable flag (i) is set.
func (f Flags) Immutable() bool { return f.Has(Immutable) }

// SetImmutable sets or clears the immutable flag.
func (f *Flags) SetImmutable(on bool) { f.SetFlag(Immutable, on) }

// AppendOnly reports whether the append-only flag (a) is set.
func (f Flags) AppendOnly() bool { return f.Has(AppendOnly) }

// SetAppendOnly sets or clears the append-only flag.
func (f *Flags) SetAppendOnly(on bool) { f.SetFlag(AppendOnly, on) }
