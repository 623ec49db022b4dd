package ext2

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSyntax = errors.New("invalid flag syntax")
	ErrUnknownFlag   = errors.New("unknown flag character")
)

// Change is a requested modification of a flag word. The variants are
// Absolute, AbsoluteString, IncrementalString, CopyFrom and Mode.
type Change interface {
	apply(old uint32) (uint32, error)
}

// Absolute replaces the whole flag word.
type Absolute uint32

func (a Absolute) apply(uint32) (uint32, error) {
	return uint32(a), nil
}

// AbsoluteString is a chattr "=" mode: "iA" or "=iA". The named flags are
// set and all others cleared.
type AbsoluteString string

func (a AbsoluteString) apply(uint32) (uint32, error) {
	s := strings.TrimPrefix(string(a), "=")
	var v uint32
	for i := 0; i < len(s); i++ {
		fl, ok := BitFor(s[i])
		if !ok {
			return 0, errors.Wrapf(ErrInvalidSyntax, "%q: unknown flag %q", string(a), s[i])
		}
		v |= uint32(fl)
	}
	return v, nil
}

// IncrementalString is a chattr "+"/"-" mode such as "-a+iA". Characters are
// removed until the first sign, then added or removed per the last sign seen.
type IncrementalString string

func (c IncrementalString) apply(old uint32) (uint32, error) {
	v := old
	add := false
	for i := 0; i < len(c); i++ {
		switch ch := c[i]; ch {
		case '+':
			add = true
		case '-':
			add = false
		default:
			fl, ok := BitFor(ch)
			if !ok {
				return old, errors.Wrapf(ErrInvalidSyntax, "%q: unknown flag %q", string(c), ch)
			}
			if add {
				v |= uint32(fl)
			} else {
				v &^= uint32(fl)
			}
		}
	}
	return v, nil
}

// CopyFrom takes the raw value of another Flags.
type CopyFrom Flags

func (c CopyFrom) apply(uint32) (uint32, error) {
	return c.value, nil
}

// Mode is an unclassified chattr mode string. It is parsed with ParseChange
// when applied, so a malformed mode surfaces as an error from Set.
type Mode string

func (m Mode) apply(old uint32) (uint32, error) {
	c, err := ParseChange(string(m))
	if err != nil {
		return old, err
	}
	return c.apply(old)
}

// ParseChange classifies s as a number, an absolute string or an incremental
// string, in that order. Numbers are decimal unless prefixed with 0x, 0o or
// 0b. Anything else is an ErrInvalidSyntax.
func ParseChange(s string) (Change, error) {
	switch {
	case isNumeric(s):
		base := 10
		if len(s) > 1 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
			base = 0
		}
		n, err := strconv.ParseUint(s, base, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSyntax, "%q: %v", s, err)
		}
		return Absolute(n), nil
	case isAbsolute(s):
		return AbsoluteString(s), nil
	case isIncremental(s):
		return IncrementalString(s), nil
	}
	return nil, errors.Wrapf(ErrInvalidSyntax, "%q", s)
}

func isNumeric(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// =?[alphabet]*
func isAbsolute(s string) bool {
	return knownChars(strings.TrimPrefix(s, "="))
}

// ([-+][alphabet]*)*
func isIncremental(s string) bool {
	if s == "" {
		return true
	}
	if s[0] != '+' && s[0] != '-' {
		return false
	}
	for _, run := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == '-' }) {
		if !knownChars(run) {
			return false
		}
	}
	return true
}

func knownChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if _, ok := BitFor(s[i]); !ok {
			return false
		}
	}
	return true
}
