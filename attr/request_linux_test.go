package attr

import (
	"errors"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func newRequest() *request {
	return &request{name: "TEST", variants: [2]uint{32, 64}}
}

func TestRequestFallsBackOnENOTTY(t *testing.T) {
	r := newRequest()
	var tried []uint
	err := r.do(func(req uint) error {
		tried = append(tried, req)
		if req == 32 {
			return unix.ENOTTY
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tried) != 2 || tried[0] != 32 || tried[1] != 64 {
		t.Fatalf("tried %v", tried)
	}

	// The working variant is remembered.
	tried = nil
	r.do(func(req uint) error {
		tried = append(tried, req)
		return nil
	})
	if len(tried) != 1 || tried[0] != 64 {
		t.Fatalf("tried %v after probing", tried)
	}
}

func TestRequestOtherErrorsDoNotFallBack(t *testing.T) {
	r := newRequest()
	calls := 0
	err := r.do(func(req uint) error {
		calls++
		return unix.EPERM
	})
	if calls != 1 {
		t.Fatalf("called %d times", calls)
	}
	if !errors.Is(err, ErrIO) || !errors.Is(err, unix.EPERM) {
		t.Fatalf("got %v", err)
	}
}

func TestRequestUnsupported(t *testing.T) {
	r := newRequest()
	calls := 0
	err := r.do(func(req uint) error {
		calls++
		return unix.ENOTTY
	})
	if calls != 2 {
		t.Fatalf("called %d times", calls)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("got %v", err)
	}
	if r.preferred.Load() != 0 {
		t.Fatal("failed request changed the preferred variant")
	}
}

func TestGetFlagsOnPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	if _, err := GetAttrFromFile(r); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported on a pipe, got %v", err)
	}
	if err := SetAttrOnFile(w, 0); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported on a pipe, got %v", err)
	}
}
