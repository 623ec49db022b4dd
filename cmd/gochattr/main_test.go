package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/foxboron/go-chattr/chattr"
	"github.com/foxboron/go-chattr/ext2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, files map[string]uint32) (*chattr.Attrs, *chattr.MemoryIO) {
	a := chattr.NewMemory()
	io := a.FlagIO().(*chattr.MemoryIO)
	for name, v := range files {
		require.NoError(t, a.Fs().MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(a.Fs(), name, nil, 0644))
		io.Store(name, v)
	}
	return a, io
}

func run(a *chattr.Attrs, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := newCommand(a, &stderr)
	cmd.SetArgs(modeArgs(args))
	err := cmd.Execute()
	return stderr.String(), err
}

func TestModeArgs(t *testing.T) {
	assert.Equal(t, []string{"--", "-i", "f"}, modeArgs([]string{"-i", "f"}))
	assert.Equal(t, []string{"-R", "--", "-a+i", "d"}, modeArgs([]string{"-R", "-a+i", "d"}))
	assert.Equal(t, []string{"+i", "f"}, modeArgs([]string{"+i", "f"}))
	assert.Equal(t, []string{"-V", "=A", "-f"}, modeArgs([]string{"-V", "=A", "-f"}))
	assert.Equal(t, []string{"--", "-i"}, modeArgs([]string{"--", "-i"}))
}

func TestChattr(t *testing.T) {
	a, io := setup(t, map[string]uint32{
		"/a": uint32(ext2.AppendOnly),
		"/b": uint32(ext2.Extents),
	})

	_, err := run(a, "-a+iA", "/a", "/b")
	require.NoError(t, err)
	assert.Equal(t, uint32(ext2.Immutable|ext2.NoAtime), io.Lookup("/a"))
	assert.Equal(t, uint32(ext2.Immutable|ext2.NoAtime|ext2.Extents), io.Lookup("/b"))

	_, err = run(a, "=d", "/b")
	require.NoError(t, err)
	assert.Equal(t, uint32(ext2.NoDump|ext2.Extents), io.Lookup("/b"))
}

func TestChattrForce(t *testing.T) {
	a, io := setup(t, map[string]uint32{"/a": uint32(ext2.Extents | ext2.Immutable)})

	_, err := run(a, "--force", "-e", "/a")
	require.NoError(t, err)
	assert.Equal(t, uint32(ext2.Immutable), io.Lookup("/a"))
}

func TestChattrRecursive(t *testing.T) {
	a, io := setup(t, map[string]uint32{"/d/x": 0, "/d/e/y": 0})

	_, err := run(a, "-R", "+d", "/d")
	require.NoError(t, err)
	for _, name := range []string{"/d", "/d/x", "/d/e", "/d/e/y"} {
		assert.Equal(t, uint32(ext2.NoDump), io.Lookup(name), name)
	}
}

func TestChattrInvalidMode(t *testing.T) {
	a, io := setup(t, map[string]uint32{"/a": uint32(ext2.NoAtime)})

	_, err := run(a, "+Q", "/a")
	assert.ErrorIs(t, err, ext2.ErrInvalidSyntax)
	assert.Equal(t, uint32(ext2.NoAtime), io.Lookup("/a"))
}

func TestChattrMissingFile(t *testing.T) {
	a, io := setup(t, map[string]uint32{"/a": 0})

	_, err := run(a, "+i", "/missing", "/a")
	assert.ErrorIs(t, err, chattr.ErrTargetUnavailable)
	assert.Equal(t, uint32(ext2.Immutable), io.Lookup("/a"), "later files are still changed")

	_, err = run(a, "-f", "+i", "/missing")
	assert.Equal(t, errQuiet, err)
}

func TestChattrVerbose(t *testing.T) {
	a, _ := setup(t, map[string]uint32{"/a": 0})

	out, err := run(a, "-V", "+i", "/a")
	require.NoError(t, err)
	assert.Contains(t, out, "0x00000000 -> 0x00000010")
}
