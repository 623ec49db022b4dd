package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foxboron/go-chattr/chattr"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type lister struct {
	attrs     *chattr.Attrs
	out       io.Writer
	recursive bool
	all       bool
	dirs      bool
	long      bool
	errs      *multierror.Error
}

func (l *lister) list(name string) {
	fi, err := l.attrs.Fs().Stat(name)
	if err != nil {
		l.fail(err)
		return
	}
	if fi.IsDir() && !l.dirs {
		l.listDir(name)
		return
	}
	l.print(name)
}

func (l *lister) listDir(dir string) {
	entries, err := afero.ReadDir(l.attrs.Fs(), dir)
	if err != nil {
		l.fail(err)
		return
	}
	var subdirs []string
	for _, e := range entries {
		if !l.all && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Mode().IsRegular() && !e.IsDir() {
			continue
		}
		name := filepath.Join(dir, e.Name())
		l.print(name)
		if e.IsDir() {
			subdirs = append(subdirs, name)
		}
	}
	if !l.recursive {
		return
	}
	for _, sub := range subdirs {
		fmt.Fprintf(l.out, "\n%s:\n", sub)
		l.listDir(sub)
	}
}

func (l *lister) print(name string) {
	fl, err := l.attrs.Load(chattr.Path(name))
	if err != nil {
		l.fail(err)
		return
	}
	if !l.long {
		fmt.Fprintf(l.out, "%s %s\n", fl.Format(), name)
		return
	}
	names := strings.Join(fl.Names(), ", ")
	if names == "" {
		names = "---"
	}
	fmt.Fprintf(l.out, "%-28s %s\n", name, names)
}

func (l *lister) fail(err error) {
	l.errs = multierror.Append(l.errs, err)
}

func newCommand(a *chattr.Attrs, stdout io.Writer) *cobra.Command {
	l := &lister{attrs: a, out: stdout}
	cmd := &cobra.Command{
		Use:           "golsattr [-Radl] [FILE...]",
		Short:         "List file attributes on a Linux ext2/3/4 filesystem",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			for _, name := range args {
				l.list(name)
			}
			return l.errs.ErrorOrNil()
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&l.recursive, "recursive", "R", false, "list subdirectories recursively")
	flags.BoolVarP(&l.all, "all", "a", false, "list all files, including those starting with '.'")
	flags.BoolVarP(&l.dirs, "directory", "d", false, "list directories like other files, not their contents")
	flags.BoolVarP(&l.long, "long", "l", false, "print long flag names")
	return cmd
}

func main() {
	cmd := newCommand(chattr.New(), os.Stdout)
	if err := cmd.Execute(); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				fmt.Fprintf(os.Stderr, "golsattr: %v\n", e)
			}
		} else {
			fmt.Fprintf(os.Stderr, "golsattr: %v\n", err)
		}
		os.Exit(1)
	}
}
