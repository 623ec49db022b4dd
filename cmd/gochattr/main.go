package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/foxboron/go-chattr/chattr"
	"github.com/foxboron/go-chattr/ext2"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCommand(a *chattr.Attrs, stderr io.Writer) *cobra.Command {
	var recursive, quiet, verbose, force bool

	cmd := &cobra.Command{
		Use:   "gochattr [-RVf] [--force] MODE FILE...",
		Short: "Change file attributes on a Linux ext2/3/4 filesystem",
		Long: `MODE is +flags, -flags, =flags, a mix of + and - groups, or a
number replacing the whole flag word. Flags are taken from "` + ext2.Alphabet() + `".`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(stderr)
			logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			a.WithLogger(logger).Strict()
			if force {
				a.Force()
			}

			change, err := ext2.ParseChange(args[0])
			if err != nil {
				return err
			}

			var result *multierror.Error
			for _, name := range args[1:] {
				if recursive {
					err = a.SetAttrsRecursive(name, change)
				} else {
					err = a.SetAttrs(chattr.Path(name), change)
				}
				if err != nil {
					result = multierror.Append(result, err)
				}
			}
			err = result.ErrorOrNil()
			if err != nil && quiet {
				return errQuiet
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&recursive, "recursive", "R", false, "change directories and their contents recursively")
	flags.BoolVarP(&verbose, "verbose", "V", false, "print the old and new flags of every file")
	flags.BoolVarP(&quiet, "quiet", "f", false, "suppress error messages")
	flags.BoolVar(&force, "force", false, "allow changing flags maintained by the kernel")
	return cmd
}

var errQuiet = errors.New("failed")

// modeArgs inserts "--" before a mode starting with '-', so "-i" is not
// parsed as an option. Options have to precede the mode, as with chattr(1).
func modeArgs(args []string) []string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return args
		case isDashMode(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case !strings.HasPrefix(arg, "-"):
			return args
		}
	}
	return args
}

func isDashMode(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return false
	}
	for i := 1; i < len(arg); i++ {
		if _, ok := ext2.BitFor(arg[i]); !ok && arg[i] != '+' && arg[i] != '-' {
			return false
		}
	}
	return true
}

func main() {
	cmd := newCommand(chattr.New(), os.Stderr)
	cmd.SetArgs(modeArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if err != errQuiet {
			fmt.Fprintf(os.Stderr, "gochattr: %v\n", err)
		}
		os.Exit(1)
	}
}
