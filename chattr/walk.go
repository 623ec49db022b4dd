package chattr

import (
	"fmt"
	"os"

	"github.com/foxboron/go-chattr/ext2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// SetAttrsRecursive applies c to root and, if root is a directory, to
// everything below it. Symbolic links below root are not followed and, like
// device nodes and fifos, are skipped. Failures on single entries do not stop
// the walk; they are returned together.
func (a *Attrs) SetAttrsRecursive(root string, c ext2.Change) error {
	var result *multierror.Error
	err := afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			result = multierror.Append(result, &OpError{Op: "walk", Target: path, Err: fmt.Errorf("%w: %w", ErrTargetUnavailable, err)})
			return nil
		}
		if path != root && !info.Mode().IsRegular() && !info.IsDir() {
			a.log.WithField("target", path).Debugf("skipping %s", info.Mode().Type())
			return nil
		}
		if err := a.SetAttrs(Path(path), c); err != nil {
			result = multierror.Append(result, err)
		}
		return nil
	})
	if err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
