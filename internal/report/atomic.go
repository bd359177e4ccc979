package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeAtomic streams fill into a scratch file next to path and renames it
// over path once everything is flushed. A failed fill leaves path untouched.
func writeAtomic(path string, perm os.FileMode, fill func(io.Writer) error) (err error) {
	scratch, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = scratch.Close()
			_ = os.Remove(scratch.Name())
		}
	}()

	bw := bufio.NewWriter(scratch)
	if err = fill(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", scratch.Name(), err)
	}
	if err = scratch.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", scratch.Name(), err)
	}
	if err = errors.Join(scratch.Sync(), scratch.Close()); err != nil {
		return fmt.Errorf("finishing %s: %w", scratch.Name(), err)
	}
	return os.Rename(scratch.Name(), path)
}
