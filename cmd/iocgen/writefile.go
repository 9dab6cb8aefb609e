package main

import (
	"io"
	"os"
	"path/filepath"
)

// fileOps are the filesystem calls iocgen makes to publish a generated file.
type fileOps struct {
	createTemp func(dir, pattern string) (io.WriteCloser, string, error)
	chmod      func(name string, mode os.FileMode) error
	rename     func(from, to string) error
	remove     func(name string) error
}

var osFiles = fileOps{
	createTemp: func(dir, pattern string) (io.WriteCloser, string, error) {
		f, err := os.CreateTemp(dir, pattern)
		if err != nil {
			return nil, "", err
		}
		return f, f.Name(), nil
	},
	chmod:  os.Chmod,
	rename: os.Rename,
	remove: os.Remove,
}

// publish stages data in a hidden sibling of target and renames it over
// target. Readers see either the old file or the complete new one. The
// staged file is removed on any failure.
func (ops fileOps) publish(target string, data []byte, perm os.FileMode) error {
	w, staged, err := ops.createTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}

	if err := ops.stage(w, staged, data, perm); err != nil {
		_ = ops.remove(staged)
		return err
	}
	if err := ops.rename(staged, target); err != nil {
		_ = ops.remove(staged)
		return err
	}
	return nil
}

func (ops fileOps) stage(w io.WriteCloser, staged string, data []byte, perm os.FileMode) error {
	_, werr := w.Write(data)
	cerr := w.Close()
	switch {
	case werr != nil:
		return werr
	case cerr != nil:
		return cerr
	}
	return ops.chmod(staged, perm)
}
