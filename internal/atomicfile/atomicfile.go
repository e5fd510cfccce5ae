// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package atomicfile replaces files without exposing partially written
// contents to concurrent readers.
package atomicfile

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// replaceFile is swapped out in tests.
var replaceFile = atomic.ReplaceFile

// WriteFile atomically replaces the file at path with data. The file appears
// with permissions perm already set, on first write as well as on
// replacement. The parent directory must already exist.
func WriteFile(path string, data []byte, perm fs.FileMode) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := f.Chmod(perm); err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return replaceFile(tmp, path)
}
