// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package licenses collects the license files of bundled third-party libraries
// and renders them into a single HTML page.
//
// A project keeps each bundled library in its own directory under libs/.
// [Scan] picks at most one license file per library, [Load] reads their
// contents and [Write] renders the report into assets/html.
package licenses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/go4org/hashtriemap"
	"golang.org/x/sync/errgroup"

	"go.kegbot.org/buildtools/logger"
)

// LibsDir is the directory, relative to the project root, that holds one
// subdirectory per bundled library.
const LibsDir = "libs"

// DefaultFilenames lists the lowercase file names recognized as license files.
var DefaultFilenames = []string{
	"copying",
	"copying.txt",
	"license",
	"license.txt",
}

// IsLicenseFile reports whether name, compared case-insensitively, is in
// allow. Entries in allow must be lowercase.
func IsLicenseFile(name string, allow []string) bool {
	return slices.Contains(allow, strings.ToLower(name))
}

// Library is a bundled third-party library.
type Library struct {
	// Name is the base name of the library directory.
	Name string
	// LicensePath is the slash-separated path of the license file relative
	// to the project root.
	LicensePath string
	// Text is the license content. It is empty until Load is called.
	Text string
}

// Record maps library names to the paths of their license files. It is safe
// for concurrent use.
type Record struct {
	m hashtriemap.HashTrieMap[string, string]
}

// Set records path as the license file of the named library.
func (r *Record) Set(name, path string) { r.m.Store(name, path) }

// Lookup returns the license file recorded for the named library.
func (r *Record) Lookup(name string) (path string, ok bool) { return r.m.Load(name) }

// ScanOptions configure [Scan].
type ScanOptions struct {
	// Filenames are additional license file names, on top of
	// DefaultFilenames. Case is ignored.
	Filenames []string
	// Exclude lists library names that are skipped without a warning.
	Exclude []string
	// Concurrency limits the number of library directories scanned at once.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int
}

func (o ScanOptions) filenames() []string {
	allow := slices.Clone(DefaultFilenames)
	for _, name := range o.Filenames {
		name = strings.ToLower(name)
		if !slices.Contains(allow, name) {
			allow = append(allow, name)
		}
	}
	return allow
}

func (o ScanOptions) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Result is the outcome of [Scan].
type Result struct {
	// Libraries have a license file. They are sorted by name.
	Libraries []Library
	// Missing names the libraries without a license file, sorted.
	Missing []string
}

// Scan looks for a license file in every library directory under libs/ in
// fsys.
//
// Hidden entries (starting with a dot), plain files and excluded libraries are
// skipped. Within a library directory, the first file whose name is a license
// file name wins; directory listings are in file name order.
func Scan(ctx context.Context, fsys fs.FS, opts ScanOptions) (*Result, error) {
	entries, err := fs.ReadDir(fsys, LibsDir)
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || slices.Contains(opts.Exclude, name) {
			continue
		}
		isDir, err := isDir(fsys, path.Join(LibsDir, name), e)
		if err != nil {
			return nil, err
		}
		if isDir {
			names = append(names, name)
		}
	}

	var (
		rec   Record
		allow = opts.filenames()
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			license, err := findLicense(fsys, path.Join(LibsDir, name), allow)
			if err != nil {
				return err
			}
			if license != "" {
				rec.Set(name, license)
				logger.Debug(ctx, "found license", slog.String("library", name), slog.String("path", license))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := new(Result)
	for _, name := range names {
		license, ok := rec.Lookup(name)
		if !ok {
			res.Missing = append(res.Missing, name)
			continue
		}
		res.Libraries = append(res.Libraries, Library{Name: name, LicensePath: license})
	}
	return res, nil
}

// isDir reports whether e is a directory, following symbolic links. A
// dangling link is not a directory.
func isDir(fsys fs.FS, name string, e fs.DirEntry) (bool, error) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), nil
	}
	fi, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", name, err)
	}
	return fi.IsDir(), nil
}

func findLicense(fsys fs.FS, dir string, allow []string) (string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsLicenseFile(e.Name(), allow) {
			return path.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}

// Load reads the license text of every library from fsys.
func Load(fsys fs.FS, libs []Library) error {
	for i := range libs {
		b, err := fs.ReadFile(fsys, libs[i].LicensePath)
		if err != nil {
			return fmt.Errorf("reading license of %s: %w", libs[i].Name, err)
		}
		libs[i].Text = string(b)
	}
	return nil
}
