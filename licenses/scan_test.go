// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenses

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"go.kegbot.org/buildtools/testutil"
)

func TestIsLicenseFile(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		name string
		want bool
	}{
		"lowercase":         {name: "license", want: true},
		"uppercase":         {name: "LICENSE", want: true},
		"mixed case txt":    {name: "License.TXT", want: true},
		"copying":           {name: "COPYING", want: true},
		"copying txt":       {name: "copying.txt", want: true},
		"markdown":          {name: "LICENSE.md", want: false},
		"prefix only":       {name: "LICENSES", want: false},
		"readme":            {name: "README", want: false},
		"license with path": {name: "sub/LICENSE", want: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, IsLicenseFile(tc.name, DefaultFilenames), tc.want)
		})
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	dir := &fstest.MapFile{Mode: fs.ModeDir | 0o755}
	file := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

	cases := map[string]struct {
		fsys        fstest.MapFS
		opts        ScanOptions
		wantLibs    []Library
		wantMissing []string
	}{
		"one license per library": {
			fsys: fstest.MapFS{
				"libs/foo/LICENSE.txt": file("MIT"),
				"libs/bar/copying":     file("GPL"),
			},
			wantLibs: []Library{
				{Name: "bar", LicensePath: "libs/bar/copying"},
				{Name: "foo", LicensePath: "libs/foo/LICENSE.txt"},
			},
		},
		"library without license": {
			fsys: fstest.MapFS{
				"libs/foo/LICENSE.txt": file("MIT"),
				"libs/bar/README":      file("readme"),
				"libs/empty":           dir,
			},
			wantLibs:    []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE.txt"}},
			wantMissing: []string{"bar", "empty"},
		},
		"first match in listing order wins": {
			fsys: fstest.MapFS{
				"libs/foo/license":    file("second"),
				"libs/foo/COPYING":    file("first"),
				"libs/foo/LICENSE.md": file("ignored"),
			},
			wantLibs: []Library{{Name: "foo", LicensePath: "libs/foo/COPYING"}},
		},
		"hidden directories are skipped": {
			fsys: fstest.MapFS{
				"libs/.git/LICENSE": file("hidden"),
				"libs/.svn/README":  file("hidden"),
				"libs/foo/LICENSE":  file("MIT"),
			},
			wantLibs: []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE"}},
		},
		"files under libs are not libraries": {
			fsys: fstest.MapFS{
				"libs/LICENSE":     file("stray"),
				"libs/foo.jar":     file("jar"),
				"libs/foo/LICENSE": file("MIT"),
			},
			wantLibs: []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE"}},
		},
		"directories named like licenses are ignored": {
			fsys: fstest.MapFS{
				"libs/foo/LICENSE/apache.txt": file("nested"),
			},
			wantMissing: []string{"foo"},
		},
		"excluded libraries": {
			fsys: fstest.MapFS{
				"libs/foo/LICENSE":  file("MIT"),
				"libs/fork/README":  file("no license"),
				"libs/other/README": file("no license"),
			},
			opts:        ScanOptions{Exclude: []string{"fork"}},
			wantLibs:    []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE"}},
			wantMissing: []string{"other"},
		},
		"extra file names": {
			fsys: fstest.MapFS{
				"libs/foo/LICENSE.md": file("MIT"),
			},
			opts:     ScanOptions{Filenames: []string{"License.MD"}},
			wantLibs: []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE.md"}},
		},
		"serial scan": {
			fsys: fstest.MapFS{
				"libs/a/LICENSE": file("a"),
				"libs/b/LICENSE": file("b"),
				"libs/c/LICENSE": file("c"),
			},
			opts: ScanOptions{Concurrency: 1},
			wantLibs: []Library{
				{Name: "a", LicensePath: "libs/a/LICENSE"},
				{Name: "b", LicensePath: "libs/b/LICENSE"},
				{Name: "c", LicensePath: "libs/c/LICENSE"},
			},
		},
		"empty libs": {
			fsys: fstest.MapFS{
				"libs": dir,
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := Scan(context.Background(), tc.fsys, tc.opts)
			if err != nil {
				t.Fatalf("Scan() = %v", err)
			}
			testutil.AssertEqual(t, res.Libraries, tc.wantLibs)
			testutil.AssertEqual(t, res.Missing, tc.wantMissing)
		})
	}
}

func TestScanMissingLibs(t *testing.T) {
	t.Parallel()

	_, err := Scan(context.Background(), fstest.MapFS{
		"assets/html/index.html": &fstest.MapFile{},
	}, ScanOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestScanCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, fstest.MapFS{
		"libs/foo/LICENSE": &fstest.MapFile{Data: []byte("MIT")},
	}, ScanOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"libs/foo/LICENSE": &fstest.MapFile{Data: []byte("MIT\n")},
	}

	libs := []Library{{Name: "foo", LicensePath: "libs/foo/LICENSE"}}
	if err := Load(fsys, libs); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, libs[0].Text, "MIT\n")

	err := Load(fsys, []Library{{Name: "gone", LicensePath: "libs/gone/LICENSE"}})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	var r Record
	if _, ok := r.Lookup("foo"); ok {
		t.Fatal("empty record must not contain foo")
	}
	r.Set("foo", "libs/foo/LICENSE")
	got, ok := r.Lookup("foo")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, got, "libs/foo/LICENSE")
}
