// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"go.kegbot.org/buildtools/cli"
	"go.kegbot.org/buildtools/cli/clitest"
	"go.kegbot.org/buildtools/testutil"
)

const project = `
-- libs/foo/LICENSE.txt --
MIT
-- libs/bar/README --
no license here
-- libs/.hidden/LICENSE --
hidden
`

func extract(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.ExtractTxtar(t, txtar.Parse([]byte(archive)), dir)
	return dir
}

func reportPath(dir string) string {
	return filepath.Join(dir, "assets", "html", "third_party_licenses.html")
}

func readReport(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(reportPath(dir))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRun(t *testing.T) {
	var (
		basic      = extract(t, project)
		verbose    = extract(t, project)
		configured = extract(t, project)
		noLibs     = t.TempDir()
		malformed  = extract(t, project)
	)

	ar := &txtar.Archive{Files: []txtar.File{
		{Name: "licenses.yaml", Data: []byte("exclude: [bar]\n")},
	}}
	if err := os.WriteFile(filepath.Join(configured, ".devtools.txtar"), txtar.Format(ar), 0o644); err != nil {
		t.Fatal(err)
	}

	bad := "-- licenses.yaml --\nfilenames: 3\n"
	if err := os.WriteFile(filepath.Join(malformed, "bad.txtar"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]clitest.Case[*app]{
		"missing project directory": {
			Args:         []string{},
			WantErr:      cli.ErrInvalidArgs,
			WantInStderr: "genlicenses [flags] <project_dir>",
		},
		"generates report": {
			Args:         []string{basic},
			WantInStdout: "Generated third party license HTML: third_party_licenses.html\n",
			WantInStderr: "Warning: no license file found for bar\n",
			CheckFunc: func(t *testing.T, _ *app) {
				got := readReport(t, basic)
				if !strings.Contains(got, "<h2>foo</h2><pre>MIT\n</pre>") {
					t.Errorf("report must contain foo, got: %s", got)
				}
				for _, name := range []string{"bar", ".hidden"} {
					if strings.Contains(got, "<h2>"+name+"</h2>") {
						t.Errorf("report must not contain %s, got: %s", name, got)
					}
				}
			},
		},
		"verbose": {
			Args:         []string{"-v", verbose},
			WantInStderr: "library=foo",
		},
		"config excludes library": {
			Args:         []string{configured},
			WantInStdout: "Generated third party license HTML",
			CheckFunc: func(t *testing.T, _ *app) {
				if strings.Contains(readReport(t, configured), "bar") {
					t.Error("excluded library must not be reported")
				}
			},
		},
		"missing libs directory": {
			Args:    []string{noLibs},
			WantErr: fs.ErrNotExist,
			CheckFunc: func(t *testing.T, _ *app) {
				if _, err := os.Stat(reportPath(noLibs)); !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("report must not be written, got %v", err)
				}
			},
		},
		"malformed config": {
			Args:        []string{"-config", "bad.txtar", malformed},
			WantErrType: &yaml.TypeError{},
		},
	}

	clitest.Run(t, func(t *testing.T) *app { return new(app) }, cases)
}
