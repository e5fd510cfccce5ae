// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenses

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"go.kegbot.org/buildtools/testutil"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in      string
		want    *Config
		wantErr bool
	}{
		"empty archive": {
			in:   "",
			want: &Config{},
		},
		"other members only": {
			in:   "-- pre-commit.json --\n[]\n",
			want: &Config{},
		},
		"full": {
			in: "-- licenses.yaml --\nfilenames: [license.md, NOTICE]\nexclude:\n  - fork\n",
			want: &Config{
				Filenames: []string{"license.md", "NOTICE"},
				Exclude:   []string{"fork"},
			},
		},
		"invalid yaml": {
			in:      "-- licenses.yaml --\nfilenames: [unterminated\n",
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseConfig(txtar.Parse([]byte(tc.in)))
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("missing archive: %v", err)
	}
	testutil.AssertEqual(t, cfg, &Config{})

	path := filepath.Join(dir, ConfigFile)
	ar := &txtar.Archive{Files: []txtar.File{
		{Name: "licenses.yaml", Data: []byte("exclude: [fork]\n")},
	}}
	if err := os.WriteFile(path, txtar.Format(ar), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg.ScanOptions(), ScanOptions{Exclude: []string{"fork"}})
}
