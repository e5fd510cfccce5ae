// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenses

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the default name of the per-project devtools archive.
const ConfigFile = ".devtools.txtar"

// configEntry is the archive member holding the license settings.
const configEntry = "licenses.yaml"

// Config holds per-project license settings.
//
// It is read from the licenses.yaml member of a txtar archive:
//
//	-- licenses.yaml --
//	filenames: [license.md, notice]
//	exclude: [internal-fork]
type Config struct {
	// Filenames are recognized in addition to DefaultFilenames.
	Filenames []string `yaml:"filenames"`
	// Exclude lists libraries that are left out of the report.
	Exclude []string `yaml:"exclude"`
}

// ScanOptions returns options for [Scan] derived from c.
func (c *Config) ScanOptions() ScanOptions {
	return ScanOptions{Filenames: c.Filenames, Exclude: c.Exclude}
}

// LoadConfig reads the configuration from the txtar archive at path. A missing
// archive or member yields an empty Config.
func LoadConfig(path string) (*Config, error) {
	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return new(Config), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseConfig(ar)
}

// ParseConfig extracts the configuration from ar.
func ParseConfig(ar *txtar.Archive) (*Config, error) {
	cfg := new(Config)
	for _, f := range ar.Files {
		if f.Name != configEntry {
			continue
		}
		if err := yaml.Unmarshal(f.Data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configEntry, err)
		}
	}
	return cfg, nil
}
