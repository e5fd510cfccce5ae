// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package buildstamp writes the build date into an Android string resource
// file.
package buildstamp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.kegbot.org/buildtools/internal/atomicfile"
)

// ResourcePath is the location of the resource file relative to the output
// root.
const ResourcePath = "res/values/build_strings.xml"

// BuildDateKey is the name of the string resource holding the build date.
const BuildDateKey = "build_date"

// header is the XML declaration used by Android resource files. xml.Header
// spells the encoding in upper case.
const header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Stamp is the content of the resource file.
type Stamp struct {
	BuildDate string
}

// New returns a Stamp for a build at t.
func New(t time.Time) Stamp {
	return Stamp{BuildDate: FormatTimestamp(t)}
}

// FormatTimestamp formats t as "2006-01-02 15:04:05.000000" in t's location.
// The fractional part is omitted when t has no microseconds.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(time.DateTime)
	}
	return t.Format("2006-01-02 15:04:05.000000")
}

type resources struct {
	XMLName xml.Name         `xml:"resources"`
	Strings []stringResource `xml:"string"`
}

type stringResource struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Marshal encodes s as an Android string resources document.
func Marshal(s Stamp) ([]byte, error) {
	doc := resources{
		Strings: []stringResource{{Name: BuildDateKey, Value: s.BuildDate}},
	}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.Write(b)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write replaces res/values/build_strings.xml under root with a stamp for a
// build at now and returns the path of the file.
//
// Unlike the license report, the res/values directory is not created: it is
// part of the Android project layout and must already exist.
func Write(root string, now time.Time) (string, error) {
	b, err := Marshal(New(now))
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, filepath.FromSlash(ResourcePath))
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("resource directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
