// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"go.kegbot.org/buildtools/internal/atomicfile"
	"go.kegbot.org/buildtools/logger"
)

const (
	// OutputDir is the directory, relative to the project root, where the
	// report is written.
	OutputDir = "assets/html"
	// OutputFilename is the file name of the report.
	OutputFilename = "third_party_licenses.html"
)

// Render writes the HTML report for libs to w. Library names and license
// texts are escaped.
func Render(ctx context.Context, w io.Writer, libs []Library) error {
	return reportPage(libs).Render(ctx, w)
}

// preText returns s prepared for a <pre> element. HTML parsers drop a single
// line break right after <pre>, so one is added when s starts with a line
// break of its own.
func preText(s string) string {
	if strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r") {
		return "\n" + s
	}
	return s
}

// Write renders the report for libs and atomically replaces
// assets/html/third_party_licenses.html under projectDir, creating the
// directory if needed. It returns the path of the report and its size.
func Write(ctx context.Context, projectDir string, libs []Library) (path string, size int, err error) {
	dir := filepath.Join(projectDir, filepath.FromSlash(OutputDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err := Render(ctx, &buf, libs); err != nil {
		return "", 0, fmt.Errorf("rendering report: %w", err)
	}

	path = filepath.Join(dir, OutputFilename)
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", 0, err
	}
	logger.Debug(ctx, "wrote report",
		slog.String("path", path),
		slog.Int("libraries", len(libs)),
		slog.String("size", humanize.Bytes(uint64(buf.Len()))),
	)
	return path, buf.Len(), nil
}

// Options configure [Generate].
type Options struct {
	ScanOptions
	// OnMissing, if set, is called for each library without a license file,
	// in name order, before the report is written.
	OnMissing func(name string)
}

// Report describes a generated license report.
type Report struct {
	// Path is the location of the written HTML file.
	Path string
	// Size is the length of the HTML file in bytes.
	Size int
	// Libraries are the reported libraries, sorted by name.
	Libraries []Library
	// Missing names the libraries left out for lack of a license file.
	Missing []string
}

// Generate scans the libraries of the project at projectDir and writes the
// license report. An empty projectDir means the current directory.
func Generate(ctx context.Context, projectDir string, opts Options) (*Report, error) {
	if projectDir == "" {
		projectDir = "."
	}
	fsys := os.DirFS(projectDir)

	res, err := Scan(ctx, fsys, opts.ScanOptions)
	if err != nil {
		return nil, err
	}
	if opts.OnMissing != nil {
		for _, name := range res.Missing {
			opts.OnMissing(name)
		}
	}

	if err := Load(fsys, res.Libraries); err != nil {
		return nil, err
	}

	path, size, err := Write(ctx, projectDir, res.Libraries)
	if err != nil {
		return nil, err
	}
	return &Report{
		Path:      path,
		Size:      size,
		Libraries: res.Libraries,
		Missing:   res.Missing,
	}, nil
}
