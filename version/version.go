// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports build information embedded into the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"go.kegbot.org/buildtools/syncx"
)

// Info describes a build of the running binary.
type Info struct {
	// Name is the command name, as returned by CmdName.
	Name string
	// Commit is the VCS revision the binary was built from, or "devel".
	Commit string
	// Modified reports whether the working tree had uncommitted changes.
	Modified bool
	// Time is the commit time, if known.
	Time time.Time
	// Go is the Go toolchain version.
	Go string
	// OS and Arch are the target platform.
	OS, Arch string
}

// String returns a human-readable, newline-terminated version string.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s", i.Name, i.Commit)
	if i.Modified {
		sb.WriteString(", modified")
	}
	if !i.Time.IsZero() {
		fmt.Fprintf(&sb, ", committed %s", i.Time.Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, ", built with %s for %s/%s)\n", i.Go, i.OS, i.Arch)
	return sb.String()
}

// Short returns the first 12 characters of the commit.
func (i Info) Short() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

var info syncx.Lazy[Info]

// Version returns build information for the running binary.
func Version() Info {
	return info.Get(func() Info {
		i := Info{
			Name:   CmdName(),
			Commit: "devel",
			Go:     runtime.Version(),
			OS:     runtime.GOOS,
			Arch:   runtime.GOARCH,
		}
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return i
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				i.Commit = s.Value
			case "vcs.modified":
				i.Modified = s.Value == "true"
			case "vcs.time":
				i.Time, _ = time.Parse(time.RFC3339, s.Value)
			}
		}
		return i
	})
}

// CmdName returns the base name of the running executable.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}
	return strings.TrimSuffix(filepath.Base(exe), ".exe")
}
