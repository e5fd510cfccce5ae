// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"go.kegbot.org/buildtools/buildstamp"
	"go.kegbot.org/buildtools/cli"
	"go.kegbot.org/buildtools/logger"
)

func main() { cli.Main(&app{now: time.Now}) }

type app struct {
	utc bool

	now func() time.Time
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.utc, "utc", false, "Stamp the time in UTC instead of the local time zone.")
}

func (a *app) ArgNames() []string { return []string{"output_dir"} }

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	now := time.Now
	if a.now != nil {
		now = a.now
	}
	t := now()
	if a.utc {
		t = t.UTC()
	}

	path, err := buildstamp.Write(env.Args[0], t)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "wrote build stamp",
		slog.String("path", path),
		slog.String(buildstamp.BuildDateKey, buildstamp.FormatTimestamp(t)),
	)
	return nil
}
