// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.kegbot.org/buildtools/cli"
	"go.kegbot.org/buildtools/licenses"
	"go.kegbot.org/buildtools/logger"
	"go.kegbot.org/buildtools/version"
)

func main() { cli.Main(new(app)) }

type app struct {
	config      string
	concurrency int
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.config, "config", licenses.ConfigFile, "Read settings from txtar `archive`, relative to the project directory.")
	fs.IntVar(&a.concurrency, "j", 0, "Scan at most `n` libraries at once. Zero means one per CPU.")
}

func (a *app) ArgNames() []string { return []string{"project_dir"} }

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	projectDir := env.Args[0]

	logger.Debug(ctx, "generating license report",
		slog.String("project", projectDir),
		slog.String("version", version.Version().Short()),
	)

	cfgPath := a.config
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(projectDir, cfgPath)
	}
	cfg, err := licenses.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfgPath, err)
	}

	opts := licenses.Options{
		ScanOptions: cfg.ScanOptions(),
		OnMissing: func(name string) {
			env.Logf("Warning: no license file found for %s", name)
		},
	}
	opts.Concurrency = a.concurrency

	if _, err := licenses.Generate(ctx, projectDir, opts); err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, "Generated third party license HTML:", licenses.OutputFilename)
	return nil
}
