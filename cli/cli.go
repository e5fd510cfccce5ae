// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package cli runs single-command build tools. It parses flags and required
// positional arguments, sets up logging and reports errors.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"go.kegbot.org/buildtools/logger"
	"go.kegbot.org/buildtools/syncx"
	"go.kegbot.org/buildtools/version"
)

// Main runs an application, handling signal-based cancellation and printing errors
// to stderr. It is intended to be called directly from a program's main function.
func Main(app App) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := Run(ctx, app)

	if err == nil || errors.Is(err, ErrExitVersion) {
		return
	}

	if isPrintableError(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

type unprintableError struct{ err error }

func (e *unprintableError) Error() string { return e.err.Error() }
func (e *unprintableError) Unwrap() error { return e.err }

func isPrintableError(err error) bool {
	if errors.Is(err, flag.ErrHelp) {
		return false
	}
	var ue *unprintableError
	return !errors.As(err, &ue)
}

// ErrExitVersion signals that the application should exit successfully after
// printing the version information.
var ErrExitVersion = &unprintableError{errors.New("version flag exit")}

// ErrInvalidArgs indicates that the user provided invalid command-line
// arguments. It should be wrapped with more specific context about the error.
//
// [Run] prints the usage message to stderr when an app returns an error
// wrapping ErrInvalidArgs.
var ErrInvalidArgs = errors.New("invalid arguments")

// App represents a runnable command-line application.
type App interface {
	// Run executes the application's primary logic.
	Run(context.Context) error
}

// HasFlags is an App that can define its own command-line flags.
type HasFlags interface {
	App

	// Flags registers flags with the given FlagSet.
	Flags(*flag.FlagSet)
}

// HasArgs is an App that requires positional arguments.
type HasArgs interface {
	App

	// ArgNames returns the names of the required positional arguments in
	// order, such as "project_dir". They appear in the usage line.
	ArgNames() []string
}

type ctxKey int

var envKey ctxKey

// GetEnv retrieves the application's environment from a context.
// If the context has no environment, it returns one based on the current OS.
func GetEnv(ctx context.Context) *Env {
	e, ok := ctx.Value(envKey).(*Env)
	if !ok {
		return OSEnv()
	}
	return e
}

// WithEnv returns a new context that carries the provided application environment.
func WithEnv(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// Env encapsulates the application's environment, including arguments,
// standard I/O streams, and environment variables.
type Env struct {
	Args   []string
	Getenv func(string) string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logf syncx.Lazy[logger.Logf]
}

// Logf prints a formatted message to the environment's standard error.
func (e *Env) Logf(format string, args ...any) {
	e.logf.Get(func() logger.Logf {
		return log.New(e.Stderr, "", 0).Printf
	})(format, args...)
}

// OSEnv creates an Env based on the current operating system environment.
func OSEnv() *Env {
	return &Env{
		Args:   os.Args[1:],
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes an application. It parses flags, handles the standard -version
// and -v flags, checks that required positional arguments are present and
// then runs the app.
//
// With -v, debug messages logged through the [logger] package are written to
// stderr.
func Run(ctx context.Context, app App) error {
	env := GetEnv(ctx)
	name := version.CmdName()

	var argNames []string
	if aa, ok := app.(HasArgs); ok {
		argNames = aa.ArgNames()
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	if fa, ok := app.(HasFlags); ok {
		fa.Flags(flags)
	}
	var showVersion, verbose bool
	if flags.Lookup("version") == nil {
		flags.BoolVar(&showVersion, "version", false, "Show version.")
	}
	if flags.Lookup("v") == nil {
		flags.BoolVar(&verbose, "v", false, "Log debug messages to stderr.")
	}

	flags.Usage = usage(name, argNames, flags, env.Stderr)
	flags.SetOutput(env.Stderr)
	if err := flags.Parse(env.Args); err != nil {
		// Already printed to stderr by flag package, so mark as an unprintable error.
		return &unprintableError{err}
	}

	if showVersion {
		fmt.Fprint(env.Stderr, version.Version())
		return ErrExitVersion
	}

	env.Args = flags.Args()
	if n := len(env.Args); n < len(argNames) {
		flags.Usage()
		return fmt.Errorf("%w: missing %s", ErrInvalidArgs, argNames[n])
	}

	if verbose {
		l := logger.NewConsole(env.Stderr, nil)
		l.Level.Set(slog.LevelDebug)
		ctx = logger.Put(ctx, l)
	}

	err := app.Run(WithEnv(ctx, env))
	if errors.Is(err, ErrInvalidArgs) {
		flags.Usage()
	}
	return err
}

func usage(name string, argNames []string, flags *flag.FlagSet, stderr io.Writer) func() {
	return func() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Usage: %s [flags]", name)
		for _, arg := range argNames {
			fmt.Fprintf(&sb, " <%s>", arg)
		}
		fmt.Fprintf(stderr, "%s\n\n", sb.String())
		if docSrc != nil {
			fmt.Fprintf(stderr, "%s\n", parseDocComment(docSrc))
		}
		fmt.Fprint(stderr, "Available flags:\n\n")
		flags.PrintDefaults()
	}
}

var docSrc []byte

// SetDocComment sets the main documentation for the application, which is
// displayed in the usage message. It is intended to be used with Go's
// //go:embed directive.
//
// Example:
//
//	//go:embed doc.go
//	var doc []byte
//
//	func init() { cli.SetDocComment(doc) }
func SetDocComment(src []byte) { docSrc = src }

// parseDocComment returns the lines of the first /* */ block in src.
func parseDocComment(src []byte) string {
	s := bufio.NewScanner(bytes.NewReader(src))
	var (
		sb        strings.Builder
		inComment bool
	)
	for s.Scan() {
		switch line := s.Text(); {
		case line == "/*":
			inComment = true
		case line == "*/":
			return sb.String()
		case inComment:
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
