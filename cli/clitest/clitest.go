// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides utilities for testing command-line applications.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.kegbot.org/buildtools/cli"
)

// Case describes a single test case for a [cli.App].
type Case[T cli.App] struct {
	// Args are the command-line arguments passed to the app.
	Args []string
	// Stdin is an optional reader used as the app's standard input.
	Stdin io.Reader
	// Env contains environment variables visible through [cli.Env.Getenv].
	Env map[string]string

	// WantErr, if set, is an error the returned error must wrap.
	WantErr error
	// WantErrType, if set, is an error whose type the returned error must
	// match with errors.As.
	WantErrType error
	// WantNothingPrinted requires both stdout and stderr to be empty.
	WantNothingPrinted bool
	// WantInStdout is a string that must be present in stdout.
	WantInStdout string
	// WantInStderr is a string that must be present in stderr.
	WantInStderr string
	// CheckFunc is an optional function called with the app after it has run.
	CheckFunc func(*testing.T, T)
}

// Run runs each case as a subtest. The setup function returns a fresh app for
// every case.
func Run[T cli.App](t *testing.T, setup func(*testing.T) T, cases map[string]Case[T]) {
	t.Helper()

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Stdin:  tc.Stdin,
				Stdout: &stdout,
				Stderr: &stderr,
				Getenv: func(key string) string { return tc.Env[key] },
			}
			if env.Stdin == nil {
				env.Stdin = strings.NewReader("")
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType)

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 || stderr.Len() > 0 {
					t.Errorf("want nothing printed, got stdout %q and stderr %q", stdout.String(), stderr.String())
				}
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err, want, wantType error) {
	t.Helper()

	switch {
	case want != nil:
		if !errors.Is(err, want) {
			t.Fatalf("want error %v, got %v", want, err)
		}
	case wantType != nil:
		target := reflect.New(reflect.TypeOf(wantType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("want error of type %T, got %v", wantType, err)
		}
	case err != nil:
		t.Fatalf("unexpected error: %v", err)
	}
}
