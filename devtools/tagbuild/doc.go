// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Tagbuild records the build date in an Android string resource.

Usage:

	tagbuild [flags] <output_dir>

It replaces <output_dir>/res/values/build_strings.xml with a resources
document holding a single build_date string, the current local time. The
res/values directory must already exist.
*/
package main

import (
	_ "embed"

	"go.kegbot.org/buildtools/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
