// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Genlicenses collects the licenses of bundled third-party libraries into a
single HTML page shown by the app.

Usage:

	genlicenses [flags] <project_dir>

Every directory under <project_dir>/libs is a library, except hidden ones.
The first file in a library directory named COPYING, COPYING.txt, LICENSE or
LICENSE.txt (in any case) is its license. Libraries without a license are
reported with a warning and left out.

The report is written to <project_dir>/assets/html/third_party_licenses.html,
with libraries sorted by name.

Settings are read from the licenses.yaml member of the project's
.devtools.txtar archive, if present:

  - filenames: additional license file names.
  - exclude: libraries to leave out without a warning.
*/
package main

import (
	_ "embed"

	"go.kegbot.org/buildtools/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
