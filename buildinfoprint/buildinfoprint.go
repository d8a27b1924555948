// Package buildinfoprint is imported for the side effect of printing build
// metadata to stderr at startup.
package buildinfoprint

import "github.com/spectrakit/spectrakit/buildinfo"

func init() {
	buildinfo.PrintToStdErr()
}
