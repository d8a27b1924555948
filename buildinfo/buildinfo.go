// Package buildinfo summarizes how a binary was built, from the metadata the
// Go toolchain embeds at link time.
package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type Info struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (i Info) String() string {
	mod := ""
	if i.Modified {
		mod = " The working tree was dirty at build time."
	}

	return fmt.Sprintf("%s built with %s from commit %s (%s).%s", i.Package, i.GoVersion, i.Commit, i.CommitTime, mod)
}

// Get reads the embedded build metadata. Binaries built outside a module or
// VCS checkout yield a mostly empty Info.
func Get() Info {
	out := Info{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Package = bi.Path
	out.GoVersion = bi.GoVersion

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// PrintToStdErr writes the build summary to stderr, keeping stdout clean for
// data output.
func PrintToStdErr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
