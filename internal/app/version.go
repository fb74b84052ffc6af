package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args request the version. It runs before
// flag parsing so that --version works without any program.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version line followed by build details.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s\n", resolvedVersion())
	fmt.Fprintf(out, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// resolvedVersion prefers the build-time Version and falls back to the
// module version recorded by the Go toolchain.
func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
