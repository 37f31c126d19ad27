package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version identifies the build. It is overridden at link time via
// -ldflags "-X github.com/agbru/harmcalc/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the argument list asks for version output.
// The check runs before flag parsing so --version works regardless of the
// other arguments on the line.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the program identification line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "harmcalc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
