package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Any writer with an Fd method is
// checked, so *os.File and its wrappers qualify.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI colors should be written to w.
// FORCE_COLOR wins over everything; NO_COLOR and TERM=dumb disable color;
// otherwise w must be a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if v, ok := os.LookupEnv("FORCE_COLOR"); ok && v != "0" {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

// ConfigureColor enables or disables the color package for reports written
// to w.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
