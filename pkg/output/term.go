package output

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ColorEnabled reports whether stdout is a terminal that can take
// colored output
func ColorEnabled() bool {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Configure adjusts global terminal output for the current
// environment. Call once, before rendering anything.
func Configure() {
	if !ColorEnabled() {
		pterm.DisableColor()
	}
}
