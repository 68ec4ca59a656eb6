package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var colorProgram = color.New(color.FgRed, color.Bold)

// Diagnostics writes human readable messages about the pipeline, one per
// line, prefixed with the program name.
type Diagnostics struct {
	W io.Writer
}

// Printf writes a single diagnostic line.
func (d *Diagnostics) Printf(format string, a ...interface{}) {
	if d == nil || d.W == nil {
		return
	}
	fmt.Fprintf(d.W, "%s %s\n", colorProgram.Sprint("digenv:"), fmt.Sprintf(format, a...))
}
