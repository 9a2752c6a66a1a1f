// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnTag = color.New(color.FgYellow).Sprint("WARN:")
	errTag  = color.New(color.FgRed).Sprint("error:")
)

// Warnf prints a warning unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, warnTag+" "+format+"\n", a...)
}

// Errorf prints a fatal-error line.
func Errorf(dst io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, errTag+" "+format+"\n", a...)
}
