// Package diaglog formats compile errors for the CLI: one line per
// error, "file:line:col: kind: message", colorizing the kind token only
// when stderr is a terminal.
package diaglog

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alantech/irgen/internal/errors"
)

const (
	colorReset = "\033[0m"
	colorRed = "\033[31m"
	colorYellow = "\033[33m"
)

// colorEnabled gates ANSI color on the destination: NO_COLOR always
// wins, then isatty on the destination descriptor.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Line formats one compile error as "file:line:col: kind: message".
func Line(w io.Writer, file string, err *errors.CompileError) string {
	kind := string(err.ErrKind)
	pos := err.Position
	label := kind
	if colorEnabled(w) {
		label = colorRed + kind + colorReset
	}
	if pos.IsZero() {
		return fmt.Sprintf("%s: %s: %s", file, label, err.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, pos.Line, pos.Col, label, err.Message)
}

// Report writes one formatted line per error to w.
func Report(w io.Writer, file string, errs []*errors.CompileError) {
	for _, e := range errs {
		fmt.Fprintln(w, Line(w, file, e))
	}
}

// Warn writes a single non-fatal warning line, colorized yellow.
func Warn(w io.Writer, file, message string) {
	label := "warning"
	if colorEnabled(w) {
		label = colorYellow + label + colorReset
	}
	fmt.Fprintf(w, "%s: %s: %s\n", file, label, message)
}
