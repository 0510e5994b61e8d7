package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ldc/internal/diag"
	"ldc/internal/source"
)

// Pretty renders diagnostics in human-readable form. Iterates bag.Items()
// (call bag.Sort() beforehand for deterministic order). For each diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~ underline sized to the span
//
// followed by the notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, fs, d, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				start, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "%s:%d:%d: note: %s\n",
					displayPath(fs, note.Span, opts.PathMode), start.Line, start.Col, note.Msg)
				writeContext(w, fs, note.Span, opts)
			}
		}
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
}

// writeContext prints the first source line of the span with a caret
// underline. The underline is sized in display cells, not bytes, so wide
// runes stay aligned.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	file := fs.Get(sp.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" && sp.Len() == 0 {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	prefixCols := displayWidth(line, int(start.Col)-1)
	spanLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		spanCols := displayWidth(line[min(int(start.Col)-1, len(line)):], int(end.Col-start.Col))
		if spanCols > 0 {
			spanLen = spanCols
		}
	}

	underline := "^" + strings.Repeat("~", spanLen-1)
	if opts.Color {
		underline = severityColor(diag.SevError).Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefixCols), underline)
}

// displayWidth measures the display cells of the first n bytes of s.
func displayWidth(s string, n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(s) {
		n = len(s)
	}
	return runewidth.StringWidth(s[:n])
}

func displayPath(fs *source.FileSet, sp source.Span, mode PathMode) string {
	file := fs.Get(sp.File)
	if file == nil {
		return "<unknown>"
	}
	if mode == PathModeBasename {
		return filepath.Base(file.Path)
	}
	return file.Path
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
