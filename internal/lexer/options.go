package lexer

import (
	"ldc/internal/diag"
	"ldc/internal/source"
)

// Options configure a lexer instance. A nil Reporter drops lexical
// diagnostics but scanning still continues.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
