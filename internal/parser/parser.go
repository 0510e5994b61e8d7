package parser

import (
	"slices"

	"ldc/internal/ast"
	"ldc/internal/diag"
	"ldc/internal/lexer"
	"ldc/internal/source"
	"ldc/internal/token"
	"ldc/internal/types"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	types    *types.Interner
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// ParseFile parses one file into the builder's arenas. Declared type
// annotations are interned into tin while parsing.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	tin *types.Interner,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		types:    tin,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: items until EOF, resyncing on error.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// resyncTop skips ahead to the next plausible item start or semicolon.
func (p *Parser) resyncTop() {
	stop := []token.Kind{
		token.Semicolon, token.KwFn, token.KwStruct, token.KwEnum,
		token.KwTrait, token.KwPub, token.KwStatic,
	}
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// parseIdent expects an identifier and interns its spelling.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+p.lx.Peek().Kind.String())
	return source.NoStringID, p.getDiagnosticSpan(), false
}
