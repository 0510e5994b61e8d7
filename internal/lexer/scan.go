package lexer

import (
	"unicode/utf8"

	"ldc/internal/diag"
	"ldc/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	kind := token.LookupIdent(text)
	if kind != token.Ident {
		return token.Token{Kind: kind, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanNumber handles decimal integers and floats: [0-9][0-9_]*
// (optionally .[0-9_]+ and an [eE][+-]? exponent).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		next2 := lx.cursor.PeekAt(2)
		if isDec(next) || ((next == '+' || next == '-') && isDec(next2)) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	// a number running straight into an identifier is malformed: 12ab
	if isIdentStart(lx.cursor.Peek()) {
		for isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "malformed numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanChar scans 'x' with the usual backslash escapes.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	var value rune
	switch {
	case lx.cursor.EOF() || lx.cursor.Peek() == '\n':
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp}
	case lx.cursor.Peek() == '\\':
		lx.cursor.Bump()
		value = lx.scanEscape()
	default:
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		value = r
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() != '\'' {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	lx.cursor.Bump() // closing quote

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: string(value)}
}

// scanString scans "..." with escapes. The token text is the decoded value.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	var out []byte
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(out)}
		}
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
			out = utf8.AppendRune(out, lx.scanEscape())
			continue
		}
		out = append(out, lx.cursor.Bump())
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(out)}
}

// scanEscape consumes the character after a backslash.
func (lx *Lexer) scanEscape() rune {
	mark := lx.cursor.Mark()
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '\'', '"':
		return rune(b)
	default:
		lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(mark-1), "unknown escape sequence")
		return rune(b)
	}
}

// operators ordered longest first for greedy matching
var operators = []string{
	">>>", "..=", "..<",
	"<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "??", "..", "->",
	"+", "-", "*", "/", "%", "<", ">", "=", "!", "&", "|", "^", "~", ".", "?", ":",
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	var punct token.Kind
	switch ch {
	case '(':
		punct = token.LParen
	case ')':
		punct = token.RParen
	case '{':
		punct = token.LBrace
	case '}':
		punct = token.RBrace
	case '[':
		punct = token.LBracket
	case ']':
		punct = token.RBracket
	case ',':
		punct = token.Comma
	case ';':
		punct = token.Semicolon
	}
	if punct != token.Invalid {
		lx.cursor.Bump()
		return token.Token{Kind: punct, Span: lx.cursor.SpanFrom(start)}
	}

	rest := lx.file.Content[lx.cursor.Off:]
	for _, op := range operators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			for range op {
				lx.cursor.Bump()
			}
			return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start), Text: op}
		}
	}

	// nothing matched: consume one rune and report
	r, size := utf8.DecodeRune(rest)
	for i := 0; i < size; i++ {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, "unknown character "+string(r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(r)}
}
