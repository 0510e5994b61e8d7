package token

import (
	"ldc/internal/source"
)

// Token is a single classified source token with its byte range.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwStruct, KwEnum, KwTrait, KwLet, KwPub, KwSelf, KwStatic,
		KwWhile, KwIf, KwElse, KwReturn:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether the token names a primitive type.
func (t Token) IsPrimitive() bool {
	return t.Kind >= TyChar && t.Kind <= TyF128
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token is the given operator spelling.
func (t Token) IsOperator(text string) bool {
	return t.Kind == Operator && t.Text == text
}
