package parser

import (
	"ldc/internal/diag"
	"ldc/internal/token"
	"ldc/internal/types"
)

// parseType parses a type annotation and interns it.
//
//	type = primitive | path | "(" type ("," type)* ")" | "[" type "]"
//	     | "fn" "(" type ("," type)* ")" ["->" type]
func (p *Parser) parseType() (types.TypeID, bool) {
	peek := p.lx.Peek()
	switch {
	case peek.IsPrimitive():
		p.advance()
		return p.primitiveType(peek.Kind), true
	case peek.Kind == token.Ident:
		return p.parsePathType()
	case peek.Kind == token.LParen:
		return p.parseTupleType()
	case peek.Kind == token.LBracket:
		return p.parseArrayType()
	case peek.Kind == token.KwFn:
		return p.parseFnType()
	default:
		p.err(diag.SynExpectType, "expected type, got "+peek.Kind.String())
		return types.NoTypeID, false
	}
}

// parsePathType parses a dotted named-type path: Ident ("." Ident)*.
func (p *Parser) parsePathType() (types.TypeID, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type path")
		return types.NoTypeID, false
	}
	segments := []string{p.advance().Text}
	for p.lx.Peek().IsOperator(".") {
		p.advance()
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after '.' in type path")
		if !ok {
			return types.NoTypeID, false
		}
		segments = append(segments, tok.Text)
	}
	return p.types.Named(segments), true
}

// parseTupleType parses "(" ... ")". A single element without a trailing
// comma is grouping, not a one-element tuple.
func (p *Parser) parseTupleType() (types.TypeID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectType, "expected '('"); !ok {
		return types.NoTypeID, false
	}
	var elems []types.TypeID
	trailingComma := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty, ok := p.parseType()
		if !ok {
			return types.NoTypeID, false
		}
		elems = append(elems, ty)
		trailingComma = false
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		trailingComma = true
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in tuple type"); !ok {
		return types.NoTypeID, false
	}
	if len(elems) == 1 && !trailingComma {
		return elems[0], true
	}
	return p.types.Tuple(elems), true
}

// parseArrayType parses "[" type "]".
func (p *Parser) parseArrayType() (types.TypeID, bool) {
	if _, ok := p.expect(token.LBracket, diag.SynExpectType, "expected '['"); !ok {
		return types.NoTypeID, false
	}
	elem, ok := p.parseType()
	if !ok {
		return types.NoTypeID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"); !ok {
		return types.NoTypeID, false
	}
	return p.types.Array(elem), true
}

// parseFnType parses "fn" "(" params ")" ["->" type]. An omitted result is
// unit.
func (p *Parser) parseFnType() (types.TypeID, bool) {
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn'"); !ok {
		return types.NoTypeID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectType, "expected '(' in function type"); !ok {
		return types.NoTypeID, false
	}
	var params []types.TypeID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ty, ok := p.parseType()
		if !ok {
			return types.NoTypeID, false
		}
		params = append(params, ty)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in function type"); !ok {
		return types.NoTypeID, false
	}
	result := p.types.Builtins().Unit
	if p.lx.Peek().IsOperator("->") {
		p.advance()
		var ok bool
		result, ok = p.parseType()
		if !ok {
			return types.NoTypeID, false
		}
	}
	return p.types.Fn(params, result), true
}

func (p *Parser) primitiveType(k token.Kind) types.TypeID {
	b := p.types.Builtins()
	switch k {
	case token.TyChar:
		return b.Char
	case token.TyI8:
		return b.I8
	case token.TyI16:
		return b.I16
	case token.TyI32:
		return b.I32
	case token.TyI64:
		return b.I64
	case token.TyI128:
		return b.I128
	case token.TyU8:
		return b.U8
	case token.TyU16:
		return b.U16
	case token.TyU32:
		return b.U32
	case token.TyU64:
		return b.U64
	case token.TyU128:
		return b.U128
	case token.TyF16:
		return b.F16
	case token.TyF32:
		return b.F32
	case token.TyF64:
		return b.F64
	case token.TyF128:
		return b.F128
	default:
		return types.NoTypeID
	}
}
