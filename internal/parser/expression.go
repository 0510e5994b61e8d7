package parser

import (
	"strconv"
	"strings"

	"ldc/internal/ast"
	"ldc/internal/diag"
	"ldc/internal/token"
	"ldc/internal/types"
)

// parseExpr is the expression entry point. Assignment sits above the
// precedence table and is the only right-associative operator.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	lhs, ok := p.parsePratt(1)
	if !ok {
		return ast.NoExprID, false
	}
	if p.lx.Peek().IsOperator("=") {
		p.advance()
		rhs, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
		return p.arenas.NewBinary(span, ast.BinaryExpr{Op: "=", Left: lhs, Right: rhs}), true
	}
	return lhs, true
}

// parsePratt implements precedence climbing over the fixed operator table.
// Calls and member access are folded into the loop as the tightest postfix
// forms.
func (p *Parser) parsePratt(minPrec uint8) (ast.ExprID, bool) {
	lhs, ok := p.parsePrefix()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		// postfix call binds tighter than any infix operator
		if p.at(token.LParen) {
			lhs, ok = p.parseCall(lhs)
			if !ok {
				return ast.NoExprID, false
			}
			continue
		}

		peek := p.lx.Peek()
		prec := peek.InfixPrecedence()
		if prec == 0 || prec < minPrec {
			return lhs, true
		}

		if peek.IsOperator(".") {
			p.advance()
			name, _, ok := p.parseIdent()
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(lhs).Span.Cover(p.lastSpan)
			lhs = p.arenas.NewMember(span, ast.MemberExpr{Object: lhs, Name: name})
			continue
		}

		op := p.advance()
		rhs, ok := p.parsePratt(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
		lhs = p.arenas.NewBinary(span, ast.BinaryExpr{Op: op.Text, Left: lhs, Right: rhs})
	}
}

func (p *Parser) parsePrefix() (ast.ExprID, bool) {
	peek := p.lx.Peek()
	if peek.PrefixPrecedence() > 0 {
		op := p.advance()
		operand, ok := p.parsePrefix()
		if !ok {
			return ast.NoExprID, false
		}
		span := op.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.NewUnary(span, ast.UnaryExpr{Op: op.Text, Operand: operand}), true
	}
	return p.parsePrimary()
}

// parseCall parses the argument list after the callee.
func (p *Parser) parseCall(callee ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after arguments"); !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(callee).Span.Cover(p.lastSpan)
	return p.arenas.NewCall(span, ast.CallExpr{Callee: callee, Args: args}), true
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	peek := p.lx.Peek()
	switch peek.Kind {
	case token.IntLit:
		tok := p.advance()
		value, err := strconv.ParseUint(strings.ReplaceAll(tok.Text, "_", ""), 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
			return ast.NoExprID, false
		}
		return p.arenas.NewIntLit(tok.Span, value, tok.Text), true
	case token.FloatLit:
		tok := p.advance()
		value, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "float literal out of range")
			return ast.NoExprID, false
		}
		return p.arenas.NewFloatLit(tok.Span, value, tok.Text), true
	case token.CharLit:
		tok := p.advance()
		var value rune
		for _, r := range tok.Text {
			value = r
			break
		}
		return p.arenas.NewCharLit(tok.Span, value), true
	case token.StringLit:
		tok := p.advance()
		return p.arenas.NewStringLit(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.Ident:
		tok := p.advance()
		switch tok.Text {
		case "true":
			return p.arenas.NewBoolLit(tok.Span, true), true
		case "false":
			return p.arenas.NewBoolLit(tok.Span, false), true
		}
		return p.arenas.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.KwSelf:
		tok := p.advance()
		return p.arenas.NewIdent(tok.Span, p.arenas.StringsInterner.Intern("self")), true
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwLet:
		return p.parseLet()
	case token.KwFn:
		return p.parseClosure()
	default:
		p.err(diag.SynUnexpectedToken, "expected expression, got "+peek.Kind.String())
		return ast.NoExprID, false
	}
}

// parseParenExpr: grouping or a tuple literal. A single element without a
// trailing comma is grouping.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance() // '('
	var elems []ast.ExprID
	trailingComma := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
		trailingComma = false
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		trailingComma = true
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	if len(elems) == 1 && !trailingComma {
		return elems[0], true
	}
	return p.arenas.NewTupleLit(open.Span.Cover(p.lastSpan), elems), true
}

func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	open := p.advance() // '['
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.NewArrayLit(open.Span.Cover(p.lastSpan), elems), true
}

// parseBlock: { expr; ... [expr] }. A trailing expression without a
// semicolon gives the block a value.
func (p *Parser) parseBlock() (ast.ExprID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return ast.NoExprID, false
	}

	var exprs []ast.ExprID
	hasValue := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, e)
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.at(token.RBrace) {
			hasValue = true
			break
		}
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.NewBlock(open.Span.Cover(p.lastSpan), ast.BlockExpr{
		Exprs:    exprs,
		HasValue: hasValue,
	}), true
}

// parseIf: if cond block [else (if ... | block)]
func (p *Parser) parseIf() (ast.ExprID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	cons, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	alt := ast.NoExprID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			alt, ok = p.parseIf()
		} else {
			alt, ok = p.parseBlock()
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.NewIf(ifTok.Span.Cover(p.lastSpan), ast.IfExpr{
		Cond: cond,
		Cons: cons,
		Alt:  alt,
	}), true
}

// parseWhile: while cond block
func (p *Parser) parseWhile() (ast.ExprID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.NewWhile(whileTok.Span.Cover(p.lastSpan), ast.WhileExpr{
		Cond: cond,
		Body: body,
	}), true
}

// parseReturn: return [expr]. The value is absent when the next token ends
// the statement.
func (p *Parser) parseReturn() (ast.ExprID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.NewReturn(retTok.Span.Cover(p.lastSpan), value), true
}

// parseLet: let name [: type] = expr
func (p *Parser) parseLet() (ast.ExprID, bool) {
	letTok := p.advance()
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	ty := types.NoTypeID
	if p.lx.Peek().IsOperator(":") {
		p.advance()
		ty, ok = p.parseType()
		if !ok {
			return ast.NoExprID, false
		}
	}
	if !p.expectOperator("=", diag.SynUnexpectedToken, "expected '=' in let binding") {
		return ast.NoExprID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.NewLet(letTok.Span.Cover(p.lastSpan), ast.LetExpr{
		Name:  name,
		Type:  ty,
		Value: value,
	}), true
}

// parseClosure: fn ( params ) [-> type] expr in expression position.
func (p *Parser) parseClosure() (ast.ExprID, bool) {
	fnTok := p.advance()
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoExprID, false
	}
	result := types.NoTypeID
	if p.lx.Peek().IsOperator("->") {
		p.advance()
		result, ok = p.parseType()
		if !ok {
			return ast.NoExprID, false
		}
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.NewClosure(fnTok.Span.Cover(p.lastSpan), ast.ClosureExpr{
		Params: params,
		Result: result,
		Body:   body,
	}), true
}
