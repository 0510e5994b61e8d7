package parser

import (
	"ldc/internal/ast"
	"ldc/internal/diag"
	"ldc/internal/source"
	"ldc/internal/token"
	"ldc/internal/types"
)

type itemModifiers struct {
	pub     bool
	static  bool
	span    source.Span
	hasSpan bool
}

// parseItem dispatches a top-level or struct-member declaration by its first
// token after an optional modifier prefix.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	mods := p.parseModifiers()
	switch p.lx.Peek().Kind {
	case token.KwFn:
		return p.parseFnItem(mods)
	case token.KwStruct:
		return p.parseStructItem(mods)
	case token.KwEnum:
		return p.parseEnumItem(mods)
	case token.KwTrait:
		return p.parseTraitItem(mods)
	default:
		if mods.hasSpan {
			p.report(diag.SynUnexpectedToken, diag.SevError, mods.span,
				"expected declaration after modifiers")
		} else {
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.getDiagnosticSpan(),
				"unexpected top-level construct")
		}
		return ast.NoItemID, false
	}
}

// parseModifiers consumes the `pub`/`static` prefix in any order.
func (p *Parser) parseModifiers() itemModifiers {
	var mods itemModifiers
	for {
		switch p.lx.Peek().Kind {
		case token.KwPub:
			tok := p.advance()
			if mods.pub {
				p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "duplicate 'pub' modifier")
			}
			mods.pub = true
			p.coverModSpan(&mods, tok.Span)
		case token.KwStatic:
			tok := p.advance()
			if mods.static {
				p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "duplicate 'static' modifier")
			}
			mods.static = true
			p.coverModSpan(&mods, tok.Span)
		default:
			return mods
		}
	}
}

func (p *Parser) coverModSpan(mods *itemModifiers, sp source.Span) {
	if mods.hasSpan {
		mods.span = mods.span.Cover(sp)
	} else {
		mods.span = sp
		mods.hasSpan = true
	}
}

// parseFnItem: fn name ( params ) [-> type] block
func (p *Parser) parseFnItem(mods itemModifiers) (ast.ItemID, bool) {
	fnTok, _ := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn'")
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}

	result := types.NoTypeID
	if p.lx.Peek().IsOperator("->") {
		p.advance()
		result, ok = p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected function body")
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := fnTok.Span.Cover(p.lastSpan)
	if mods.hasSpan {
		span = mods.span.Cover(span)
	}
	id := p.arenas.NewFnItem(ast.Item{
		Span:   span,
		Name:   name,
		Pub:    mods.pub,
		Static: mods.static,
	}, ast.FnItem{
		Params: params,
		Result: result,
		Body:   body,
	})
	return id, true
}

// parseFnParams: ( name: type, ... ) with an optional trailing comma.
func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var name source.StringID
		var nameSpan source.Span
		if p.at(token.KwSelf) {
			tok := p.advance()
			name = p.arenas.StringsInterner.Intern("self")
			nameSpan = tok.Span
		} else {
			var ok bool
			name, nameSpan, ok = p.parseIdent()
			if !ok {
				return nil, false
			}
		}
		if !p.expectOperator(":", diag.SynExpectParameter, "expected ':' after parameter name") {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{
			Name: name,
			Span: nameSpan.Cover(p.lastSpan),
			Type: ty,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}

// parseStructItem: struct Name [: path, path] { items }
func (p *Parser) parseStructItem(mods itemModifiers) (ast.ItemID, bool) {
	structTok, _ := p.expect(token.KwStruct, diag.SynUnexpectedToken, "expected 'struct'")
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	var traits []types.TypeID
	if p.lx.Peek().IsOperator(":") {
		p.advance()
		for {
			ty, ok := p.parsePathType()
			if !ok {
				return ast.NoItemID, false
			}
			traits = append(traits, ty)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	members, ok := p.parseItemBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := structTok.Span.Cover(p.lastSpan)
	if mods.hasSpan {
		span = mods.span.Cover(span)
	}
	id := p.arenas.NewStructItem(ast.Item{
		Span:   span,
		Name:   name,
		Pub:    mods.pub,
		Static: mods.static,
	}, ast.StructItem{
		Traits: traits,
		Items:  members,
	})
	return id, true
}

// parseEnumItem: enum Name { Variant(T, ...), ... }
func (p *Parser) parseEnumItem(mods itemModifiers) (ast.ItemID, bool) {
	enumTok, _ := p.expect(token.KwEnum, diag.SynUnexpectedToken, "expected 'enum'")
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after enum name"); !ok {
		return ast.NoItemID, false
	}

	var variants []ast.EnumVariant
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vname, vspan, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		var payload []types.TypeID
		if p.at(token.LParen) {
			p.advance()
			for !p.at(token.RParen) && !p.at(token.EOF) {
				ty, ok := p.parseType()
				if !ok {
					return ast.NoItemID, false
				}
				payload = append(payload, ty)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after variant payload"); !ok {
				return ast.NoItemID, false
			}
		}
		variants = append(variants, ast.EnumVariant{
			Name:    vname,
			Span:    vspan.Cover(p.lastSpan),
			Payload: payload,
		})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after enum variants"); !ok {
		return ast.NoItemID, false
	}

	span := enumTok.Span.Cover(p.lastSpan)
	if mods.hasSpan {
		span = mods.span.Cover(span)
	}
	id := p.arenas.NewEnumItem(ast.Item{
		Span:   span,
		Name:   name,
		Pub:    mods.pub,
		Static: mods.static,
	}, ast.EnumItem{Variants: variants})
	return id, true
}

// parseTraitItem: trait Name { items }
func (p *Parser) parseTraitItem(mods itemModifiers) (ast.ItemID, bool) {
	traitTok, _ := p.expect(token.KwTrait, diag.SynUnexpectedToken, "expected 'trait'")
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	members, ok := p.parseItemBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := traitTok.Span.Cover(p.lastSpan)
	if mods.hasSpan {
		span = mods.span.Cover(span)
	}
	id := p.arenas.NewTraitItem(ast.Item{
		Span:   span,
		Name:   name,
		Pub:    mods.pub,
		Static: mods.static,
	}, ast.TraitItem{Items: members})
	return id, true
}

// parseItemBlock: { item* } for struct and trait bodies.
func (p *Parser) parseItemBlock() ([]ast.ItemID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'"); !ok {
		return nil, false
	}
	var items []ast.ItemID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		id, ok := p.parseItem()
		if !ok {
			return nil, false
		}
		items = append(items, id)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"); !ok {
		return nil, false
	}
	return items, true
}
