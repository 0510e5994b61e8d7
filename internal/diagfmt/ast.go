package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ldc/internal/ast"
	"ldc/internal/source"
	"ldc/internal/types"
)

// astPrinter walks a parsed file and renders an indented tree.
type astPrinter struct {
	w       io.Writer
	arenas  *ast.Builder
	types   *types.Interner
	fs      *source.FileSet
	strings *source.Interner
}

// FormatASTPretty prints the item tree of one parsed file, one node per
// line, with source positions.
func FormatASTPretty(w io.Writer, arenas *ast.Builder, tin *types.Interner, fileID ast.FileID, fs *source.FileSet) error {
	p := &astPrinter{
		w:       w,
		arenas:  arenas,
		types:   tin,
		fs:      fs,
		strings: arenas.StringsInterner,
	}
	file := arenas.Files.Get(fileID)
	for _, itemID := range file.Items {
		p.printItem(itemID, 0)
	}
	return nil
}

func (p *astPrinter) name(id source.StringID) string {
	if s, ok := p.strings.Lookup(id); ok {
		return s
	}
	return "<unknown>"
}

func (p *astPrinter) pos(sp source.Span) string {
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}

func (p *astPrinter) typeName(id types.TypeID) string {
	if id == types.NoTypeID {
		return "_"
	}
	return p.types.Format(id)
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) printItem(id ast.ItemID, depth int) {
	item := p.arenas.Items.Get(id)
	mods := ""
	if item.Pub {
		mods += "pub "
	}
	if item.Static {
		mods += "static "
	}

	switch item.Kind {
	case ast.ItemFn:
		fn := p.arenas.Items.Fn(id)
		params := make([]string, 0, len(fn.Params))
		for _, param := range fn.Params {
			params = append(params, fmt.Sprintf("%s: %s", p.name(param.Name), p.typeName(param.Type)))
		}
		p.line(depth, "%sfn %s(%s) -> %s at %s",
			mods, p.name(item.Name), strings.Join(params, ", "), p.typeName(fn.Result), p.pos(item.Span))
		p.printExpr(fn.Body, depth+1)
	case ast.ItemStruct:
		st := p.arenas.Items.Struct(id)
		header := fmt.Sprintf("%sstruct %s", mods, p.name(item.Name))
		if len(st.Traits) > 0 {
			traits := make([]string, 0, len(st.Traits))
			for _, tr := range st.Traits {
				traits = append(traits, p.typeName(tr))
			}
			header += ": " + strings.Join(traits, ", ")
		}
		p.line(depth, "%s at %s", header, p.pos(item.Span))
		for _, member := range st.Items {
			p.printItem(member, depth+1)
		}
	case ast.ItemEnum:
		en := p.arenas.Items.Enum(id)
		p.line(depth, "%senum %s at %s", mods, p.name(item.Name), p.pos(item.Span))
		for _, variant := range en.Variants {
			if len(variant.Payload) == 0 {
				p.line(depth+1, "%s", p.name(variant.Name))
				continue
			}
			p.line(depth+1, "%s(%s)", p.name(variant.Name), p.types.FormatList(variant.Payload))
		}
	case ast.ItemTrait:
		tr := p.arenas.Items.Trait(id)
		p.line(depth, "%strait %s at %s", mods, p.name(item.Name), p.pos(item.Span))
		for _, member := range tr.Items {
			p.printItem(member, depth+1)
		}
	default:
		p.line(depth, "invalid item at %s", p.pos(item.Span))
	}
}

func (p *astPrinter) printExpr(id ast.ExprID, depth int) {
	if id == ast.NoExprID {
		return
	}
	expr := p.arenas.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprBlock:
		block := p.arenas.Block(id)
		suffix := ""
		if block.HasValue {
			suffix = " (value)"
		}
		p.line(depth, "block%s at %s", suffix, p.pos(expr.Span))
		for _, e := range block.Exprs {
			p.printExpr(e, depth+1)
		}
	case ast.ExprCall:
		call := p.arenas.Call(id)
		p.line(depth, "call at %s", p.pos(expr.Span))
		p.printExpr(call.Callee, depth+1)
		for _, arg := range call.Args {
			p.printExpr(arg, depth+1)
		}
	case ast.ExprIdent:
		p.line(depth, "identifier %q at %s", p.name(p.arenas.Ident(id).Name), p.pos(expr.Span))
	case ast.ExprIf:
		ifx := p.arenas.If(id)
		p.line(depth, "if at %s", p.pos(expr.Span))
		p.printExpr(ifx.Cond, depth+1)
		p.printExpr(ifx.Cons, depth+1)
		p.printExpr(ifx.Alt, depth+1)
	case ast.ExprWhile:
		wh := p.arenas.While(id)
		p.line(depth, "while at %s", p.pos(expr.Span))
		p.printExpr(wh.Cond, depth+1)
		p.printExpr(wh.Body, depth+1)
	case ast.ExprReturn:
		p.line(depth, "return at %s", p.pos(expr.Span))
		p.printExpr(p.arenas.Return(id).Value, depth+1)
	case ast.ExprBinary:
		bin := p.arenas.Binary(id)
		p.line(depth, "binary %q at %s", bin.Op, p.pos(expr.Span))
		p.printExpr(bin.Left, depth+1)
		p.printExpr(bin.Right, depth+1)
	case ast.ExprUnary:
		un := p.arenas.Unary(id)
		p.line(depth, "unary %q at %s", un.Op, p.pos(expr.Span))
		p.printExpr(un.Operand, depth+1)
	case ast.ExprMember:
		mem := p.arenas.Member(id)
		p.line(depth, "member %q at %s", p.name(mem.Name), p.pos(expr.Span))
		p.printExpr(mem.Object, depth+1)
	case ast.ExprLet:
		let := p.arenas.Let(id)
		p.line(depth, "let %s: %s at %s", p.name(let.Name), p.typeName(let.Type), p.pos(expr.Span))
		p.printExpr(let.Value, depth+1)
	case ast.ExprLitChar:
		p.line(depth, "char %q at %s", p.arenas.CharLit(id).Value, p.pos(expr.Span))
	case ast.ExprLitBool:
		p.line(depth, "bool %v at %s", p.arenas.BoolLit(id).Value, p.pos(expr.Span))
	case ast.ExprLitInt:
		p.line(depth, "int %s at %s", p.arenas.IntLit(id).Text, p.pos(expr.Span))
	case ast.ExprLitFloat:
		p.line(depth, "float %s at %s", p.arenas.FloatLit(id).Text, p.pos(expr.Span))
	case ast.ExprLitString:
		p.line(depth, "string %q at %s", p.name(p.arenas.StringLit(id).Value), p.pos(expr.Span))
	case ast.ExprLitTuple:
		tup := p.arenas.TupleLit(id)
		p.line(depth, "tuple (%d elems) at %s", len(tup.Elems), p.pos(expr.Span))
		for _, e := range tup.Elems {
			p.printExpr(e, depth+1)
		}
	case ast.ExprLitArray:
		arr := p.arenas.ArrayLit(id)
		p.line(depth, "array (%d elems) at %s", len(arr.Elems), p.pos(expr.Span))
		for _, e := range arr.Elems {
			p.printExpr(e, depth+1)
		}
	case ast.ExprClosure:
		cl := p.arenas.Closure(id)
		params := make([]string, 0, len(cl.Params))
		for _, param := range cl.Params {
			params = append(params, fmt.Sprintf("%s: %s", p.name(param.Name), p.typeName(param.Type)))
		}
		p.line(depth, "closure fn(%s) -> %s at %s", strings.Join(params, ", "), p.typeName(cl.Result), p.pos(expr.Span))
		p.printExpr(cl.Body, depth+1)
	default:
		p.line(depth, "invalid expression at %s", p.pos(expr.Span))
	}
}

// ItemJSON is one item in a JSON AST dump. Members are present for structs
// and traits only.
type ItemJSON struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name"`
	Pub     bool        `json:"pub,omitempty"`
	Static  bool        `json:"static,omitempty"`
	Span    source.Span `json:"span"`
	Members []ItemJSON  `json:"members,omitempty"`
}

// FormatASTJSON serializes the item skeleton of a file as indented JSON.
// Expression bodies are omitted; the pretty form exists for those.
func FormatASTJSON(w io.Writer, arenas *ast.Builder, fileID ast.FileID) error {
	file := arenas.Files.Get(fileID)
	items := make([]ItemJSON, 0, len(file.Items))
	for _, id := range file.Items {
		items = append(items, itemToJSON(arenas, id))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func itemToJSON(arenas *ast.Builder, id ast.ItemID) ItemJSON {
	item := arenas.Items.Get(id)
	name, _ := arenas.StringsInterner.Lookup(item.Name)
	out := ItemJSON{
		Kind:   item.Kind.String(),
		Name:   name,
		Pub:    item.Pub,
		Static: item.Static,
		Span:   item.Span,
	}
	switch item.Kind {
	case ast.ItemStruct:
		for _, member := range arenas.Items.Struct(id).Items {
			out.Members = append(out.Members, itemToJSON(arenas, member))
		}
	case ast.ItemTrait:
		for _, member := range arenas.Items.Trait(id).Items {
			out.Members = append(out.Members, itemToJSON(arenas, member))
		}
	}
	return out
}
