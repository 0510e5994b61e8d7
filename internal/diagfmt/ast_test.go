package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ldc/internal/ast"
	"ldc/internal/source"
	"ldc/internal/types"
)

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ld", []byte("fn main() -> char { 'x' }\n"))

	arenas := ast.NewBuilder(ast.Hints{})
	tin := types.NewInterner()

	sp := func(start, end uint32) source.Span {
		return source.Span{File: fileID, Start: start, End: end}
	}

	lit := arenas.NewCharLit(sp(20, 23), 'x')
	body := arenas.NewBlock(sp(18, 25), ast.BlockExpr{Exprs: []ast.ExprID{lit}, HasValue: true})
	fn := arenas.NewFnItem(ast.Item{
		Span: sp(0, 25),
		Name: arenas.StringsInterner.Intern("main"),
	}, ast.FnItem{Result: tin.Builtins().Char, Body: body})

	astFile := arenas.Files.New(sp(0, 26))
	arenas.PushItem(astFile, fn)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, arenas, tin, astFile, fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "fn main() -> char at 1:1") {
		t.Fatalf("fn header missing: %q", out)
	}
	if !strings.Contains(out, "block (value)") {
		t.Fatalf("block missing: %q", out)
	}
	if !strings.Contains(out, "char 'x'") {
		t.Fatalf("literal missing: %q", out)
	}
}

func TestFormatASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.ld", []byte("struct P { fn x() -> i32 { 0 } }\n"))

	arenas := ast.NewBuilder(ast.Hints{})
	tin := types.NewInterner()

	sp := source.Span{File: fileID, Start: 0, End: 30}
	lit := arenas.NewIntLit(sp, 0, "0")
	body := arenas.NewBlock(sp, ast.BlockExpr{Exprs: []ast.ExprID{lit}, HasValue: true})
	method := arenas.NewFnItem(ast.Item{
		Span: sp,
		Name: arenas.StringsInterner.Intern("x"),
	}, ast.FnItem{Result: tin.Builtins().I32, Body: body})
	st := arenas.NewStructItem(ast.Item{
		Span: sp,
		Name: arenas.StringsInterner.Intern("P"),
	}, ast.StructItem{Items: []ast.ItemID{method}})

	astFile := arenas.Files.New(sp)
	arenas.PushItem(astFile, st)

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, arenas, astFile); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}

	var items []ItemJSON
	if err := json.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(items) != 1 || items[0].Kind != "struct" || items[0].Name != "P" {
		t.Fatalf("items = %+v", items)
	}
	if len(items[0].Members) != 1 || items[0].Members[0].Name != "x" {
		t.Fatalf("members = %+v", items[0].Members)
	}
}
