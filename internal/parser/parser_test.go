package parser

import (
	"testing"

	"ldc/internal/ast"
	"ldc/internal/diag"
	"ldc/internal/lexer"
	"ldc/internal/source"
	"ldc/internal/types"
)

type parseFixture struct {
	fs     *source.FileSet
	arenas *ast.Builder
	types  *types.Interner
	bag    *diag.Bag
	result Result
}

func parseSource(t *testing.T, src string) parseFixture {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ld", []byte(src)))
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{})
	tin := types.NewInterner()
	result := ParseFile(fs, lx, arenas, tin, Options{Reporter: reporter})
	return parseFixture{fs: fs, arenas: arenas, types: tin, bag: bag, result: result}
}

func (f parseFixture) mustClean(t *testing.T) {
	t.Helper()
	if f.bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", f.bag.Items())
	}
}

func (f parseFixture) items() []ast.ItemID {
	return f.arenas.Files.Get(f.result.File).Items
}

func TestParseFnItem(t *testing.T) {
	f := parseSource(t, "fn add(a: i32, b: i32) -> i32 { a }")
	f.mustClean(t)

	items := f.items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := f.arenas.Items.Get(items[0])
	if item.Kind != ast.ItemFn {
		t.Fatalf("expected fn item, got %v", item.Kind)
	}
	if name, _ := f.arenas.StringsInterner.Lookup(item.Name); name != "add" {
		t.Fatalf("item name: got %q", name)
	}

	fn := f.arenas.Items.Fn(items[0])
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Type != f.types.Builtins().I32 {
		t.Fatalf("param type mismatch")
	}
	if fn.Result != f.types.Builtins().I32 {
		t.Fatalf("result type mismatch")
	}

	body := f.arenas.Block(fn.Body)
	if !body.HasValue || len(body.Exprs) != 1 {
		t.Fatalf("expected single-value body, got %d exprs hasValue=%v", len(body.Exprs), body.HasValue)
	}
}

func TestParseModifiers(t *testing.T) {
	f := parseSource(t, "pub static fn go() { }")
	f.mustClean(t)

	item := f.arenas.Items.Get(f.items()[0])
	if !item.Pub || !item.Static {
		t.Fatalf("modifiers lost: pub=%v static=%v", item.Pub, item.Static)
	}
}

func TestParseStructItem(t *testing.T) {
	f := parseSource(t, `
struct Point: geo.Shape {
	fn norm(self: Point) -> f64 { 0.0 }
	static fn origin() -> Point { origin_impl() }
}`)
	f.mustClean(t)

	items := f.items()
	st := f.arenas.Items.Struct(items[0])
	if st == nil {
		t.Fatalf("expected struct payload")
	}
	if len(st.Traits) != 1 {
		t.Fatalf("expected 1 trait ref, got %d", len(st.Traits))
	}
	info, ok := f.types.NamedInfo(st.Traits[0])
	if !ok || len(info.Segments) != 2 || info.Segments[0] != "geo" || info.Segments[1] != "Shape" {
		t.Fatalf("trait path: %+v", info)
	}
	if len(st.Items) != 2 {
		t.Fatalf("expected 2 members, got %d", len(st.Items))
	}
	if f.arenas.Items.Get(st.Items[0]).Static {
		t.Fatalf("first member must be an instance fn")
	}
	if !f.arenas.Items.Get(st.Items[1]).Static {
		t.Fatalf("second member must be static")
	}
}

func TestParseEnumItem(t *testing.T) {
	f := parseSource(t, "enum Shape { Circle(f64), Rect(f64, f64), Empty }")
	f.mustClean(t)

	en := f.arenas.Items.Enum(f.items()[0])
	if en == nil || len(en.Variants) != 3 {
		t.Fatalf("expected 3 variants")
	}
	if len(en.Variants[0].Payload) != 1 || en.Variants[0].Payload[0] != f.types.Builtins().F64 {
		t.Fatalf("Circle payload mismatch")
	}
	if len(en.Variants[1].Payload) != 2 {
		t.Fatalf("Rect payload mismatch")
	}
	if len(en.Variants[2].Payload) != 0 {
		t.Fatalf("Empty must have no payload")
	}
}

func TestParseTraitItem(t *testing.T) {
	f := parseSource(t, "trait Shape { fn area(self: i32) -> f64 { 0.0 } }")
	f.mustClean(t)

	tr := f.arenas.Items.Trait(f.items()[0])
	if tr == nil || len(tr.Items) != 1 {
		t.Fatalf("expected trait with 1 member")
	}
}

func TestBlockValueVsStatement(t *testing.T) {
	f := parseSource(t, "fn a() { x(); y() }\nfn b() { x(); y(); }")
	f.mustClean(t)

	items := f.items()
	withValue := f.arenas.Block(f.arenas.Items.Fn(items[0]).Body)
	if !withValue.HasValue {
		t.Fatalf("trailing expression without semicolon must give the block a value")
	}
	withoutValue := f.arenas.Block(f.arenas.Items.Fn(items[1]).Body)
	if withoutValue.HasValue {
		t.Fatalf("fully terminated block must have no value")
	}
}

func TestElseChain(t *testing.T) {
	f := parseSource(t, "fn pick(c: bool) { if c { 'a' } else if c { 'b' } else { 'c' } }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	ifx := f.arenas.If(body.Exprs[0])
	if ifx.Alt == ast.NoExprID {
		t.Fatalf("expected else branch")
	}
	nested := f.arenas.If(ifx.Alt)
	if nested.Alt == ast.NoExprID {
		t.Fatalf("expected final else in chain")
	}
}

func TestIfWithoutElse(t *testing.T) {
	f := parseSource(t, "fn f(c: bool) { if c { 'x' } }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	ifx := f.arenas.If(body.Exprs[0])
	if ifx.Alt != ast.NoExprID {
		t.Fatalf("expected missing else to be NoExprID")
	}
}

func TestPrecedence(t *testing.T) {
	f := parseSource(t, "fn f() { 1 + 2 * 3 }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	top := f.arenas.Binary(body.Exprs[0])
	if top.Op != "+" {
		t.Fatalf("expected + at the top, got %q", top.Op)
	}
	rhs := f.arenas.Binary(top.Right)
	if rhs.Op != "*" {
		t.Fatalf("expected * below +, got %q", rhs.Op)
	}
}

func TestAssignmentRightAssociative(t *testing.T) {
	f := parseSource(t, "fn f() { a = b = c; }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	top := f.arenas.Binary(body.Exprs[0])
	if top.Op != "=" {
		t.Fatalf("expected assignment, got %q", top.Op)
	}
	rhs := f.arenas.Binary(top.Right)
	if rhs.Op != "=" {
		t.Fatalf("assignment must nest to the right")
	}
}

func TestMemberAndCall(t *testing.T) {
	f := parseSource(t, "fn f() { obj.method(1, 2) }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	call := f.arenas.Call(body.Exprs[0])
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	mem := f.arenas.Member(call.Callee)
	if name, _ := f.arenas.StringsInterner.Lookup(mem.Name); name != "method" {
		t.Fatalf("member name: got %q", name)
	}
}

func TestGroupingVsTuple(t *testing.T) {
	f := parseSource(t, "fn f() { (1); (1, 2); (1,); }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	if f.arenas.Exprs.Get(body.Exprs[0]).Kind != ast.ExprLitInt {
		t.Fatalf("(1) must be grouping")
	}
	if pair := f.arenas.TupleLit(body.Exprs[1]); len(pair.Elems) != 2 {
		t.Fatalf("(1, 2) must be a pair")
	}
	if single := f.arenas.TupleLit(body.Exprs[2]); len(single.Elems) != 1 {
		t.Fatalf("(1,) must be a one-element tuple")
	}
}

func TestLiterals(t *testing.T) {
	f := parseSource(t, `fn f() { true; false; 'q'; "text"; [1, 2, 3]; }`)
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	if !f.arenas.BoolLit(body.Exprs[0]).Value {
		t.Fatalf("true literal")
	}
	if f.arenas.BoolLit(body.Exprs[1]).Value {
		t.Fatalf("false literal")
	}
	if f.arenas.CharLit(body.Exprs[2]).Value != 'q' {
		t.Fatalf("char literal")
	}
	str := f.arenas.StringLit(body.Exprs[3])
	if text, _ := f.arenas.StringsInterner.Lookup(str.Value); text != "text" {
		t.Fatalf("string literal: %q", text)
	}
	if arr := f.arenas.ArrayLit(body.Exprs[4]); len(arr.Elems) != 3 {
		t.Fatalf("array literal")
	}
}

func TestLetWithAnnotation(t *testing.T) {
	f := parseSource(t, "fn f() { let x: [i32] = make(); }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	let := f.arenas.Let(body.Exprs[0])
	if let.Type != f.types.Array(f.types.Builtins().I32) {
		t.Fatalf("let annotation mismatch")
	}
	if f.arenas.Exprs.Get(let.Value).Kind != ast.ExprCall {
		t.Fatalf("let value must be the call")
	}
}

func TestClosure(t *testing.T) {
	f := parseSource(t, "fn f() { fn(a: i32) -> i32 { a } }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	cl := f.arenas.Closure(body.Exprs[0])
	if len(cl.Params) != 1 || cl.Params[0].Type != f.types.Builtins().I32 {
		t.Fatalf("closure params")
	}
	if cl.Result != f.types.Builtins().I32 {
		t.Fatalf("closure result")
	}
}

func TestWhileAndReturn(t *testing.T) {
	f := parseSource(t, "fn f(c: bool) { while c { step(); }; return 3; }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	wh := f.arenas.While(body.Exprs[0])
	if f.arenas.Exprs.Get(wh.Body).Kind != ast.ExprBlock {
		t.Fatalf("while body must be a block")
	}
	ret := f.arenas.Return(body.Exprs[1])
	if ret.Value == ast.NoExprID {
		t.Fatalf("return value lost")
	}
}

func TestBareReturn(t *testing.T) {
	f := parseSource(t, "fn f() { return; }")
	f.mustClean(t)

	body := f.arenas.Block(f.arenas.Items.Fn(f.items()[0]).Body)
	ret := f.arenas.Return(body.Exprs[0])
	if ret.Value != ast.NoExprID {
		t.Fatalf("bare return must carry no value")
	}
}

func TestFnTypeAnnotation(t *testing.T) {
	f := parseSource(t, "fn apply(op: fn(i32) -> i32) { }")
	f.mustClean(t)

	fn := f.arenas.Items.Fn(f.items()[0])
	info, ok := f.types.FnInfo(fn.Params[0].Type)
	if !ok {
		t.Fatalf("expected fn type annotation")
	}
	if len(info.Params) != 1 || info.Params[0] != f.types.Builtins().I32 {
		t.Fatalf("fn type params mismatch")
	}
	if info.Result != f.types.Builtins().I32 {
		t.Fatalf("fn type result mismatch")
	}
}

func TestTopLevelResync(t *testing.T) {
	f := parseSource(t, "garbage tokens here; fn ok() { }")
	if !f.bag.HasErrors() {
		t.Fatalf("expected a syntax error for the leading garbage")
	}

	var fns int
	for _, id := range f.items() {
		if f.arenas.Items.Get(id).Kind == ast.ItemFn {
			fns++
		}
	}
	if fns != 1 {
		t.Fatalf("parser must recover and parse the following fn, got %d", fns)
	}
}

func TestMissingSemicolon(t *testing.T) {
	f := parseSource(t, "fn f() { a() b() }")
	if !f.bag.HasErrors() {
		t.Fatalf("expected missing-semicolon error")
	}
	found := false
	for _, d := range f.bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectSemicolon, got %+v", f.bag.Items())
	}
}
