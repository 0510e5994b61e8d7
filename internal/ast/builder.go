package ast

import (
	"ldc/internal/source"
	"ldc/internal/types"
)

// File is one parsed module: the ordered list of its top-level items.
type File struct {
	Span  source.Span
	Items []ItemID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}

// Hints suggests arena capacities.
type Hints struct{ Files, Items, Exprs uint }

// Builder aggregates the AST arenas and the shared string interner for one
// parse run.
type Builder struct {
	Files           *Files
	Items           *Items
	Exprs           *Exprs
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: source.NewInterner(),
	}
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Item constructors --------------------------------------------------------

func (b *Builder) NewFnItem(item Item, fn FnItem) ItemID {
	item.Kind = ItemFn
	item.Payload = PayloadID(b.Items.Fns.Allocate(fn))
	return b.Items.New(item)
}

func (b *Builder) NewStructItem(item Item, st StructItem) ItemID {
	item.Kind = ItemStruct
	item.Payload = PayloadID(b.Items.Structs.Allocate(st))
	return b.Items.New(item)
}

func (b *Builder) NewEnumItem(item Item, en EnumItem) ItemID {
	item.Kind = ItemEnum
	item.Payload = PayloadID(b.Items.Enums.Allocate(en))
	return b.Items.New(item)
}

func (b *Builder) NewTraitItem(item Item, tr TraitItem) ItemID {
	item.Kind = ItemTrait
	item.Payload = PayloadID(b.Items.Traits.Allocate(tr))
	return b.Items.New(item)
}

// Expression constructors ---------------------------------------------------

func (b *Builder) NewBlock(sp source.Span, block BlockExpr) ExprID {
	return b.Exprs.New(ExprBlock, sp, PayloadID(b.Exprs.Blocks.Allocate(block)))
}

func (b *Builder) NewCall(sp source.Span, call CallExpr) ExprID {
	return b.Exprs.New(ExprCall, sp, PayloadID(b.Exprs.Calls.Allocate(call)))
}

func (b *Builder) NewIdent(sp source.Span, name source.StringID) ExprID {
	return b.Exprs.New(ExprIdent, sp, PayloadID(b.Exprs.Idents.Allocate(IdentExpr{Name: name})))
}

func (b *Builder) NewIf(sp source.Span, ifx IfExpr) ExprID {
	return b.Exprs.New(ExprIf, sp, PayloadID(b.Exprs.Ifs.Allocate(ifx)))
}

func (b *Builder) NewWhile(sp source.Span, wh WhileExpr) ExprID {
	return b.Exprs.New(ExprWhile, sp, PayloadID(b.Exprs.Whiles.Allocate(wh)))
}

func (b *Builder) NewReturn(sp source.Span, value ExprID) ExprID {
	return b.Exprs.New(ExprReturn, sp, PayloadID(b.Exprs.Returns.Allocate(ReturnExpr{Value: value})))
}

func (b *Builder) NewBinary(sp source.Span, bin BinaryExpr) ExprID {
	return b.Exprs.New(ExprBinary, sp, PayloadID(b.Exprs.Binaries.Allocate(bin)))
}

func (b *Builder) NewUnary(sp source.Span, un UnaryExpr) ExprID {
	return b.Exprs.New(ExprUnary, sp, PayloadID(b.Exprs.Unaries.Allocate(un)))
}

func (b *Builder) NewMember(sp source.Span, mem MemberExpr) ExprID {
	return b.Exprs.New(ExprMember, sp, PayloadID(b.Exprs.Members.Allocate(mem)))
}

func (b *Builder) NewLet(sp source.Span, let LetExpr) ExprID {
	return b.Exprs.New(ExprLet, sp, PayloadID(b.Exprs.Lets.Allocate(let)))
}

func (b *Builder) NewCharLit(sp source.Span, value rune) ExprID {
	return b.Exprs.New(ExprLitChar, sp, PayloadID(b.Exprs.CharLits.Allocate(CharLitExpr{Value: value})))
}

func (b *Builder) NewBoolLit(sp source.Span, value bool) ExprID {
	return b.Exprs.New(ExprLitBool, sp, PayloadID(b.Exprs.BoolLits.Allocate(BoolLitExpr{Value: value})))
}

func (b *Builder) NewIntLit(sp source.Span, value uint64, text string) ExprID {
	return b.Exprs.New(ExprLitInt, sp, PayloadID(b.Exprs.IntLits.Allocate(IntLitExpr{Value: value, Text: text})))
}

func (b *Builder) NewFloatLit(sp source.Span, value float64, text string) ExprID {
	return b.Exprs.New(ExprLitFloat, sp, PayloadID(b.Exprs.FloatLits.Allocate(FloatLitExpr{Value: value, Text: text})))
}

func (b *Builder) NewStringLit(sp source.Span, value source.StringID) ExprID {
	return b.Exprs.New(ExprLitString, sp, PayloadID(b.Exprs.StringLits.Allocate(StringLitExpr{Value: value})))
}

func (b *Builder) NewTupleLit(sp source.Span, elems []ExprID) ExprID {
	return b.Exprs.New(ExprLitTuple, sp, PayloadID(b.Exprs.TupleLits.Allocate(TupleLitExpr{Elems: elems})))
}

func (b *Builder) NewArrayLit(sp source.Span, elems []ExprID) ExprID {
	return b.Exprs.New(ExprLitArray, sp, PayloadID(b.Exprs.ArrayLits.Allocate(ArrayLitExpr{Elems: elems})))
}

func (b *Builder) NewClosure(sp source.Span, cl ClosureExpr) ExprID {
	return b.Exprs.New(ExprClosure, sp, PayloadID(b.Exprs.Closures.Allocate(cl)))
}

// Payload accessors ---------------------------------------------------------

func (b *Builder) Block(id ExprID) *BlockExpr     { return b.payload(id, ExprBlock).(*BlockExpr) }
func (b *Builder) Call(id ExprID) *CallExpr       { return b.payload(id, ExprCall).(*CallExpr) }
func (b *Builder) Ident(id ExprID) *IdentExpr     { return b.payload(id, ExprIdent).(*IdentExpr) }
func (b *Builder) If(id ExprID) *IfExpr           { return b.payload(id, ExprIf).(*IfExpr) }
func (b *Builder) While(id ExprID) *WhileExpr     { return b.payload(id, ExprWhile).(*WhileExpr) }
func (b *Builder) Return(id ExprID) *ReturnExpr   { return b.payload(id, ExprReturn).(*ReturnExpr) }
func (b *Builder) Binary(id ExprID) *BinaryExpr   { return b.payload(id, ExprBinary).(*BinaryExpr) }
func (b *Builder) Unary(id ExprID) *UnaryExpr     { return b.payload(id, ExprUnary).(*UnaryExpr) }
func (b *Builder) Member(id ExprID) *MemberExpr   { return b.payload(id, ExprMember).(*MemberExpr) }
func (b *Builder) Let(id ExprID) *LetExpr         { return b.payload(id, ExprLet).(*LetExpr) }
func (b *Builder) CharLit(id ExprID) *CharLitExpr { return b.payload(id, ExprLitChar).(*CharLitExpr) }
func (b *Builder) BoolLit(id ExprID) *BoolLitExpr { return b.payload(id, ExprLitBool).(*BoolLitExpr) }
func (b *Builder) IntLit(id ExprID) *IntLitExpr   { return b.payload(id, ExprLitInt).(*IntLitExpr) }
func (b *Builder) FloatLit(id ExprID) *FloatLitExpr {
	return b.payload(id, ExprLitFloat).(*FloatLitExpr)
}
func (b *Builder) StringLit(id ExprID) *StringLitExpr {
	return b.payload(id, ExprLitString).(*StringLitExpr)
}
func (b *Builder) TupleLit(id ExprID) *TupleLitExpr {
	return b.payload(id, ExprLitTuple).(*TupleLitExpr)
}
func (b *Builder) ArrayLit(id ExprID) *ArrayLitExpr {
	return b.payload(id, ExprLitArray).(*ArrayLitExpr)
}
func (b *Builder) Closure(id ExprID) *ClosureExpr { return b.payload(id, ExprClosure).(*ClosureExpr) }

func (b *Builder) payload(id ExprID, kind ExprKind) any {
	expr := b.Exprs.Get(id)
	if expr == nil || expr.Kind != kind {
		panic("ast: payload accessor used on wrong expression kind")
	}
	slot := uint32(expr.Payload)
	switch kind {
	case ExprBlock:
		return b.Exprs.Blocks.Get(slot)
	case ExprCall:
		return b.Exprs.Calls.Get(slot)
	case ExprIdent:
		return b.Exprs.Idents.Get(slot)
	case ExprIf:
		return b.Exprs.Ifs.Get(slot)
	case ExprWhile:
		return b.Exprs.Whiles.Get(slot)
	case ExprReturn:
		return b.Exprs.Returns.Get(slot)
	case ExprBinary:
		return b.Exprs.Binaries.Get(slot)
	case ExprUnary:
		return b.Exprs.Unaries.Get(slot)
	case ExprMember:
		return b.Exprs.Members.Get(slot)
	case ExprLet:
		return b.Exprs.Lets.Get(slot)
	case ExprLitChar:
		return b.Exprs.CharLits.Get(slot)
	case ExprLitBool:
		return b.Exprs.BoolLits.Get(slot)
	case ExprLitInt:
		return b.Exprs.IntLits.Get(slot)
	case ExprLitFloat:
		return b.Exprs.FloatLits.Get(slot)
	case ExprLitString:
		return b.Exprs.StringLits.Get(slot)
	case ExprLitTuple:
		return b.Exprs.TupleLits.Get(slot)
	case ExprLitArray:
		return b.Exprs.ArrayLits.Get(slot)
	case ExprClosure:
		return b.Exprs.Closures.Get(slot)
	default:
		panic("ast: unknown expression kind")
	}
}

// ParamTypes extracts the declared parameter types in order.
func ParamTypes(params []FnParam) []types.TypeID {
	out := make([]types.TypeID, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
