package ast

import (
	"ldc/internal/source"
	"ldc/internal/types"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprBlock
	ExprCall
	ExprIdent
	ExprIf
	ExprWhile
	ExprReturn
	ExprBinary
	ExprUnary
	ExprMember
	ExprLet

	ExprLitChar
	ExprLitBool
	ExprLitInt
	ExprLitFloat
	ExprLitString
	ExprLitTuple
	ExprLitArray
	ExprClosure
)

func (k ExprKind) String() string {
	switch k {
	case ExprBlock:
		return "block"
	case ExprCall:
		return "call"
	case ExprIdent:
		return "identifier"
	case ExprIf:
		return "if"
	case ExprWhile:
		return "while"
	case ExprReturn:
		return "return"
	case ExprBinary:
		return "binary"
	case ExprUnary:
		return "unary"
	case ExprMember:
		return "member access"
	case ExprLet:
		return "let binding"
	case ExprLitChar:
		return "char literal"
	case ExprLitBool:
		return "bool literal"
	case ExprLitInt:
		return "integer literal"
	case ExprLitFloat:
		return "float literal"
	case ExprLitString:
		return "string literal"
	case ExprLitTuple:
		return "tuple literal"
	case ExprLitArray:
		return "array literal"
	case ExprClosure:
		return "closure"
	default:
		return "invalid"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BlockExpr is a braced expression sequence. HasValue marks a trailing
// expression without a semicolon; the block then takes its type.
type BlockExpr struct {
	Exprs    []ExprID
	HasValue bool
}

type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

type IdentExpr struct {
	Name source.StringID
}

// IfExpr: Alt is NoExprID when no else branch is present.
type IfExpr struct {
	Cond ExprID
	Cons ExprID
	Alt  ExprID
}

type WhileExpr struct {
	Cond ExprID
	Body ExprID
}

type ReturnExpr struct {
	Value ExprID
}

type BinaryExpr struct {
	Op    string
	Left  ExprID
	Right ExprID
}

type UnaryExpr struct {
	Op      string
	Operand ExprID
}

type MemberExpr struct {
	Object ExprID
	Name   source.StringID
}

// LetExpr: Type is NoTypeID without an annotation.
type LetExpr struct {
	Name  source.StringID
	Type  types.TypeID
	Value ExprID
}

type CharLitExpr struct {
	Value rune
}

type BoolLitExpr struct {
	Value bool
}

type IntLitExpr struct {
	Value uint64
	Text  string
}

type FloatLitExpr struct {
	Value float64
	Text  string
}

type StringLitExpr struct {
	Value source.StringID
}

type TupleLitExpr struct {
	Elems []ExprID
}

type ArrayLitExpr struct {
	Elems []ExprID
}

// ClosureExpr: Result is NoTypeID without a declared result type.
type ClosureExpr struct {
	Params []FnParam
	Result types.TypeID
	Body   ExprID
}

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena      *Arena[Expr]
	Blocks     *Arena[BlockExpr]
	Calls      *Arena[CallExpr]
	Idents     *Arena[IdentExpr]
	Ifs        *Arena[IfExpr]
	Whiles     *Arena[WhileExpr]
	Returns    *Arena[ReturnExpr]
	Binaries   *Arena[BinaryExpr]
	Unaries    *Arena[UnaryExpr]
	Members    *Arena[MemberExpr]
	Lets       *Arena[LetExpr]
	CharLits   *Arena[CharLitExpr]
	BoolLits   *Arena[BoolLitExpr]
	IntLits    *Arena[IntLitExpr]
	FloatLits  *Arena[FloatLitExpr]
	StringLits *Arena[StringLitExpr]
	TupleLits  *Arena[TupleLitExpr]
	ArrayLits  *Arena[ArrayLitExpr]
	Closures   *Arena[ClosureExpr]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Blocks:     NewArena[BlockExpr](capHint),
		Calls:      NewArena[CallExpr](capHint),
		Idents:     NewArena[IdentExpr](capHint),
		Ifs:        NewArena[IfExpr](capHint),
		Whiles:     NewArena[WhileExpr](capHint),
		Returns:    NewArena[ReturnExpr](capHint),
		Binaries:   NewArena[BinaryExpr](capHint),
		Unaries:    NewArena[UnaryExpr](capHint),
		Members:    NewArena[MemberExpr](capHint),
		Lets:       NewArena[LetExpr](capHint),
		CharLits:   NewArena[CharLitExpr](capHint),
		BoolLits:   NewArena[BoolLitExpr](capHint),
		IntLits:    NewArena[IntLitExpr](capHint),
		FloatLits:  NewArena[FloatLitExpr](capHint),
		StringLits: NewArena[StringLitExpr](capHint),
		TupleLits:  NewArena[TupleLitExpr](capHint),
		ArrayLits:  NewArena[ArrayLitExpr](capHint),
		Closures:   NewArena[ClosureExpr](capHint),
	}
}

func (e *Exprs) New(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}
