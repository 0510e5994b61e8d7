package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type (e.g. an omitted return annotation).
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindChar
	KindInt
	KindUint
	KindFloat
	KindTuple
	KindArray
	KindFn
	KindUnion
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindFn:
		return "fn"
	case KindUnion:
		return "union"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integer/float primitives.
type Width uint8

const (
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Type is a compact descriptor for any supported type. Composite kinds keep
// their contents in the interner's payload tables, addressed by Payload.
type Type struct {
	Kind    Kind
	Width   Width  // for numeric primitives
	Elem    TypeID // for arrays
	Payload uint32 // slot into the per-kind payload table
}

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer of the given width.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type of the given width.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}
