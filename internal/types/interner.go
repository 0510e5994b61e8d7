package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every check needs.
type Builtins struct {
	Bool TypeID
	Char TypeID
	Unit TypeID // the empty tuple

	I8, I16, I32, I64, I128 TypeID
	U8, U16, U32, U64, U128 TypeID
	F16, F32, F64, F128     TypeID
}

// TupleInfo stores the element types for a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// FnInfo stores parameter and result types for a function type.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// UnionInfo stores the member set of a union type: at least two distinct
// members, flattened (never a union inside a union), sorted by TypeID.
type UnionInfo struct {
	Members []TypeID
}

// NamedInfo stores an unresolved dotted path reference. Resolution to a
// stable declaration identity is a planned extension; today every named
// reference stays in path form.
type NamedInfo struct {
	Segments []string
}

// Interner hands out stable TypeIDs and guarantees structural dedup: two
// structurally equal types always receive the same TypeID, so ID equality is
// structural equality.
type Interner struct {
	types    []Type
	index    map[string]TypeID
	builtins Builtins

	tuples []TupleInfo
	fns    []FnInfo
	unions []UnionInfo
	named  []NamedInfo
}

// NewInterner constructs an interner seeded with the primitive types.
func NewInterner() *Interner {
	in := &Interner{
		index:  make(map[string]TypeID, 64),
		tuples: []TupleInfo{{}}, // slot 0 reserved
		fns:    []FnInfo{{}},
		unions: []UnionInfo{{}},
		named:  []NamedInfo{{}},
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // TypeID 0

	in.builtins.Bool = in.intern(Type{Kind: KindBool})
	in.builtins.Char = in.intern(Type{Kind: KindChar})

	in.builtins.I8 = in.intern(MakeInt(Width8))
	in.builtins.I16 = in.intern(MakeInt(Width16))
	in.builtins.I32 = in.intern(MakeInt(Width32))
	in.builtins.I64 = in.intern(MakeInt(Width64))
	in.builtins.I128 = in.intern(MakeInt(Width128))

	in.builtins.U8 = in.intern(MakeUint(Width8))
	in.builtins.U16 = in.intern(MakeUint(Width16))
	in.builtins.U32 = in.intern(MakeUint(Width32))
	in.builtins.U64 = in.intern(MakeUint(Width64))
	in.builtins.U128 = in.intern(MakeUint(Width128))

	in.builtins.F16 = in.intern(MakeFloat(Width16))
	in.builtins.F32 = in.intern(MakeFloat(Width32))
	in.builtins.F64 = in.intern(MakeFloat(Width64))
	in.builtins.F128 = in.intern(MakeFloat(Width128))

	in.builtins.Unit = in.Tuple(nil)
	return in
}

// Builtins returns TypeIDs for the primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind of a TypeID, KindInvalid for unknown IDs.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Len reports the number of interned types excluding the invalid sentinel.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

// Tuple interns a tuple type with the given elements. Tuple(nil) is unit.
func (in *Interner) Tuple(elems []TypeID) TypeID {
	key := tupleKey(elems)
	if id, ok := in.index[key]; ok {
		return id
	}
	slot := in.appendTuple(TupleInfo{Elems: cloneIDs(elems)})
	return in.internKeyed(key, Type{Kind: KindTuple, Payload: slot})
}

// Array interns an array type over the element type.
func (in *Interner) Array(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindArray, Elem: elem})
}

// Fn interns a function type.
func (in *Interner) Fn(params []TypeID, result TypeID) TypeID {
	key := fnKey(params, result)
	if id, ok := in.index[key]; ok {
		return id
	}
	slot := in.appendFn(FnInfo{Params: cloneIDs(params), Result: result})
	return in.internKeyed(key, Type{Kind: KindFn, Payload: slot})
}

// Named interns an unresolved dotted path type.
func (in *Interner) Named(segments []string) TypeID {
	key := "named(" + strings.Join(segments, ".") + ")"
	if id, ok := in.index[key]; ok {
		return id
	}
	slot := in.appendNamed(NamedInfo{Segments: append([]string(nil), segments...)})
	return in.internKeyed(key, Type{Kind: KindNamed, Payload: slot})
}

// TupleInfo returns the payload for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

// FnInfo returns the payload for a function TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// UnionInfo returns the payload for a union TypeID.
func (in *Interner) UnionInfo(id TypeID) (*UnionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindUnion || int(tt.Payload) >= len(in.unions) {
		return nil, false
	}
	return &in.unions[tt.Payload], true
}

// NamedInfo returns the payload for a named TypeID.
func (in *Interner) NamedInfo(id TypeID) (*NamedInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed || int(tt.Payload) >= len(in.named) {
		return nil, false
	}
	return &in.named[tt.Payload], true
}

// intern dedups payload-free descriptors by their value.
func (in *Interner) intern(t Type) TypeID {
	key := valueKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internKeyed(key, t)
}

func (in *Interner) internKeyed(key string, t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types arena overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

func (in *Interner) appendTuple(info TupleInfo) uint32 {
	in.tuples = append(in.tuples, info)
	return in.slot(len(in.tuples) - 1)
}

func (in *Interner) appendFn(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	return in.slot(len(in.fns) - 1)
}

func (in *Interner) appendUnion(info UnionInfo) uint32 {
	in.unions = append(in.unions, info)
	return in.slot(len(in.unions) - 1)
}

func (in *Interner) appendNamed(info NamedInfo) uint32 {
	in.named = append(in.named, info)
	return in.slot(len(in.named) - 1)
}

func (in *Interner) slot(n int) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("payload slot overflow: %w", err))
	}
	return slot
}

func valueKey(t Type) string {
	return fmt.Sprintf("v(%d,%d,%d)", t.Kind, t.Width, t.Elem)
}

func tupleKey(elems []TypeID) string {
	var b strings.Builder
	b.WriteString("tuple(")
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", e)
	}
	b.WriteByte(')')
	return b.String()
}

func fnKey(params []TypeID, result TypeID) string {
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", p)
	}
	fmt.Fprintf(&b, ";%d)", result)
	return b.String()
}

func unionKey(members []TypeID) string {
	var b strings.Builder
	b.WriteString("union(")
	for i, m := range members {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%d", m)
	}
	b.WriteByte(')')
	return b.String()
}

func cloneIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}
