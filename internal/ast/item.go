package ast

import (
	"ldc/internal/source"
	"ldc/internal/types"
)

type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFn
	ItemStruct
	ItemEnum
	ItemTrait
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemTrait:
		return "trait"
	default:
		return "invalid"
	}
}

// Item is a declaration inside a module or a struct body. Static and Pub
// come from the modifier prefix; Payload addresses the per-kind arena.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Name    source.StringID
	Pub     bool
	Static  bool
	Payload PayloadID
}

// FnParam is one declared parameter: a name and its annotated type.
type FnParam struct {
	Name source.StringID
	Span source.Span
	Type types.TypeID
}

// FnItem is a function declaration. Result is NoTypeID when the return type
// annotation is omitted.
type FnItem struct {
	Params []FnParam
	Result types.TypeID
	Body   ExprID
}

// StructItem carries implemented trait references (in unresolved dotted-path
// type form) and the nested member list, itself a module.
type StructItem struct {
	Traits []types.TypeID
	Items  []ItemID
}

// EnumVariant is one variant with optional payload types.
type EnumVariant struct {
	Name    source.StringID
	Span    source.Span
	Payload []types.TypeID
}

// EnumItem is an enum declaration.
type EnumItem struct {
	Variants []EnumVariant
}

// TraitItem is a trait declaration; its body is parsed but not yet checked.
type TraitItem struct {
	Items []ItemID
}

// Items manages allocation of items and their payloads.
type Items struct {
	Arena   *Arena[Item]
	Fns     *Arena[FnItem]
	Structs *Arena[StructItem]
	Enums   *Arena[EnumItem]
	Traits  *Arena[TraitItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Fns:     NewArena[FnItem](capHint),
		Structs: NewArena[StructItem](capHint),
		Enums:   NewArena[EnumItem](capHint),
		Traits:  NewArena[TraitItem](capHint),
	}
}

func (i *Items) New(item Item) ItemID {
	return ItemID(i.Arena.Allocate(item))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// Fn returns the function payload for a fn item, nil otherwise.
func (i *Items) Fn(id ItemID) *FnItem {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil
	}
	return i.Fns.Get(uint32(item.Payload))
}

// Struct returns the struct payload for a struct item, nil otherwise.
func (i *Items) Struct(id ItemID) *StructItem {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil
	}
	return i.Structs.Get(uint32(item.Payload))
}

// Enum returns the enum payload for an enum item, nil otherwise.
func (i *Items) Enum(id ItemID) *EnumItem {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil
	}
	return i.Enums.Get(uint32(item.Payload))
}

// Trait returns the trait payload for a trait item, nil otherwise.
func (i *Items) Trait(id ItemID) *TraitItem {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTrait {
		return nil
	}
	return i.Traits.Get(uint32(item.Payload))
}
