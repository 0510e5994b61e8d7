package symbols

import (
	"github.com/google/uuid"

	"ldc/internal/ast"
	"ldc/internal/types"
)

// ItemKind classifies the declaration a scope binding refers to.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFunction
	ItemStruct
	ItemEnum
	ItemVariable
)

func (k ItemKind) String() string {
	switch k {
	case ItemFunction:
		return "function"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemVariable:
		return "variable"
	default:
		return "invalid"
	}
}

// ItemID indexes the item arena of a Table.
type ItemID uint32

const NoItemID ItemID = 0

func (id ItemID) IsValid() bool { return id != NoItemID }

// Item is a declaration record. UUID is the process-wide identity: assigned
// once at construction, stable under renaming and shadowing, never reused.
// Decl points at the declaring AST item for functions, structs and enums;
// Type carries the stored type for variables.
type Item struct {
	UUID uuid.UUID
	Kind ItemKind
	Decl ast.ItemID
	Type types.TypeID
}

// NewFunction builds a function item for the given fn declaration.
func NewFunction(decl ast.ItemID) Item {
	return Item{UUID: uuid.New(), Kind: ItemFunction, Decl: decl}
}

// NewStruct builds a struct item for the given struct declaration.
func NewStruct(decl ast.ItemID) Item {
	return Item{UUID: uuid.New(), Kind: ItemStruct, Decl: decl}
}

// NewEnum builds an enum item for the given enum declaration.
func NewEnum(decl ast.ItemID) Item {
	return Item{UUID: uuid.New(), Kind: ItemEnum, Decl: decl}
}

// NewVariable builds a variable item storing its type.
func NewVariable(ty types.TypeID) Item {
	return Item{UUID: uuid.New(), Kind: ItemVariable, Type: ty}
}
