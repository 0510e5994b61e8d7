package token

// keywords maps reserved words and primitive type names to their kinds.
// Matching is exact and case-sensitive.
var keywords = map[string]Kind{
	"fn":     KwFn,
	"struct": KwStruct,
	"enum":   KwEnum,
	"trait":  KwTrait,
	"let":    KwLet,
	"pub":    KwPub,
	"self":   KwSelf,
	"static": KwStatic,
	"while":  KwWhile,
	"if":     KwIf,
	"else":   KwElse,
	"return": KwReturn,

	"char": TyChar,
	"i8":   TyI8,
	"i16":  TyI16,
	"i32":  TyI32,
	"i64":  TyI64,
	"i128": TyI128,
	"u8":   TyU8,
	"u16":  TyU16,
	"u32":  TyU32,
	"u64":  TyU64,
	"u128": TyU128,
	"f16":  TyF16,
	"f32":  TyF32,
	"f64":  TyF64,
	"f128": TyF128,
}

// LookupIdent classifies an identifier spelling, returning the keyword or
// primitive kind when reserved and Ident otherwise. Note that 'true' and
// 'false' are not reserved; the parser maps those identifiers to bool
// literals.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
