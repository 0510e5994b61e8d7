package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwSelf represents the 'self' keyword.
	KwSelf // self
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// TyChar represents the 'char' primitive name.
	TyChar // char
	// TyI8 .. TyI128 represent the signed integer primitive names.
	TyI8   // i8
	TyI16  // i16
	TyI32  // i32
	TyI64  // i64
	TyI128 // i128
	// TyU8 .. TyU128 represent the unsigned integer primitive names.
	TyU8   // u8
	TyU16  // u16
	TyU32  // u32
	TyU64  // u64
	TyU128 // u128
	// TyF16 .. TyF128 represent the floating-point primitive names.
	TyF16  // f16
	TyF32  // f32
	TyF64  // f64
	TyF128 // f128

	// LParen .. RBracket represent the paired delimiters.
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;

	// Operator represents any operator; the spelling lives in Token.Text.
	Operator
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	case CharLit:
		return "character literal"
	case KwFn:
		return "fn"
	case KwStruct:
		return "struct"
	case KwEnum:
		return "enum"
	case KwTrait:
		return "trait"
	case KwLet:
		return "let"
	case KwPub:
		return "pub"
	case KwSelf:
		return "self"
	case KwStatic:
		return "static"
	case KwWhile:
		return "while"
	case KwIf:
		return "if"
	case KwElse:
		return "else"
	case KwReturn:
		return "return"
	case TyChar:
		return "char"
	case TyI8:
		return "i8"
	case TyI16:
		return "i16"
	case TyI32:
		return "i32"
	case TyI64:
		return "i64"
	case TyI128:
		return "i128"
	case TyU8:
		return "u8"
	case TyU16:
		return "u16"
	case TyU32:
		return "u32"
	case TyU64:
		return "u64"
	case TyU128:
		return "u128"
	case TyF16:
		return "f16"
	case TyF32:
		return "f32"
	case TyF64:
		return "f64"
	case TyF128:
		return "f128"
	case LParen:
		return "left parenthesis"
	case RParen:
		return "right parenthesis"
	case LBrace:
		return "left brace"
	case RBrace:
		return "right brace"
	case LBracket:
		return "left bracket"
	case RBracket:
		return "right bracket"
	case Comma:
		return "comma"
	case Semicolon:
		return "semicolon"
	case Operator:
		return "operator"
	default:
		return "invalid"
	}
}
