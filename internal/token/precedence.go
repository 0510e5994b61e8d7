package token

// Operator precedence tiers, 1 (lowest, ranges) through 15 (member access).
// Assignment sits outside the table: it binds at statement level and is the
// only right-associative operator.

// PrefixPrecedence returns the binding power of the token used as a prefix
// operator, or 0 when it cannot start a unary expression.
func (t Token) PrefixPrecedence() uint8 {
	if t.Kind != Operator {
		return 0
	}
	switch t.Text {
	case "+", "-", "~", "!":
		return 14
	default:
		return 0
	}
}

// InfixPrecedence returns the binding power of the token used as an infix
// operator, or 0 when it is not an infix operator.
func (t Token) InfixPrecedence() uint8 {
	if t.Kind != Operator {
		return 0
	}
	switch t.Text {
	case ".":
		return 15
	case "*", "/", "%":
		return 13
	case "+", "-":
		return 12
	case "<<", ">>", ">>>":
		return 11
	case "&":
		return 10
	case "^":
		return 9
	case "|":
		return 8
	case "->":
		return 7
	case "<", "<=", ">", ">=":
		return 6
	case "==", "!=":
		return 5
	case "&&":
		return 4
	case "||":
		return 3
	case "??":
		return 2
	case "..", "..=", "..<":
		return 1
	default:
		return 0
	}
}

// LeftAssociative reports whether the operator associates to the left.
// Every operator in the table does; assignment is the exception.
func (t Token) LeftAssociative() bool {
	if t.Kind != Operator {
		return false
	}
	return t.Text != "="
}
