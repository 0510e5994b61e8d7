package diag

import "fmt"

// Code identifies a diagnostic kind. Lexical codes live in the 1000s,
// syntactic in the 2000s, semantic in the 3000s.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber          Code = 1005
	LexBadEscape          Code = 1006

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynUnclosedDelimiter  Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectType         Code = 2005
	SynExpectParameter    Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynExpectBlock        Code = 2008

	// Semantic
	SemaInvalidType          Code = 3001
	SemaInvalidArguments     Code = 3002
	SemaUnresolvedIdentifier Code = 3003
)

func (c Code) String() string {
	return fmt.Sprintf("LDC%04d", uint16(c))
}
