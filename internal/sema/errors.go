package sema

import (
	"fmt"

	"ldc/internal/source"
	"ldc/internal/types"
)

// Error is the typed failure surfaced by a check. Exactly one error ends a
// run: the first failing sub-check aborts everything above it.
type Error interface {
	error
	// Primary returns the span the diagnostic should point at.
	Primary() source.Span
}

// InvalidTypeError reports an inferred type that does not satisfy a required
// one (return-type mismatch, non-boolean condition, closure annotation).
type InvalidTypeError struct {
	Expected types.TypeID
	Found    types.TypeID
	Span     source.Span
	Types    *types.Interner
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: expected %s, found %s",
		e.Types.Format(e.Expected), e.Types.Format(e.Found))
}

func (e *InvalidTypeError) Primary() source.Span { return e.Span }

// InvalidArgumentsError reports a call-site arity or conformance failure.
// Found holds the inferred types of all arguments, not only the failing one.
type InvalidArgumentsError struct {
	Expected []types.TypeID
	Found    []types.TypeID
	Span     source.Span
	Types    *types.Interner
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments: expected (%s), found (%s)",
		e.Types.FormatList(e.Expected), e.Types.FormatList(e.Found))
}

func (e *InvalidArgumentsError) Primary() source.Span { return e.Span }

// UnresolvedIdentifierError reports a name with no visible binding in the
// active scope chain.
type UnresolvedIdentifierError struct {
	Name string
	Span source.Span
}

func (e *UnresolvedIdentifierError) Error() string {
	return fmt.Sprintf("unresolved identifier %q", e.Name)
}

func (e *UnresolvedIdentifierError) Primary() source.Span { return e.Span }
