package types

import (
	"fmt"
	"strings"
)

// Format renders a type the way diagnostics spell it: primitives by name,
// tuples as (a, b), arrays as [T], functions as fn(a, b) -> r, unions as
// a | b, named references as dotted paths.
func (in *Interner) Format(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return fmt.Sprintf("i%d", tt.Width)
	case KindUint:
		return fmt.Sprintf("u%d", tt.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", tt.Width)
	case KindTuple:
		info, _ := in.TupleInfo(id)
		parts := make([]string, len(info.Elems))
		for i, e := range info.Elems {
			parts[i] = in.Format(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindArray:
		return "[" + in.Format(tt.Elem) + "]"
	case KindFn:
		info, _ := in.FnInfo(id)
		parts := make([]string, len(info.Params))
		for i, p := range info.Params {
			parts[i] = in.Format(p)
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + in.Format(info.Result)
	case KindUnion:
		info, _ := in.UnionInfo(id)
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = in.Format(m)
		}
		return strings.Join(parts, " | ")
	case KindNamed:
		info, _ := in.NamedInfo(id)
		return strings.Join(info.Segments, ".")
	default:
		return "<invalid>"
	}
}

// FormatList renders a comma-separated type list (diagnostic payloads).
func (in *Interner) FormatList(ids []TypeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = in.Format(id)
	}
	return strings.Join(parts, ", ")
}
