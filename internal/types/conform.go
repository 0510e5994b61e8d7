package types

import (
	"slices"
	"sort"
)

// Satisfies reports whether a value of type candidate may be used wherever
// expected is required. Structural identity (same TypeID) is always
// sufficient. A union candidate must have every member satisfy expected; a
// union expected is satisfied by conforming to any one member. There is no
// implicit numeric widening: distinct numeric kinds or widths never conform.
func (in *Interner) Satisfies(candidate, expected TypeID) bool {
	if candidate == expected {
		return true
	}
	if cu, ok := in.UnionInfo(candidate); ok {
		for _, m := range cu.Members {
			if !in.Satisfies(m, expected) {
				return false
			}
		}
		return true
	}
	if eu, ok := in.UnionInfo(expected); ok {
		for _, m := range eu.Members {
			if in.Satisfies(candidate, m) {
				return true
			}
		}
		return false
	}
	return false
}

// Merge computes the minimal type representing "a or b". Equal inputs merge
// to themselves; anything else becomes the flattened, duplicate-free union of
// both sides' members.
func (in *Interner) Merge(a, b TypeID) TypeID {
	if a == b {
		return a
	}
	members := in.flatten(a)
	members = append(members, in.flatten(b)...)
	return in.Union(members)
}

// Union interns the union over members, flattening nested unions and
// dropping duplicates. A single surviving member is returned as-is, never
// wrapped.
func (in *Interner) Union(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	for _, m := range members {
		flat = append(flat, in.flatten(m)...)
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i] < flat[j] })
	flat = slices.Compact(flat)

	switch len(flat) {
	case 0:
		return NoTypeID
	case 1:
		return flat[0]
	}

	key := unionKey(flat)
	if id, ok := in.index[key]; ok {
		return id
	}
	slot := in.appendUnion(UnionInfo{Members: flat})
	return in.internKeyed(key, Type{Kind: KindUnion, Payload: slot})
}

// flatten returns the union members of id, or id itself for non-unions.
func (in *Interner) flatten(id TypeID) []TypeID {
	if info, ok := in.UnionInfo(id); ok {
		return cloneIDs(info.Members)
	}
	return []TypeID{id}
}
