package types

import "testing"

func TestSatisfiesIdentity(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	for _, id := range []TypeID{b.Bool, b.Char, b.I32, in.Tuple([]TypeID{b.Char}), in.Array(b.Bool)} {
		if !in.Satisfies(id, id) {
			t.Errorf("%s must satisfy itself", in.Format(id))
		}
	}
}

func TestSatisfiesNoNumericWidening(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if in.Satisfies(b.I8, b.I16) {
		t.Error("i8 must not satisfy i16")
	}
	if in.Satisfies(b.I32, b.U32) {
		t.Error("i32 must not satisfy u32")
	}
	if in.Satisfies(b.F32, b.F64) {
		t.Error("f32 must not satisfy f64")
	}
}

func TestSatisfiesExpectedUnion(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	u := in.Union([]TypeID{b.Char, b.Bool})

	if !in.Satisfies(b.Char, u) {
		t.Error("char must satisfy char | bool")
	}
	if !in.Satisfies(b.Bool, u) {
		t.Error("bool must satisfy char | bool")
	}
	if in.Satisfies(b.I32, u) {
		t.Error("i32 must not satisfy char | bool")
	}
}

func TestSatisfiesCandidateUnion(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	small := in.Union([]TypeID{b.Char, b.Bool})
	big := in.Union([]TypeID{b.Char, b.Bool, b.I32})

	// every member of the candidate union must satisfy the expected side
	if !in.Satisfies(small, big) {
		t.Error("char | bool must satisfy char | bool | i32")
	}
	if in.Satisfies(big, small) {
		t.Error("char | bool | i32 must not satisfy char | bool")
	}
	if in.Satisfies(small, b.Char) {
		t.Error("char | bool must not satisfy plain char")
	}
}

func TestMergeIdempotence(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	for _, id := range []TypeID{b.Bool, b.I64, in.Union([]TypeID{b.Char, b.Bool})} {
		if got := in.Merge(id, id); got != id {
			t.Errorf("Merge(%s, same) = %s", in.Format(id), in.Format(got))
		}
	}
}

func TestMergeBuildsUnion(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	m := in.Merge(b.Char, b.Bool)
	info, ok := in.UnionInfo(m)
	if !ok || len(info.Members) != 2 {
		t.Fatalf("expected 2-member union, got %s", in.Format(m))
	}
}

func TestMergeFlattens(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	ab := in.Merge(b.Char, b.Bool)
	abc := in.Merge(ab, b.I32)

	info, ok := in.UnionInfo(abc)
	if !ok {
		t.Fatalf("expected union, got %s", in.Format(abc))
	}
	if len(info.Members) != 3 {
		t.Fatalf("expected flattened 3-member union, got %s", in.Format(abc))
	}
	for _, m := range info.Members {
		if _, isUnion := in.UnionInfo(m); isUnion {
			t.Fatalf("union-of-union leaked into %s", in.Format(abc))
		}
	}

	// merging an already-covered member changes nothing
	if got := in.Merge(abc, b.Bool); got != abc {
		t.Fatalf("expected merge with covered member to be stable, got %s", in.Format(got))
	}
}

func TestUnionCanonicalOrder(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	u1 := in.Merge(b.Char, b.Bool)
	u2 := in.Merge(b.Bool, b.Char)
	if u1 != u2 {
		t.Fatalf("union member order must not matter: %d vs %d", u1, u2)
	}
}
