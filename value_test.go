// value_test.go
package nano

import "testing"

func Test_Value_Truthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{None, false},
		{Bool(false), false},
		{Bool(true), true},
		{Int(0), true},
		{String(""), true},
		{EntityVal(NewEntity()), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func Test_Value_Equal_NoneOnlyEqualsNone(t *testing.T) {
	if !Equal(None, None) {
		t.Fatalf("expected None == None")
	}
	if Equal(None, Bool(false)) {
		t.Fatalf("expected None != Bool(false)")
	}
}

func Test_Value_Equal_ByValueForScalars(t *testing.T) {
	if !Equal(Int(5), Int(5)) {
		t.Fatalf("expected Int(5) == Int(5)")
	}
	if !Equal(String("a"), String("a")) {
		t.Fatalf("expected equal strings to compare equal")
	}
	if Equal(String("a"), String("b")) {
		t.Fatalf("expected unequal strings to compare unequal")
	}
}

func Test_Value_Equal_ByReferenceForEntities(t *testing.T) {
	a := EntityVal(NewEntity())
	b := EntityVal(NewEntity())
	if Equal(a, b) {
		t.Fatalf("expected distinct entities to compare unequal")
	}
	if !Equal(a, a) {
		t.Fatalf("expected an entity to equal itself")
	}
}

func Test_Entity_GetSet_LocalFirst(t *testing.T) {
	e := NewEntity()
	e.Set(String("x"), Int(1))
	if got := e.Get(String("x")); !Equal(got, Int(1)) {
		t.Fatalf("got %#v, want Int(1)", got)
	}
}

func Test_Entity_PrototypeChainLookup(t *testing.T) {
	// Grandparent -> Parent -> Child: a two-hop prototype lookup.
	grandparent := NewEntity()
	grandparent.Set(String("g"), String("grandparent-value"))

	parent := NewEntity()
	parent.Set(String("p"), String("parent-value"))
	parent.SetMetaentity(grandparent)

	child := NewEntity()
	child.Set(String("c"), String("child-value"))
	child.SetMetaentity(parent)

	if got := child.Get(String("c")); got.AsString() != "child-value" {
		t.Fatalf("local lookup failed: %#v", got)
	}
	if got := child.Get(String("p")); got.AsString() != "parent-value" {
		t.Fatalf("one-hop prototype lookup failed: %#v", got)
	}
	if got := child.Get(String("g")); got.AsString() != "grandparent-value" {
		t.Fatalf("two-hop prototype lookup failed: %#v", got)
	}
	if got := child.Get(String("missing")); !got.IsNone() {
		t.Fatalf("expected None for a name absent from the whole chain, got %#v", got)
	}
}

func Test_Entity_SetAlwaysWritesLocally(t *testing.T) {
	parent := NewEntity()
	parent.Set(String("x"), Int(1))
	child := NewEntity()
	child.SetMetaentity(parent)

	child.Set(String("x"), Int(2))

	if got := child.Get(String("x")); !Equal(got, Int(2)) {
		t.Fatalf("child should see its own override, got %#v", got)
	}
	if got := parent.Get(String("x")); !Equal(got, Int(1)) {
		t.Fatalf("writing through a child must not mutate the parent, got %#v", got)
	}
}

func Test_Entity_NumericKeysCanonicalizeRegardlessOfSpelling(t *testing.T) {
	e := NewEntity()
	e.Set(Int(1), String("one"))
	one, _ := ParseDecimal("1.0")
	if got := e.Get(Number(one)); got.AsString() != "one" {
		t.Fatalf("expected 1 and 1.0 to key the same entry, got %#v", got)
	}
}

func Test_Entity_Size_CountsLocalEntriesOnly(t *testing.T) {
	parent := NewEntity()
	parent.Set(String("a"), Int(1))
	parent.Set(String("b"), Int(2))
	child := NewEntity()
	child.Set(String("c"), Int(3))
	child.SetMetaentity(parent)

	if got := child.Size(); got != 1 {
		t.Fatalf("got %d, want 1 (prototype entries excluded)", got)
	}
}

func Test_NewArray_ConsecutiveIntegerKeys(t *testing.T) {
	arr := NewArray([]Value{String("a"), String("b"), String("c")})
	if arr.Size() != 3 {
		t.Fatalf("got size %d, want 3", arr.Size())
	}
	if got := arr.Get(Int(1)); got.AsString() != "b" {
		t.Fatalf("got %#v, want \"b\"", got)
	}
}

func Test_CallableVal_FunctionSharesIdentityWithItsEntity(t *testing.T) {
	fn := NewFunction("f", nil, &BlockStmt{}, nil)
	v := CallableVal(fn)
	if !v.IsEntity() {
		t.Fatalf("expected a function value to also be an Entity")
	}
	if !v.IsCallable() {
		t.Fatalf("expected a function value to be callable")
	}
	if v.AsCallable() != fn {
		t.Fatalf("expected AsCallable to recover the original *Function")
	}
}
