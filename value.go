// value.go
//
// The runtime value model: a tagged union covering every kind a NANO value
// can hold, plus the Entity prototype container backing arrays,
// dictionaries, classes, and functions.
package nano

import "fmt"

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VNone ValueTag = iota
	VBool
	VNumber
	VString
	VEntity
	VCallable
)

// Value is the universal dynamically-typed carrier. Only Entity and
// Callable are reference-shared; Bool, Number, and String are copied by
// value.
type Value struct {
	Tag  ValueTag
	b    bool
	n    Decimal
	s    string
	ent  *Entity
	call Callable
}

// None is the singleton absence value.
var None = Value{Tag: VNone}

func Bool(b bool) Value       { return Value{Tag: VBool, b: b} }
func Number(d Decimal) Value  { return Value{Tag: VNumber, n: d} }
func Int(n int64) Value       { return Value{Tag: VNumber, n: DecimalFromInt64(n)} }
func String(s string) Value   { return Value{Tag: VString, s: s} }
func EntityVal(e *Entity) Value {
	if e.self != (Value{}) {
		return e.self
	}
	v := Value{Tag: VEntity, ent: e}
	e.self = v
	return v
}
func CallableVal(c Callable) Value {
	if fn, ok := c.(*Function); ok {
		return EntityVal(fn.Entity)
	}
	return Value{Tag: VCallable, call: c}
}

func (v Value) AsBool() bool       { return v.b }
func (v Value) AsNumber() Decimal  { return v.n }
func (v Value) AsString() string   { return v.s }
func (v Value) AsEntity() *Entity  { return v.ent }
func (v Value) AsCallable() Callable {
	if v.Tag == VEntity && v.ent != nil && v.ent.fn != nil {
		return v.ent.fn
	}
	return v.call
}

func (v Value) IsNone() bool   { return v.Tag == VNone }
func (v Value) IsEntity() bool { return v.Tag == VEntity }
func (v Value) IsCallable() bool {
	if v.Tag == VCallable {
		return true
	}
	return v.Tag == VEntity && v.ent != nil && v.ent.fn != nil
}
func (v Value) IsNumber() bool { return v.Tag == VNumber }
func (v Value) IsString() bool { return v.Tag == VString }

// Truthy reports whether v counts as true in a condition: only None and
// Bool(false) are falsy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VNone:
		return false
	case VBool:
		return v.b
	default:
		return true
	}
}

// Equal implements value equality: None equals only None; Bool/String/Number
// compare by value; Entity/Callable compare by reference identity.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VNone:
		return true
	case VBool:
		return a.b == b.b
	case VNumber:
		return a.n.Cmp(b.n) == 0
	case VString:
		return a.s == b.s
	case VEntity:
		return a.ent == b.ent
	case VCallable:
		return a.call == b.call
	default:
		return false
	}
}

// Entity is the universal prototype-chained container backing arrays,
// dictionaries, classes, and functions. entries is keyed by a Value
// converted to a comparable entryKey so that numeric keys compare by
// numerical value and string keys by text.
type Entity struct {
	entries    map[entryKey]entryPair
	order      []entryKey // insertion order, for inspect/print only
	metaentity *Entity

	// fn is non-nil when this Entity also backs a Function value: a
	// function value is simultaneously an Entity and a Callable.
	fn *Function

	self Value // memoized wrapper so repeated EntityVal calls share identity
}

type entryPair struct {
	key Value
	val Value
}

// entryKey is a comparable projection of a Value suitable for use as a Go
// map key. Numbers key by their canonical form with redundant trailing
// fractional zeros removed (Decimal.canonicalKey, so 1 and 1.0 collide,
// matching "numeric keys compared by numerical value"); every other kind
// keys by its own tag and payload.
type entryKey struct {
	tag ValueTag
	str string
}

func makeEntryKey(v Value) entryKey {
	switch v.Tag {
	case VNone:
		return entryKey{tag: VNone}
	case VBool:
		s := "false"
		if v.b {
			s = "true"
		}
		return entryKey{tag: VBool, str: s}
	case VNumber:
		return entryKey{tag: VNumber, str: v.n.canonicalKey()}
	case VString:
		return entryKey{tag: VString, str: v.s}
	case VEntity:
		return entryKey{tag: VEntity, str: fmt.Sprintf("%p", v.ent)}
	case VCallable:
		return entryKey{tag: VCallable, str: fmt.Sprintf("%p", v.call)}
	default:
		return entryKey{}
	}
}

// NewEntity returns an empty entity with no prototype.
func NewEntity() *Entity {
	return &Entity{entries: make(map[entryKey]entryPair)}
}

// Get looks up key in local entries first, then delegates to the prototype
// chain, falling back to None.
func (e *Entity) Get(key Value) Value {
	if p, ok := e.entries[makeEntryKey(key)]; ok {
		return p.val
	}
	if e.metaentity != nil {
		return e.metaentity.Get(key)
	}
	return None
}

// Set always writes to local entries; the prototype is never mutated by a
// write through a child.
func (e *Entity) Set(key, val Value) {
	k := makeEntryKey(key)
	if _, exists := e.entries[k]; !exists {
		e.order = append(e.order, k)
	}
	e.entries[k] = entryPair{key: key, val: val}
}

// Size returns the number of LOCAL entries; it does not traverse the
// prototype chain.
func (e *Entity) Size() int { return len(e.entries) }

// Metaentity returns the prototype, or nil.
func (e *Entity) Metaentity() *Entity { return e.metaentity }

// SetMetaentity installs the prototype link. User code cannot reach this
// directly; the metaentity chain is acyclic and opaque to user code.
func (e *Entity) SetMetaentity(parent *Entity) { e.metaentity = parent }

// Entries returns the local key/value pairs in insertion order, for
// `inspect` and array/range iteration support.
func (e *Entity) Entries() []entryPair {
	out := make([]entryPair, 0, len(e.order))
	for _, k := range e.order {
		out = append(out, e.entries[k])
	}
	return out
}

// NewArray builds an indexed entity from left-to-right element values,
// keyed by consecutive Number keys starting at 0.
func NewArray(elems []Value) *Entity {
	e := NewEntity()
	for i, v := range elems {
		e.Set(Int(int64(i)), v)
	}
	return e
}

// Callable is implemented by both user-defined closures (*Function) and
// native builtins (*NativeFunction).
type Callable interface {
	// Arity returns the expected argument count, or a negative number for
	// variadic callables.
	Arity() int
	// Call invokes the callable with already-evaluated arguments.
	Call(interp *Interpreter, args []Value) Value
	// Name is used for diagnostics (arity mismatches, inspect).
	Name() string
}
