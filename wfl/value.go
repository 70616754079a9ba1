package wfl

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindCallable
)

// Value is the interpreter's dynamically typed unit. Values are cheap to copy;
// arrays, hashes and callables are shared by reference.
type Value struct {
	kind ValueKind
	data any
}

func NewNil() Value            { return Value{kind: KindNil} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewArray(a []Value) Value { return Value{kind: KindArray, data: a} }
func NewHash(h map[string]Value) Value {
	return Value{kind: KindHash, data: h}
}

// NewCallable wraps an adapter. A nil callable produces nil.
func NewCallable(c Callable) Value {
	if c == nil {
		return NewNil()
	}
	return Value{kind: KindCallable, data: c}
}

func newIntValue(i int) Value { return NewInt(int64(i)) }

func newStringList(items []string) Value {
	out := make([]Value, len(items))
	for i, s := range items {
		out[i] = NewString(s)
	}
	return NewArray(out)
}
