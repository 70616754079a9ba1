package wfl

// attribute binds one key of a callable kind to its accessor.
type attribute[T any] struct {
	name string
	get  func(T) (Value, error)
}

func attr[T any](name string, get func(T) Value) attribute[T] {
	return attribute[T]{name: name, get: func(c T) (Value, error) { return get(c), nil }}
}

func attrErr[T any](name string, get func(T) (Value, error)) attribute[T] {
	return attribute[T]{name: name, get: get}
}

// attrTable is the single source for both Get dispatch and Inputs, built once
// per callable kind.
type attrTable[T any] struct {
	kind   CallableType
	attrs  []attribute[T]
	index  map[string]int
	inputs []Input
}

func newAttrTable[T any](kind CallableType, attrs ...attribute[T]) *attrTable[T] {
	t := &attrTable[T]{
		kind:   kind,
		attrs:  attrs,
		index:  make(map[string]int, len(attrs)),
		inputs: make([]Input, len(attrs)),
	}
	for i, a := range attrs {
		if _, dup := t.index[a.name]; dup {
			panic("wfl: duplicate attribute " + kind.String() + "." + a.name)
		}
		t.index[a.name] = i
		t.inputs[i] = Input{Name: a.name}
	}
	return t
}

// get answers key from self. Borrowed references are validated after the key
// is known so unknown keys always report not-found.
func (t *attrTable[T]) get(self T, key string, refs ...borrow) (Value, error) {
	i, ok := t.index[key]
	if !ok {
		return NewNil(), notFound(t.kind, key)
	}
	for _, ref := range refs {
		if err := ref.check(t.kind); err != nil {
			return NewNil(), &AttributeError{Type: t.kind, Key: key, Err: err}
		}
	}
	return t.attrs[i].get(self)
}

func (t *attrTable[T]) set(key string) error {
	if _, ok := t.index[key]; !ok {
		return notFound(t.kind, key)
	}
	return notSupported(t.kind, key)
}

func (t *attrTable[T]) list() []Input {
	return append([]Input(nil), t.inputs...)
}
