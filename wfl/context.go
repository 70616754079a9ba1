package wfl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Expression is an executable expression tree produced by the formula
// compiler. Parsing lives outside this package.
type Expression interface {
	Evaluate(exec *Execution, ctx Callable) (Value, error)
}

type ExpressionFunc func(exec *Execution, ctx Callable) (Value, error)

func (f ExpressionFunc) Evaluate(exec *Execution, ctx Callable) (Value, error) {
	return f(exec, ctx)
}

// Literal always evaluates to v.
func Literal(v Value) Expression {
	return ExpressionFunc(func(*Execution, Callable) (Value, error) { return v, nil })
}

// Identifier looks name up in the evaluation context.
func Identifier(name string) Expression {
	return ExpressionFunc(func(_ *Execution, ctx Callable) (Value, error) {
		return ctx.Get(name)
	})
}

// Vars is a mutable variable scope.
type Vars struct {
	values map[string]Value
	order  []string
}

func NewVars() *Vars {
	return &Vars{values: make(map[string]Value)}
}

// Add binds key and returns the receiver for chaining.
func (v *Vars) Add(key string, val Value) *Vars {
	_ = v.Set(key, val)
	return v
}

func (v *Vars) Type() CallableType { return TypeVars }

func (v *Vars) Get(key string) (Value, error) {
	val, ok := v.values[key]
	if !ok {
		return NewNil(), notFound(TypeVars, key)
	}
	return val, nil
}

func (v *Vars) Set(key string, val Value) error {
	if _, ok := v.values[key]; !ok {
		v.order = append(v.order, key)
	}
	v.values[key] = val
	return nil
}

func (v *Vars) Inputs() []Input {
	inputs := make([]Input, len(v.order))
	for i, key := range v.order {
		inputs[i] = Input{Name: key, Writable: true}
	}
	return inputs
}

// Duplicate copies the bindings; bound values are shared.
func (v *Vars) Duplicate() Callable {
	dup := &Vars{
		values: make(map[string]Value, len(v.values)),
		order:  append([]string(nil), v.order...),
	}
	for k, val := range v.values {
		dup.values[k] = val
	}
	return dup
}

// ChainCallable answers from primary first and falls back to fallback for
// names primary does not know.
type ChainCallable struct {
	primary  Callable
	fallback Callable
}

func Chain(primary, fallback Callable) *ChainCallable {
	return &ChainCallable{primary: primary, fallback: fallback}
}

func (c *ChainCallable) Primary() Callable { return c.primary }

func (c *ChainCallable) Fallback() Callable { return c.fallback }

func (c *ChainCallable) Type() CallableType { return TypeChain }

func (c *ChainCallable) Get(key string) (Value, error) {
	val, err := c.primary.Get(key)
	if err == nil || c.fallback == nil || !errors.Is(err, ErrAttributeNotFound) {
		return val, err
	}
	return c.fallback.Get(key)
}

// Set binds in the first scope that accepts the key.
func (c *ChainCallable) Set(key string, val Value) error {
	err := c.primary.Set(key, val)
	if err == nil || c.fallback == nil {
		return err
	}
	if !errors.Is(err, ErrNotSupported) && !errors.Is(err, ErrAttributeNotFound) {
		return err
	}
	return c.fallback.Set(key, val)
}

func (c *ChainCallable) Inputs() []Input {
	inputs := c.primary.Inputs()
	if c.fallback == nil {
		return inputs
	}
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		seen[in.Name] = struct{}{}
	}
	for _, in := range c.fallback.Inputs() {
		if _, ok := seen[in.Name]; !ok {
			inputs = append(inputs, in)
		}
	}
	return inputs
}

func (c *ChainCallable) Duplicate() Callable {
	return &ChainCallable{primary: c.primary, fallback: c.fallback}
}

// ReadOnlyCallable forwards reads and rejects every write.
type ReadOnlyCallable struct {
	inner Callable
}

func ReadOnly(inner Callable) *ReadOnlyCallable {
	return &ReadOnlyCallable{inner: inner}
}

func (c *ReadOnlyCallable) Type() CallableType { return TypeReadOnly }

func (c *ReadOnlyCallable) Get(key string) (Value, error) { return c.inner.Get(key) }

func (c *ReadOnlyCallable) Set(key string, _ Value) error { return notSupported(TypeReadOnly, key) }

func (c *ReadOnlyCallable) Inputs() []Input {
	inputs := c.inner.Inputs()
	for i := range inputs {
		inputs[i].Writable = false
	}
	return inputs
}

func (c *ReadOnlyCallable) Duplicate() Callable { return &ReadOnlyCallable{inner: c.inner} }

// ResolvePath walks a dotted path such as "me.loc.x". Segments read
// callable attributes, hash keys, or array indexes.
func ResolvePath(ctx Callable, path string) (Value, error) {
	cur := NewCallable(ctx)
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		var err error
		switch cur.Kind() {
		case KindCallable:
			cur, err = cur.Callable().Get(part)
		case KindHash:
			val, ok := cur.Hash()[part]
			if !ok {
				return NewNil(), fmt.Errorf("%w: hash key %q", ErrAttributeNotFound, part)
			}
			cur = val
		case KindArray:
			items := cur.Array()
			i, convErr := strconv.Atoi(part)
			if convErr != nil {
				return NewNil(), fmt.Errorf("%w: array index %q", ErrTypeMismatch, part)
			}
			if i < 0 || i >= len(items) {
				return NewNil(), fmt.Errorf("%w: index %d out of range", ErrAttributeNotFound, i)
			}
			cur = items[i]
		default:
			return NewNil(), fmt.Errorf("%w: cannot read %q from %s", ErrTypeMismatch, part, cur.Kind())
		}
		if err != nil {
			return NewNil(), err
		}
	}
	return cur, nil
}
