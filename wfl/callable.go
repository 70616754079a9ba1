package wfl

import (
	"fmt"
	"reflect"
)

// CallableType is the runtime tag carried by every callable.
type CallableType int

const (
	TypeNone CallableType = iota
	TypeLocation
	TypeTerrain
	TypeMap
	TypeUnit
	TypeUnitType
	TypeAttack
	TypeTeam
	TypeConfig
	TypeSetVar
	TypeSafeCall
	TypeSafeCallResult
	TypePending
	TypeVars
	TypeChain
	TypeReadOnly
)

var callableTypeNames = map[CallableType]string{
	TypeNone:           "none",
	TypeLocation:       "location",
	TypeTerrain:        "terrain",
	TypeMap:            "map",
	TypeUnit:           "unit",
	TypeUnitType:       "unit_type",
	TypeAttack:         "attack",
	TypeTeam:           "team",
	TypeConfig:         "config",
	TypeSetVar:         "set_var",
	TypeSafeCall:       "safe_call",
	TypeSafeCallResult: "safe_call_result",
	TypePending:        "pending",
	TypeVars:           "vars",
	TypeChain:          "chain",
	TypeReadOnly:       "read_only",
}

func (t CallableType) String() string {
	if name, ok := callableTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("callable(%d)", int(t))
}

// Input describes one attribute a callable can answer.
type Input struct {
	Name     string
	Writable bool
}

// Callable exposes a host entity to formulas. Get on a key missing from
// Inputs fails with ErrAttributeNotFound; Set fails with ErrNotSupported
// unless the callable is mutable.
type Callable interface {
	Type() CallableType
	Get(key string) (Value, error)
	Set(key string, val Value) error
	Inputs() []Input
	Duplicate() Callable
}

// Comparer is implemented by callables with value semantics. It is only
// consulted when both operands share a type tag.
type Comparer interface {
	CompareCallable(other Callable) Ordering
}

// Serializer is implemented by callables with a canonical textual form.
type Serializer interface {
	Serialize() (string, error)
}

// Action is a callable that performs a side effect when executed.
type Action interface {
	Callable
	Execute(exec *Execution, ctx Callable) (Value, error)
}

// Compare orders two callables: first by type tag, then by value when the
// kind defines it, otherwise by identity.
func Compare(a, b Callable) Ordering {
	switch {
	case a == nil && b == nil:
		return Equal
	case a == nil:
		return Less
	case b == nil:
		return Greater
	}
	if a.Type() != b.Type() {
		return orderInts(int64(a.Type()), int64(b.Type()))
	}
	if sameCallable(a, b) {
		return Equal
	}
	if cmp, ok := a.(Comparer); ok {
		return cmp.CompareCallable(b)
	}
	return Incomparable
}

func sameCallable(a, b Callable) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Serialize renders c in its canonical textual form.
func Serialize(c Callable) (string, error) {
	s, ok := c.(Serializer)
	if !ok {
		return "", fmt.Errorf("%s: %w", c.Type(), ErrNotSerializable)
	}
	return s.Serialize()
}

// HasInput reports whether c lists name among its attributes.
func HasInput(c Callable, name string) bool {
	for _, in := range c.Inputs() {
		if in.Name == name {
			return true
		}
	}
	return false
}
