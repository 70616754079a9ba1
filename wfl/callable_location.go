package wfl

import (
	"fmt"
	"strconv"
	"strings"
)

// LocationCallable owns a copy of a map coordinate.
type LocationCallable struct {
	loc Location
}

func NewLocationCallable(loc Location) *LocationCallable {
	return &LocationCallable{loc: loc}
}

var locationAttrs = newAttrTable(TypeLocation,
	attr("x", func(c *LocationCallable) Value { return newIntValue(c.loc.X) }),
	attr("y", func(c *LocationCallable) Value { return newIntValue(c.loc.Y) }),
)

func (c *LocationCallable) Location() Location { return c.loc }

func (c *LocationCallable) Type() CallableType { return TypeLocation }

func (c *LocationCallable) Get(key string) (Value, error) { return locationAttrs.get(c, key) }

func (c *LocationCallable) Set(key string, _ Value) error { return locationAttrs.set(key) }

func (c *LocationCallable) Inputs() []Input { return locationAttrs.list() }

func (c *LocationCallable) Duplicate() Callable { return &LocationCallable{loc: c.loc} }

func (c *LocationCallable) CompareCallable(other Callable) Ordering {
	o, ok := other.(*LocationCallable)
	if !ok {
		return Incomparable
	}
	return compareLocations(c.loc, o.loc)
}

// Serialize renders the location as loc(X,Y).
func (c *LocationCallable) Serialize() (string, error) {
	return fmt.Sprintf("loc(%d,%d)", c.loc.X, c.loc.Y), nil
}

// ParseLocation is the inverse of LocationCallable.Serialize.
func ParseLocation(text string) (*LocationCallable, error) {
	s := strings.TrimSpace(text)
	inner, ok := strings.CutPrefix(s, "loc(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	if !ok {
		return nil, fmt.Errorf("%w: malformed location %q", ErrTypeMismatch, text)
	}
	xs, ys, ok := strings.Cut(inner, ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed location %q", ErrTypeMismatch, text)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil, fmt.Errorf("%w: location x %q: %v", ErrTypeMismatch, xs, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil, fmt.Errorf("%w: location y %q: %v", ErrTypeMismatch, ys, err)
	}
	return NewLocationCallable(Location{X: x, Y: y}), nil
}

func compareLocations(a, b Location) Ordering {
	return thenBy(
		func() Ordering { return orderInts(int64(a.X), int64(b.X)) },
		func() Ordering { return orderInts(int64(a.Y), int64(b.Y)) },
	)
}

func locationValue(loc Location) Value {
	return NewCallable(NewLocationCallable(loc))
}
