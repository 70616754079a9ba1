package wfl

import "fmt"

// Ordering is the outcome of a three-way comparison.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
	Incomparable
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "incomparable"
	}
}

func orderInts(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func orderStrings(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// thenBy chains tie-breakers: the first non-equal ordering wins.
func thenBy(orders ...func() Ordering) Ordering {
	for _, next := range orders {
		if o := next(); o != Equal {
			return o
		}
	}
	return Equal
}

// CompareValues orders two values of compatible kinds. Arrays compare
// lexicographically; callables use the callable comparison contract.
func CompareValues(left, right Value) (Ordering, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return orderInts(left.Int(), right.Int()), nil
	case isNumeric(left) && isNumeric(right):
		switch {
		case left.Float() < right.Float():
			return Less, nil
		case left.Float() > right.Float():
			return Greater, nil
		default:
			return Equal, nil
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		return orderStrings(left.String(), right.String()), nil
	case left.Kind() == KindBool && right.Kind() == KindBool:
		switch {
		case !left.Bool() && right.Bool():
			return Less, nil
		case left.Bool() && !right.Bool():
			return Greater, nil
		default:
			return Equal, nil
		}
	case left.Kind() == KindArray && right.Kind() == KindArray:
		a, b := left.Array(), right.Array()
		for i := 0; i < len(a) && i < len(b); i++ {
			o, err := CompareValues(a[i], b[i])
			if err != nil {
				return Incomparable, err
			}
			if o != Equal {
				return o, nil
			}
		}
		return orderInts(int64(len(a)), int64(len(b))), nil
	case left.Kind() == KindCallable && right.Kind() == KindCallable:
		o := Compare(left.Callable(), right.Callable())
		if o == Incomparable {
			return o, fmt.Errorf("%w: %s and %s are not comparable", ErrTypeMismatch, left.Callable().Type(), right.Callable().Type())
		}
		return o, nil
	case left.Kind() == KindNil && right.Kind() == KindNil:
		return Equal, nil
	default:
		return Incomparable, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, left.Kind(), right.Kind())
	}
}
