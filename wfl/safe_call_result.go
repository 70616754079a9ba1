package wfl

// SafeCallResult is the read-only diagnostic produced when a safe_call
// primary fails. It keeps the failing callable alive through a shared handle.
type SafeCallResult struct {
	failed Shared[Callable]
	loc    Location
	status Status
}

// NewSafeCallResult takes a new reference to failed. A zero loc means no
// unit location was in scope.
func NewSafeCallResult(failed Callable, status Status, loc Location) *SafeCallResult {
	return &SafeCallResult{failed: Share(failed, nil), loc: loc, status: status}
}

var safeCallResultAttrs = newAttrTable(TypeSafeCallResult,
	attr("status", func(c *SafeCallResult) Value { return NewInt(int64(c.status)) }),
	attr("object", func(c *SafeCallResult) Value { return NewCallable(c.failed.Value()) }),
	attr("current_loc", func(c *SafeCallResult) Value {
		if !c.loc.Valid() {
			return NewNil()
		}
		return locationValue(c.loc)
	}),
)

func (c *SafeCallResult) Status() Status { return c.status }

func (c *SafeCallResult) Failed() Callable { return c.failed.Value() }

func (c *SafeCallResult) CurrentLocation() (Location, bool) { return c.loc, c.loc.Valid() }

// Release drops this result's reference to the failing callable.
func (c *SafeCallResult) Release() bool { return c.failed.Release() }

func (c *SafeCallResult) Type() CallableType { return TypeSafeCallResult }

func (c *SafeCallResult) Get(key string) (Value, error) { return safeCallResultAttrs.get(c, key) }

func (c *SafeCallResult) Set(key string, _ Value) error { return safeCallResultAttrs.set(key) }

func (c *SafeCallResult) Inputs() []Input { return safeCallResultAttrs.list() }

// Duplicate shares the failing callable with the original.
func (c *SafeCallResult) Duplicate() Callable {
	return &SafeCallResult{failed: c.failed.Retain(), loc: c.loc, status: c.status}
}
