package wfl

// PendingCallable defers an expression until it is realized, which lets a
// safe_call guard work that has not been evaluated yet.
type PendingCallable struct {
	expr Expression
}

func NewPending(expr Expression) *PendingCallable {
	return &PendingCallable{expr: expr}
}

func (c *PendingCallable) Type() CallableType { return TypePending }

func (c *PendingCallable) Get(key string) (Value, error) { return NewNil(), notFound(TypePending, key) }

func (c *PendingCallable) Set(key string, _ Value) error { return notFound(TypePending, key) }

func (c *PendingCallable) Inputs() []Input { return nil }

func (c *PendingCallable) Duplicate() Callable { return &PendingCallable{expr: c.expr} }

// Execute evaluates the expression and realizes whatever it produced.
func (c *PendingCallable) Execute(exec *Execution, ctx Callable) (Value, error) {
	val, err := exec.Evaluate(c.expr, ctx)
	if err != nil {
		return NewNil(), err
	}
	return exec.Realize(val, ctx)
}
