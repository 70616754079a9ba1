package wfl

import "go.uber.org/zap"

// SafeCallCallable realizes main and, if that fails, evaluates backup with a
// SafeCallResult describing the failure in scope. There is a single level of
// fallback: a failing backup propagates.
type SafeCallCallable struct {
	main         Value
	backup       Expression
	backupResult Value
}

func NewSafeCall(main Value, backup Expression) *SafeCallCallable {
	return &SafeCallCallable{main: main, backup: backup}
}

var safeCallAttrs = newAttrTable(TypeSafeCall,
	attr("main", func(c *SafeCallCallable) Value { return c.main }),
	attr("backup", func(c *SafeCallCallable) Value { return c.backupResult }),
)

func (c *SafeCallCallable) Main() Value { return c.main }

func (c *SafeCallCallable) Backup() Expression { return c.backup }

// BackupResult is the value produced by the last backup evaluation.
func (c *SafeCallCallable) BackupResult() Value { return c.backupResult }

func (c *SafeCallCallable) Type() CallableType { return TypeSafeCall }

func (c *SafeCallCallable) Get(key string) (Value, error) { return safeCallAttrs.get(c, key) }

func (c *SafeCallCallable) Set(key string, _ Value) error { return safeCallAttrs.set(key) }

func (c *SafeCallCallable) Inputs() []Input { return safeCallAttrs.list() }

func (c *SafeCallCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

func (c *SafeCallCallable) Execute(exec *Execution, ctx Callable) (Value, error) {
	val, err := exec.Realize(c.main, ctx)
	if err == nil {
		return val, nil
	}
	if isHostControlSignal(err) || c.backup == nil {
		return NewNil(), err
	}

	failed := failingCallable(err)
	if failed == nil {
		failed = ctx
	}
	status := StatusOf(err)
	result := NewSafeCallResult(failed, status, currentUnitLocation(ctx))
	exec.hold(result)

	exec.engine.metrics.safeCallFallback(status)
	exec.logger.Debug("safe_call primary failed, evaluating backup",
		zap.Stringer("status", status),
		zap.Stringer("failed", failed.Type()),
		zap.Error(err),
	)

	backupVal, err := exec.Evaluate(c.backup, Chain(result, ctx))
	if err != nil {
		return NewNil(), err
	}
	c.backupResult = backupVal
	return backupVal, nil
}

// currentUnitLocation reports where the unit bound to "me" stands, if any.
func currentUnitLocation(ctx Callable) Location {
	me, err := ctx.Get("me")
	if err != nil {
		return Location{}
	}
	if u, ok := me.Callable().(*UnitCallable); ok {
		return u.Location()
	}
	return Location{}
}
