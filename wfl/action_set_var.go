package wfl

import (
	"fmt"

	"go.uber.org/zap"
)

// SetVarCallable binds value under key in the active context when executed.
// Each execution re-binds.
type SetVarCallable struct {
	key   string
	value Value
}

func NewSetVar(key string, value Value) *SetVarCallable {
	return &SetVarCallable{key: key, value: value}
}

var setVarAttrs = newAttrTable(TypeSetVar,
	attr("key", func(c *SetVarCallable) Value { return NewString(c.key) }),
	attr("value", func(c *SetVarCallable) Value { return c.value }),
)

func (c *SetVarCallable) Key() string { return c.key }

func (c *SetVarCallable) Value() Value { return c.value }

func (c *SetVarCallable) Type() CallableType { return TypeSetVar }

func (c *SetVarCallable) Get(key string) (Value, error) { return setVarAttrs.get(c, key) }

func (c *SetVarCallable) Set(key string, _ Value) error { return setVarAttrs.set(key) }

func (c *SetVarCallable) Inputs() []Input { return setVarAttrs.list() }

func (c *SetVarCallable) Duplicate() Callable {
	dup := *c
	return &dup
}

func (c *SetVarCallable) Execute(exec *Execution, ctx Callable) (Value, error) {
	if err := ctx.Set(c.key, c.value); err != nil {
		exec.engine.metrics.bindingRejected()
		exec.logger.Debug("set_var binding rejected",
			zap.String("key", c.key),
			zap.Stringer("context", ctx.Type()),
			zap.Error(err),
		)
		return NewNil(), &ActionError{
			Action:   TypeSetVar,
			Callable: ctx,
			Err:      fmt.Errorf("%w: %q: %w", ErrBindingRejected, c.key, err),
		}
	}
	return c.value, nil
}
