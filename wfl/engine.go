package wfl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// EngineConfig controls logging, metrics and execution bounds for an Engine.
type EngineConfig struct {
	Logger     *zap.Logger
	Registerer prometheus.Registerer
	StepQuota  int
}

// Engine holds the shared services used by every evaluation.
type Engine struct {
	config  EngineConfig
	logger  *zap.Logger
	metrics *Metrics
}

// NewEngine constructs an Engine with sane defaults. Metrics register with
// cfg.Registerer, or with a private registry when none is given.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 10000
	}
	return &Engine{
		config:  cfg,
		logger:  cfg.Logger,
		metrics: NewMetrics(cfg.Registerer),
	}
}

func (e *Engine) Metrics() *Metrics { return e.metrics }

// NewExecution starts a single evaluation. Callables created during it must
// not outlive it, except shared handles that were explicitly retained.
func (e *Engine) NewExecution(ctx context.Context) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	return &Execution{
		engine: e,
		ctx:    ctx,
		id:     id,
		quota:  e.config.StepQuota,
		logger: e.logger.With(zap.String("execution_id", id)),
	}
}

// Execution is the per-evaluation state threaded through actions and
// expressions. It is not safe for concurrent use.
type Execution struct {
	engine *Engine
	ctx    context.Context
	id     string
	quota  int
	steps  int
	logger *zap.Logger
	held   []releaser
}

type releaser interface{ Release() bool }

// hold keeps r alive until the execution is closed.
func (exec *Execution) hold(r releaser) { exec.held = append(exec.held, r) }

// Close releases every handle the evaluation still holds, newest first.
// Values that must outlive it need their own reference, taken with Duplicate.
func (exec *Execution) Close() {
	for i := len(exec.held) - 1; i >= 0; i-- {
		exec.held[i].Release()
	}
	exec.held = nil
}

func (exec *Execution) ID() string { return exec.id }

func (exec *Execution) Steps() int { return exec.steps }

func (exec *Execution) Context() context.Context { return exec.ctx }

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
	}
	return nil
}

// Evaluate runs expr against ctx.
func (exec *Execution) Evaluate(expr Expression, ctx Callable) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	return expr.Evaluate(exec, ctx)
}

// Execute runs an action against ctx. Failures are wrapped in an ActionError
// that remembers ctx as the callable active at the point of failure.
func (exec *Execution) Execute(action Action, ctx Callable) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNil(), err
	}
	exec.engine.metrics.actionExecuted(action.Type())
	val, err := action.Execute(exec, ctx)
	if err != nil {
		if isHostControlSignal(err) {
			return NewNil(), err
		}
		var actionErr *ActionError
		if errors.As(err, &actionErr) {
			return NewNil(), err
		}
		return NewNil(), &ActionError{Action: action.Type(), Callable: ctx, Err: err}
	}
	return val, nil
}

// Realize turns a possibly pending value into a plain one: actions are
// executed, arrays are realized element by element, anything else is
// returned unchanged.
func (exec *Execution) Realize(val Value, ctx Callable) (Value, error) {
	switch val.Kind() {
	case KindCallable:
		if action, ok := val.Callable().(Action); ok {
			return exec.Execute(action, ctx)
		}
		return val, nil
	case KindArray:
		items := val.Array()
		out := make([]Value, len(items))
		for i, item := range items {
			realized, err := exec.Realize(item, ctx)
			if err != nil {
				return NewNil(), err
			}
			out[i] = realized
		}
		return NewArray(out), nil
	default:
		return val, nil
	}
}

// isHostControlSignal reports failures that belong to the host rather than
// the formula; safe_call never converts them into diagnostics.
func isHostControlSignal(err error) bool {
	return errors.Is(err, errStepQuotaExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
