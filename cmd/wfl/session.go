package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/mgomes/wfl/scenario"
	"github.com/mgomes/wfl/wfl"
	"go.uber.org/zap"
)

// session holds the loaded world and a scope of local assignments layered
// over the world bindings. Locals survive reloads.
type session struct {
	path   string
	me     string
	engine *wfl.Engine
	world  *scenario.World
	locals *wfl.Vars
	scope  wfl.Callable
	logger *zap.Logger
}

func newSession(path, me string, logger *zap.Logger) (*session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &session{
		path:   path,
		me:     me,
		engine: wfl.NewEngine(wfl.EngineConfig{Logger: logger}),
		locals: wfl.NewVars(),
		logger: logger,
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) reload() error {
	world, err := scenario.Load(s.path)
	if err != nil {
		return err
	}
	bindings, err := world.Bindings(s.me)
	if err != nil {
		return err
	}
	s.world = world
	s.scope = wfl.Chain(s.locals, wfl.ReadOnly(bindings))
	s.logger.Debug("scenario loaded",
		zap.String("path", s.path),
		zap.String("name", world.Name),
		zap.String("me", s.me),
	)
	return nil
}

func (s *session) resetLocals() {
	s.locals = wfl.NewVars()
	if chain, ok := s.scope.(*wfl.ChainCallable); ok {
		s.scope = wfl.Chain(s.locals, chain.Fallback())
	}
}

// run evaluates one line. "name = query" binds a local through set_var,
// "query ?? backup" guards the query with safe_call, anything else is a
// plain query.
func (s *session) run(ctx context.Context, line string) (wfl.Value, error) {
	exec := s.engine.NewExecution(ctx)
	defer exec.Close()
	if name, rhs, ok := splitAssignment(line); ok {
		val, err := s.query(exec, rhs)
		if err != nil {
			return wfl.NewNil(), err
		}
		return exec.Execute(wfl.NewSetVar(name, val), s.scope)
	}
	return s.query(exec, line)
}

func (s *session) query(exec *wfl.Execution, text string) (wfl.Value, error) {
	if main, backup, ok := strings.Cut(text, "??"); ok {
		call := wfl.NewSafeCall(wfl.NewCallable(wfl.NewPending(parseTerm(main))), parseTerm(backup))
		return exec.Execute(call, s.scope)
	}
	return exec.Evaluate(parseTerm(text), s.scope)
}

// parseTerm reads a literal (integer, quoted string, bool, nil, loc(x,y))
// or falls back to a dotted path.
func parseTerm(text string) wfl.Expression {
	text = strings.TrimSpace(text)
	switch text {
	case "nil":
		return wfl.Literal(wfl.NewNil())
	case "true", "false":
		return wfl.Literal(wfl.NewBool(text == "true"))
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return wfl.Literal(wfl.NewInt(n))
	}
	if str, err := strconv.Unquote(text); err == nil {
		return wfl.Literal(wfl.NewString(str))
	}
	if strings.HasPrefix(text, "loc(") {
		return wfl.ExpressionFunc(func(*wfl.Execution, wfl.Callable) (wfl.Value, error) {
			loc, err := wfl.ParseLocation(text)
			if err != nil {
				return wfl.NewNil(), err
			}
			return wfl.NewCallable(loc), nil
		})
	}
	return wfl.ExpressionFunc(func(_ *wfl.Execution, ctx wfl.Callable) (wfl.Value, error) {
		return wfl.ResolvePath(ctx, text)
	})
}

func splitAssignment(line string) (string, string, bool) {
	name, rhs, ok := strings.Cut(line, "=")
	if !ok || strings.HasPrefix(rhs, "=") {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if !isValidIdentifier(name) {
		return "", "", false
	}
	return name, rhs, true
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_') {
				return false
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
				return false
			}
		}
	}
	return true
}
