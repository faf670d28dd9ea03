package combat

import (
	"go.uber.org/zap"
)

// Engine resolves actions and effects against combat state. It holds only
// read-only collaborators, so one Engine can serve any number of runs.
type Engine struct {
	reg      *Registry
	logger   *zap.Logger
	handSize int
}

type Option func(*Engine)

// WithLogger sets the diagnostics logger. Ignored actions and missed
// lookups are reported at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHandSize sets the number of cards drawn at the start of each turn.
func WithHandSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.handSize = n
		}
	}
}

func NewEngine(reg *Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:      reg,
		logger:   zap.NewNop(),
		handSize: DefaultHandSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the content registry the engine reads.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Execute runs one effect against the combat, mutating it in place. Nested
// effects observe every mutation made before them.
func (e *Engine) Execute(st *CombatState, eff Effect, ctx EffectContext) {
	if st == nil || eff == nil {
		return
	}
	eff.apply(e, st, ctx)
}

// ExecuteAll runs effects in order.
func (e *Engine) ExecuteAll(st *CombatState, effs []Effect, ctx EffectContext) {
	for _, eff := range effs {
		e.Execute(st, eff, ctx)
	}
}

// skip records a no-op caused by a bad reference or failed precondition.
func (e *Engine) skip(reason string, fields ...zap.Field) {
	e.logger.Debug(reason, fields...)
}
