package pipe

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/ops"
)

// 🎮 Executor threads values through parsed chains, consulting an explicit
// operation registry. The engine is synchronous: no operation suspends, and
// readFile-style built-ins block on purpose so that operations compose as
// plain functions.
type Executor struct {
	reg *ops.Registry
}

// 🏭 NewExecutor creates an executor over the given registry.
func NewExecutor(reg *ops.Registry) (*Executor, error) {
	if reg == nil {
		return nil, errors.New("registry is required")
	}
	return &Executor{reg: reg}, nil
}

// Registry returns the registry the executor resolves operations against.
func (e *Executor) Registry() *ops.Registry {
	return e.reg
}

// 🏃 Execute evaluates a chain expression against the resolution context.
// An expression without the chain operator returns its seed unchanged
// (after literal unquoting) with no registry lookups at all. In a chain, an
// unquoted seed naming a context property resolves to that property's
// current value, which is how `content ~> trim` reads the target file; a
// quoted seed is always the literal it quotes. The seed then threads through
// each invocation strictly left to right; the first failing operation aborts
// the chain, and the failure names that operation.
func (e *Executor) Execute(ctx context.Context, expr string, pctx map[string]any) (any, error) {
	if !ContainsOperator(expr) {
		return unquote(expr), nil
	}

	chain, err := Parse(expr)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)

	value := seedValue(chain.Seed, pctx)
	for _, inv := range chain.Invocations {
		value, err = e.ExecuteOp(ctx, inv.Name, value, inv.Args, pctx)
		if err != nil {
			return nil, err
		}
		logger.Trace().Str("op", inv.Name).Msg("chain segment applied")
	}
	return value, nil
}

// seedValue resolves a chain's seed. Quoting makes the intent explicit: a
// quoted seed is the literal it quotes even when a context property shares
// its name, while an unquoted seed is a context reference first and a
// literal string only when no such property exists.
func seedValue(seed string, pctx map[string]any) any {
	if isQuoted(seed) {
		return unquote(seed)
	}
	if v, ok := pctx[seed]; ok {
		return v
	}
	return seed
}

// 🏃 ExecuteOp applies a single operation to an already-held value. Callers
// that have parsed values in hand (custom-operation tests, composite
// operations) use this directly.
func (e *Executor) ExecuteOp(ctx context.Context, name string, value any, args []string, pctx map[string]any) (any, error) {
	fn, err := e.reg.Get(name)
	if err != nil {
		return nil, err
	}

	out, err := fn(value, args, pctx)
	if err != nil {
		return nil, errors.Errorf("%s: %w", name, err)
	}
	return out, nil
}
