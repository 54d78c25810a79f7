package oploader

import (
	"plugin"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/ops"
)

// loadPlugin opens a shared-library definition and resolves its exported
// `Operation` symbol, which must have the operation signature. Both a
// function symbol and a package-level variable of the function type are
// accepted.
func loadPlugin(path string) (ops.Func, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening plugin: %w", err)
	}

	sym, err := p.Lookup("Operation")
	if err != nil {
		return nil, errors.Errorf("plugin has no Operation symbol: %w", err)
	}

	switch fn := sym.(type) {
	case func(any, []string, map[string]any) (any, error):
		return ops.Func(fn), nil
	case *func(any, []string, map[string]any) (any, error):
		return ops.Func(*fn), nil
	case ops.Func:
		return fn, nil
	case *ops.Func:
		return *fn, nil
	default:
		return nil, errors.Errorf("plugin Operation symbol has wrong type %T", sym)
	}
}
