package ops

import (
	"fmt"
)

func registerUtilOps(r *Registry) {
	mustRegister(r, "default", opDefault)

	// echo closes over the registry to reach its debug writer. It is the one
	// built-in with an observable side effect: it prints the value flowing
	// through without altering it or the context.
	mustRegister(r, "echo", func(value any, args []string, ctx map[string]any) (any, error) {
		fmt.Fprintln(r.debugWriter(), toText(value))
		return value, nil
	})
}

// opDefault substitutes the fallback when the incoming value is empty: nil
// or the empty string. Everything else passes through untouched, zero
// numbers and false included.
func opDefault(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("default: fallback value is required")
	}

	if value == nil {
		return args[0], nil
	}
	if s, ok := value.(string); ok && s == "" {
		return args[0], nil
	}
	return value, nil
}
