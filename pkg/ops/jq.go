package ops

import (
	"sort"
	"strconv"
)

// JSON-query operations walk and filter decoded JSON values. Object keys
// are reported in sorted order: decoded maps carry no declaration order, and
// sorted output keeps chains deterministic.

func registerJqOps(r *Registry) {
	mustRegister(r, "jqSelect", opJqSelect)
	mustRegister(r, "jqKeys", opJqKeys)
	mustRegister(r, "jqValues", opJqValues)
	mustRegister(r, "jqFilter", opJqFilter)
	mustRegister(r, "jqMap", opJqMap)
	mustRegister(r, "jqLength", opJqLength)
	mustRegister(r, "jqHas", opJqHas)
}

// opJqSelect walks the value by successive keys/indices. A nil intermediate
// short-circuits to nil; indexing into a scalar is an input type error, and
// a non-numeric index against a sequence is an argument error.
func opJqSelect(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("jqSelect: at least one path segment is required")
	}

	cur := value
	for _, key := range args {
		switch t := cur.(type) {
		case nil:
			return nil, nil
		case map[string]any:
			cur = t[key]
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil {
				return nil, argErrorf("jqSelect: index %q is not numeric", key)
			}
			if i < 0 || i >= len(t) {
				return nil, nil
			}
			cur = t[i]
		default:
			return nil, &InputTypeError{Expected: "object or array", Got: cur}
		}
	}
	return cur, nil
}

func opJqKeys(value any, args []string, ctx map[string]any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &InputTypeError{Expected: "object", Got: value}
	}
	keys := sortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out, nil
}

func opJqValues(value any, args []string, ctx map[string]any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &InputTypeError{Expected: "object", Got: value}
	}
	out := make([]any, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// opJqFilter keeps the elements whose property satisfies the comparison.
// The == and != operators use loose coercing equality; === and !== compare
// both sides as strings (current behavior, kept as-is rather than made into
// true strict equality); ordering operators compare numerically.
func opJqFilter(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 3 {
		return nil, argErrorf("jqFilter: property, operator and value are required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	prop, operator, compare := args[0], args[1], args[2]
	switch operator {
	case "==", "!=", "===", "!==", ">", "<", ">=", "<=", "contains":
	default:
		return nil, argErrorf("jqFilter: unknown operator %q", operator)
	}

	out := []any{}
	for _, el := range seq {
		var field any
		if m, ok := el.(map[string]any); ok {
			field = m[prop]
		}
		if jqCompare(field, operator, compare) {
			out = append(out, el)
		}
	}
	return out, nil
}

func jqCompare(field any, operator, compare string) bool {
	switch operator {
	case "==":
		return looseEqual(field, compare)
	case "!=":
		return !looseEqual(field, compare)
	case "===":
		return toText(field) == compare
	case "!==":
		return toText(field) != compare
	case ">", "<", ">=", "<=":
		return compareNumeric(field, compare, operator)
	case "contains":
		return containsValue(field, compare)
	default:
		return false
	}
}

func opJqMap(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("jqMap: property name is required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	out := make([]any, len(seq))
	for i, el := range seq {
		if m, ok := el.(map[string]any); ok {
			out[i] = m[args[0]]
		}
	}
	return out, nil
}

func opJqLength(value any, args []string, ctx map[string]any) (any, error) {
	switch t := value.(type) {
	case []any:
		return len(t), nil
	case map[string]any:
		return len(t), nil
	case string:
		return len([]rune(t)), nil
	default:
		return nil, &InputTypeError{Expected: "array, object or string", Got: value}
	}
}

func opJqHas(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("jqHas: key is required")
	}

	switch t := value.(type) {
	case map[string]any:
		_, ok := t[args[0]]
		return ok, nil
	case []any:
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, argErrorf("jqHas: index %q is not numeric", args[0])
		}
		return i >= 0 && i < len(t), nil
	default:
		return nil, &InputTypeError{Expected: "object or array", Got: value}
	}
}
