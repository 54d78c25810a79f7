package ops

import (
	"strconv"
)

func registerListOps(r *Registry) {
	mustRegister(r, "filter", opFilter)
	mustRegister(r, "map", opMap)
	mustRegister(r, "select", opSelect)
	mustRegister(r, "first", opFirst)
	mustRegister(r, "last", opLast)
	mustRegister(r, "length", opLength)
}

// opFilter keeps the elements whose text form matches the regex pattern.
func opFilter(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("filter: regex pattern is required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	re, err := compileRegex(args[0], "")
	if err != nil {
		return nil, err
	}

	out := []any{}
	for _, el := range seq {
		if re.MatchString(toText(el)) {
			out = append(out, el)
		}
	}
	return out, nil
}

// opMap projects a property out of each element. Elements that are not
// objects, or that lack the property, project to nil.
func opMap(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("map: property name is required")
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

// opSelect picks an element by index. An index outside the sequence yields
// nil rather than an error, matching element-access semantics elsewhere in
// the catalog.
func opSelect(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("select: index is required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argErrorf("select: index %q is not numeric", args[0])
	}
	if i < 0 || i >= len(seq) {
		return nil, nil
	}
	return seq[i], nil
}

func opFirst(value any, args []string, ctx map[string]any) (any, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}
	if len(seq) == 0 {
		return nil, nil
	}
	return seq[0], nil
}

func opLast(value any, args []string, ctx map[string]any) (any, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}
	if len(seq) == 0 {
		return nil, nil
	}
	return seq[len(seq)-1], nil
}

func opLength(value any, args []string, ctx map[string]any) (any, error) {
	switch t := value.(type) {
	case []any:
		return len(t), nil
	case string:
		return len([]rune(t)), nil
	case map[string]any:
		return len(t), nil
	default:
		return nil, &InputTypeError{Expected: "array or string", Got: value}
	}
}
