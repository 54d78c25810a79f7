package ops

import (
	"strconv"
	"strings"
)

// String operations coerce their input to text first, the way the rest of
// the catalog coerces through toText. They are all pure functions.

func registerStringOps(r *Registry) {
	mustRegister(r, "trim", opTrim)
	mustRegister(r, "substring", opSubstring)
	mustRegister(r, "toUpperCase", opToUpperCase)
	mustRegister(r, "toLowerCase", opToLowerCase)
	mustRegister(r, "replace", opReplace)
	mustRegister(r, "split", opSplit)
	mustRegister(r, "join", opJoin)
}

func opTrim(value any, args []string, ctx map[string]any) (any, error) {
	return strings.TrimSpace(toText(value)), nil
}

// opSubstring slices by rune offsets: out-of-range offsets clamp, and a
// start beyond end swaps with it rather than failing.
func opSubstring(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("substring: start index is required")
	}

	runes := []rune(toText(value))

	start, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argErrorf("substring: start index %q is not numeric", args[0])
	}

	end := len(runes)
	if len(args) > 1 {
		end, err = strconv.Atoi(args[1])
		if err != nil {
			return nil, argErrorf("substring: end index %q is not numeric", args[1])
		}
	}

	start = clampIndex(start, len(runes))
	end = clampIndex(end, len(runes))
	if start > end {
		start, end = end, start
	}
	return string(runes[start:end]), nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func opToUpperCase(value any, args []string, ctx map[string]any) (any, error) {
	return strings.ToUpper(toText(value)), nil
}

func opToLowerCase(value any, args []string, ctx map[string]any) (any, error) {
	return strings.ToLower(toText(value)), nil
}

// opReplace performs literal, non-regex substring replacement of all
// occurrences.
func opReplace(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 2 {
		return nil, argErrorf("replace: pattern and replacement are required")
	}
	return strings.ReplaceAll(toText(value), args[0], args[1]), nil
}

func opSplit(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("split: separator is required")
	}

	parts := strings.Split(toText(value), args[0])
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func opJoin(value any, args []string, ctx map[string]any) (any, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	sep := ","
	if len(args) > 0 {
		sep = args[0]
	}

	parts := make([]string, len(seq))
	for i, el := range seq {
		parts[i] = toText(el)
	}
	return strings.Join(parts, sep), nil
}
