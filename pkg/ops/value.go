package ops

import (
	"fmt"
	"strconv"
	"strings"
)

// Pipe values are the JSON-shaped Go types: string, float64, int, int64,
// bool, nil, []any and map[string]any. The helpers below implement the
// documented coercion rules explicitly instead of leaning on any
// host-language behavior.

// toText coerces a value to its string form: numbers render in their
// shortest decimal form, booleans as "true"/"false", nil as the empty
// string, sequences as comma-joined elements and maps as "[object Object]".
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			parts[i] = toText(el)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toNumber coerces a value to a number where possible.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// looseEqual implements loose equality between a pipe value and a string
// argument: strings compare directly, numbers and booleans compare
// numerically against the parsed argument, sequences compare through their
// comma-joined string form, and nil never equals anything.
func looseEqual(v any, arg string) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t == arg
	case bool, float64, int, int64:
		left, _ := toNumber(t)
		right, ok := toNumber(arg)
		return ok && left == right
	case []any:
		return toText(t) == arg
	case map[string]any:
		return toText(t) == arg
	default:
		return false
	}
}

// compareNumeric evaluates an ordering operator between a pipe value and a
// string argument. Either side failing numeric coercion makes the
// comparison false.
func compareNumeric(v any, arg string, op string) bool {
	left, ok := toNumber(v)
	if !ok {
		return false
	}
	right, ok := toNumber(arg)
	if !ok {
		return false
	}
	switch op {
	case ">":
		return left > right
	case "<":
		return left < right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	default:
		return false
	}
}

// containsValue reports whether v contains arg: sequences test element
// equality via toText, everything else tests substring containment.
func containsValue(v any, arg string) bool {
	if seq, ok := v.([]any); ok {
		for _, el := range seq {
			if toText(el) == arg {
				return true
			}
		}
		return false
	}
	return strings.Contains(toText(v), arg)
}

// typeName names a value's shape for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
