package target

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📋 ParsePatternList normalizes the accepted shapes of a glob pattern list:
// a string slice, a sequence of values, a JSON-array string, or a
// comma-separated string. Used for $include/$exclude values and by the
// globFilterMulti operation.
func ParsePatternList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			s, ok := el.(string)
			if !ok {
				return nil, errors.Errorf("pattern list element %v is not a string", el)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return parsePatternString(t)
	default:
		return nil, errors.Errorf("pattern list has unsupported type %T", v)
	}
}

func parsePatternString(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.HasPrefix(s, "[") {
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, errors.Errorf("parsing JSON pattern list: %w", err)
		}
		return out, nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// String renders a pattern list the way it appears in config output.
func PatternListString(patterns []string) string {
	return fmt.Sprintf("[%s]", strings.Join(patterns, ", "))
}
