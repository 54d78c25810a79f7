package ops

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

func registerConvertOps(r *Registry) {
	mustRegister(r, "parseJson", opParseJSON)
	mustRegister(r, "stringify", opStringify)
	mustRegister(r, "parseYaml", opParseYAML)
	mustRegister(r, "parseInt", opParseInt)
	mustRegister(r, "parseFloat", opParseFloat)
}

func opParseJSON(value any, args []string, ctx map[string]any) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(toText(value)), &out); err != nil {
		return nil, &DataFormatError{Msg: "parseJson: malformed JSON", Err: err}
	}
	return out, nil
}

// opStringify serializes the value as JSON. An indent of 0 (or no indent
// argument) produces compact output; stringify and parseJson round-trip any
// JSON-shaped value at indent 0.
func opStringify(value any, args []string, ctx map[string]any) (any, error) {
	indent := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, argErrorf("stringify: indent %q is not numeric", args[0])
		}
		indent = n
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(value); err != nil {
		return nil, &DataFormatError{Msg: "stringify: value is not serializable", Err: err}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// opParseYAML is a deliberately minimal `key: value` line parser: comments
// and blank lines are ignored, lines without a colon are skipped, and
// matching surrounding quotes around a value are stripped. Values stay
// strings. Full YAML documents belong to the geese-file loader, not to the
// pipe catalog.
func opParseYAML(value any, args []string, ctx map[string]any) (any, error) {
	out := map[string]any{}
	for _, line := range strings.Split(toText(value), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		out[key] = stripMatchingQuotes(val)
	}
	return out, nil
}

func stripMatchingQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// opParseInt parses a leading integer out of the value's text form, the
// permissive way: leading whitespace and trailing garbage are tolerated, as
// long as at least one digit parses in the given radix.
func opParseInt(value any, args []string, ctx map[string]any) (any, error) {
	radix := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 2 || n > 36 {
			return nil, argErrorf("parseInt: radix %q is invalid", args[0])
		}
		radix = n
	}

	s := strings.TrimSpace(toText(value))
	neg := false
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}

	end := 0
	for end < len(s) && digitValue(s[end]) >= 0 && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return nil, argErrorf("parseInt: no digits in %q", toText(value))
	}

	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return nil, argErrorf("parseInt: %v", err)
	}
	if neg {
		n = -n
	}
	return n, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func opParseFloat(value any, args []string, ctx map[string]any) (any, error) {
	s := strings.TrimSpace(toText(value))
	// Accept trailing garbage by parsing the longest valid prefix.
	for end := len(s); end > 0; end-- {
		if n, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return n, nil
		}
	}
	return nil, argErrorf("parseFloat: no number in %q", toText(value))
}
