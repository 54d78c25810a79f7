package ops

import (
	"regexp"
	"strings"
)

func registerRegexOps(r *Registry) {
	mustRegister(r, "match", opMatch)
	mustRegister(r, "test", opTest)
}

// compileRegex compiles a pattern with the single-letter flags understood by
// the catalog: i (case-insensitive), m (multi-line anchors), s (dot matches
// newline). The g flag is not a regexp property and is handled by callers.
// The grep invert flag v is not a regex flag at all; the grep operations
// strip it before compiling, so here it is as unsupported as any other
// letter.
func compileRegex(pattern, flags string) (*regexp.Regexp, error) {
	var mods strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			mods.WriteRune(f)
		case 'g':
			// caller-handled
		default:
			return nil, argErrorf("unsupported regex flag %q", string(f))
		}
	}

	if mods.Len() > 0 {
		pattern = "(?" + mods.String() + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, argErrorf("invalid regex pattern: %v", err)
	}
	return re, nil
}

// opMatch runs the pattern against the value's text form. With the g flag it
// returns every match; without it, the first match followed by its capture
// groups. No match yields nil.
func opMatch(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("match: pattern is required")
	}
	flags := ""
	if len(args) > 1 {
		flags = args[1]
	}

	re, err := compileRegex(args[0], flags)
	if err != nil {
		return nil, err
	}

	s := toText(value)
	if strings.Contains(flags, "g") {
		found := re.FindAllString(s, -1)
		if found == nil {
			return nil, nil
		}
		out := make([]any, len(found))
		for i, m := range found {
			out[i] = m
		}
		return out, nil
	}

	sub := re.FindStringSubmatch(s)
	if sub == nil {
		return nil, nil
	}
	out := make([]any, len(sub))
	for i, m := range sub {
		out[i] = m
	}
	return out, nil
}

func opTest(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("test: pattern is required")
	}
	flags := ""
	if len(args) > 1 {
		flags = args[1]
	}

	re, err := compileRegex(args[0], flags)
	if err != nil {
		return nil, err
	}
	return re.MatchString(toText(value)), nil
}
