package ops

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/walteh/geese/pkg/target"
)

// Glob operations share their matching semantics with the target file
// collector: doublestar patterns, dotfiles matched by default.

func registerGlobOps(r *Registry) {
	mustRegister(r, "globMatch", opGlobMatch)
	mustRegister(r, "globFilter", opGlobFilter)
	mustRegister(r, "globFilterMulti", opGlobFilterMulti)
	mustRegister(r, "globExtract", opGlobExtract)
}

func globMatches(pattern, path, flags string) (bool, error) {
	if strings.Contains(flags, "i") {
		pattern = strings.ToLower(pattern)
		path = strings.ToLower(path)
	}
	matched, err := doublestar.Match(pattern, path)
	if err != nil {
		return false, argErrorf("invalid glob pattern %q", pattern)
	}
	return matched, nil
}

func opGlobMatch(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("globMatch: pattern is required")
	}
	flags := ""
	if len(args) > 1 {
		flags = args[1]
	}
	return globMatches(args[0], toText(value), flags)
}

// opGlobFilter keeps (include, the default) or drops (exclude) the elements
// of a path list matching the pattern.
func opGlobFilter(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("globFilter: pattern is required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	mode := "include"
	if len(args) > 1 {
		mode = args[1]
	}
	if mode != "include" && mode != "exclude" {
		return nil, argErrorf("globFilter: mode must be include or exclude, got %q", mode)
	}

	out := []any{}
	for _, el := range seq {
		matched, err := globMatches(args[0], toText(el), "")
		if err != nil {
			return nil, err
		}
		if matched == (mode == "include") {
			out = append(out, el)
		}
	}
	return out, nil
}

// opGlobFilterMulti applies a full include/exclude pattern-list pair to a
// path list: include patterns union, exclude patterns subtract, exclude
// always wins. Pattern lists arrive as CSV or JSON-array strings.
func opGlobFilterMulti(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("globFilterMulti: include pattern list is required")
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &InputTypeError{Expected: "array", Got: value}
	}

	includes, err := target.ParsePatternList(args[0])
	if err != nil {
		return nil, argErrorf("globFilterMulti: %v", err)
	}
	var excludes []string
	if len(args) > 1 {
		excludes, err = target.ParsePatternList(args[1])
		if err != nil {
			return nil, argErrorf("globFilterMulti: %v", err)
		}
	}

	out := []any{}
	for _, el := range seq {
		path := toText(el)
		included, err := anyGlobMatch(includes, path)
		if err != nil {
			return nil, err
		}
		if !included {
			continue
		}
		excluded, err := anyGlobMatch(excludes, path)
		if err != nil {
			return nil, err
		}
		if !excluded {
			out = append(out, el)
		}
	}
	return out, nil
}

func anyGlobMatch(patterns []string, path string) (bool, error) {
	for _, p := range patterns {
		matched, err := globMatches(p, path, "")
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// opGlobExtract pulls out the text matched by the first wildcard of the
// pattern: `src/*.go` over `src/main.go` extracts `main`. A list input
// extracts per element, dropping the ones that do not match. No match on a
// string input yields nil.
func opGlobExtract(value any, args []string, ctx map[string]any) (any, error) {
	if len(args) < 1 {
		return nil, argErrorf("globExtract: pattern is required")
	}

	re, err := globCaptureRegex(args[0])
	if err != nil {
		return nil, err
	}

	if seq, ok := value.([]any); ok {
		out := []any{}
		for _, el := range seq {
			if sub := re.FindStringSubmatch(toText(el)); sub != nil && len(sub) > 1 {
				out = append(out, sub[1])
			}
		}
		return out, nil
	}

	sub := re.FindStringSubmatch(toText(value))
	if sub == nil || len(sub) < 2 {
		return nil, nil
	}
	return sub[1], nil
}

// globCaptureRegex translates a glob into an anchored regexp whose wildcard
// segments become capture groups.
func globCaptureRegex(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	i := 0
	for i < len(pattern) {
		switch {
		case strings.HasPrefix(pattern[i:], "**"):
			b.WriteString("(.*?)")
			i += 2
			// swallow a separator directly after ** so `a/**/b` matches `a/b`
			if i < len(pattern) && pattern[i] == '/' {
				b.WriteString("/?")
				i++
			}
		case pattern[i] == '*':
			b.WriteString("([^/]*)")
			i++
		case pattern[i] == '?':
			b.WriteString("([^/])")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, argErrorf("invalid glob pattern %q", pattern)
	}
	return re, nil
}
