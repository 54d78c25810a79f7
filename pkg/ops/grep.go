package ops

import (
	"regexp"
	"strings"
)

// Text-search operations work on the newline-split lines of the value's
// text form, like their shell namesake.

func registerGrepOps(r *Registry) {
	mustRegister(r, "grep", opGrep)
	mustRegister(r, "grepCount", opGrepCount)
	mustRegister(r, "grepFirst", opGrepFirst)
}

// grepLines compiles pattern/flags from args and returns the lines passing
// the match test. An invert flag argument containing "v" flips the test; a
// "v" in the flags argument inverts too, shell style, and is stripped before
// the pattern compiles.
func grepLines(value any, args []string) ([]string, error) {
	if len(args) < 1 {
		return nil, argErrorf("grep: pattern is required")
	}
	flags := ""
	if len(args) > 1 {
		flags = args[1]
	}
	invert := len(args) > 2 && strings.Contains(args[2], "v")
	if strings.Contains(flags, "v") {
		invert = true
		flags = strings.ReplaceAll(flags, "v", "")
	}

	re, err := compileRegex(args[0], flags)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, line := range strings.Split(toText(value), "\n") {
		if matchLine(re, line) != invert {
			matched = append(matched, line)
		}
	}
	return matched, nil
}

func matchLine(re *regexp.Regexp, line string) bool {
	return re.MatchString(line)
}

func opGrep(value any, args []string, ctx map[string]any) (any, error) {
	matched, err := grepLines(value, args)
	if err != nil {
		return nil, err
	}
	return strings.Join(matched, "\n"), nil
}

func opGrepCount(value any, args []string, ctx map[string]any) (any, error) {
	matched, err := grepLines(value, args)
	if err != nil {
		return nil, err
	}
	return len(matched), nil
}

func opGrepFirst(value any, args []string, ctx map[string]any) (any, error) {
	matched, err := grepLines(value, args)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}
	return matched[0], nil
}
