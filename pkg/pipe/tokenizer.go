// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pipe implements the chain-expression language: a seed value piped
// left to right through named operations, `seed ~> op1 arg ~> op2`.
package pipe

import (
	"strings"
)

// ⛓️ Operator is the chain operator separating pipe segments.
const Operator = "~>"

// 📦 Invocation is one operation call in a chain: a name plus its ordered
// string arguments.
type Invocation struct {
	Name string
	Args []string
}

// ⛓️ Chain is a parsed pipe expression. Seed keeps its raw (possibly
// quoted) form; unquoting happens at execution time.
type Chain struct {
	Raw         string
	Seed        string
	Invocations []Invocation
}

// 🔍 ContainsOperator reports whether a raw property value is a chain
// expression at all. Properties without the operator are literals and never
// reach the tokenizer.
func ContainsOperator(s string) bool {
	return strings.Contains(s, Operator)
}

// 📝 Parse tokenizes a chain expression: the raw string splits on the chain
// operator (never inside a double-quoted span), the first segment is the
// seed, and every following segment is an operation name with
// whitespace-delimited arguments where quoted spans form single tokens.
func Parse(raw string) (*Chain, error) {
	segments, err := splitSegments(raw)
	if err != nil {
		return nil, err
	}

	chain := &Chain{
		Raw:  raw,
		Seed: strings.TrimSpace(segments[0]),
	}

	for _, seg := range segments[1:] {
		tokens, err := splitTokens(seg)
		if err != nil {
			return nil, &SyntaxError{Expr: raw, Msg: err.Error()}
		}
		if len(tokens) == 0 {
			return nil, &SyntaxError{Expr: raw, Msg: "chain operator with no operation name"}
		}
		chain.Invocations = append(chain.Invocations, Invocation{
			Name: tokens[0],
			Args: tokens[1:],
		})
	}

	return chain, nil
}

// ParseInvocation tokenizes a single operation call, e.g. `replace a b`.
// Used by the custom operation loader for composite step definitions.
func ParseInvocation(s string) (Invocation, error) {
	tokens, err := splitTokens(s)
	if err != nil {
		return Invocation{}, &SyntaxError{Expr: s, Msg: err.Error()}
	}
	if len(tokens) == 0 {
		return Invocation{}, &SyntaxError{Expr: s, Msg: "empty operation step"}
	}
	return Invocation{Name: tokens[0], Args: tokens[1:]}, nil
}

// splitSegments splits on the chain operator while never splitting inside a
// double-quoted span.
func splitSegments(raw string) ([]string, error) {
	var segments []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuotes && c == '\\' && i+1 < len(raw):
			cur.WriteByte(c)
			cur.WriteByte(raw[i+1])
			i++
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case !inQuotes && c == '~' && i+1 < len(raw) && raw[i+1] == '>':
			segments = append(segments, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, &SyntaxError{Expr: raw, Msg: "unterminated quote"}
	}

	segments = append(segments, cur.String())
	return segments, nil
}

// splitTokens splits a segment on whitespace, treating a double-quoted span
// (with \" escapes) as a single token with its quotes stripped.
func splitTokens(seg string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	started := false

	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
			cur.Reset()
			started = false
		}
	}

	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case inQuotes && c == '\\' && i+1 < len(seg):
			next := seg[i+1]
			if next == '"' || next == '\\' {
				cur.WriteByte(next)
				i++
			} else {
				cur.WriteByte(c)
			}
		case c == '"':
			inQuotes = !inQuotes
			started = true
		case !inQuotes && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			flush()
		default:
			cur.WriteByte(c)
			started = true
		}
	}
	if inQuotes {
		return nil, &SyntaxError{Expr: seg, Msg: "unterminated quote"}
	}
	flush()

	return tokens, nil
}

// isQuoted reports whether s is wrapped in double quotes.
func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// unquote strips one level of surrounding double quotes from a seed and
// resolves \" and \\ escapes inside it. Unquoted input passes through.
func unquote(s string) string {
	if !isQuoted(s) {
		return s
	}

	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			b.WriteByte(inner[i+1])
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
