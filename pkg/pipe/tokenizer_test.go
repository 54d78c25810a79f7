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

package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		wantErr     bool
		errContains string
		check       func(t *testing.T, chain *Chain)
	}{
		{
			name: "simple_chain",
			expr: `"hello" ~> trim ~> toUpperCase`,
			check: func(t *testing.T, chain *Chain) {
				assert.Equal(t, `"hello"`, chain.Seed, "seed should keep its quoted form")
				require.Len(t, chain.Invocations, 2, "should have 2 invocations")
				assert.Equal(t, "trim", chain.Invocations[0].Name, "first op should be trim")
				assert.Empty(t, chain.Invocations[0].Args, "trim should have no args")
				assert.Equal(t, "toUpperCase", chain.Invocations[1].Name, "second op should be toUpperCase")
			},
		},
		{
			name: "args_split_on_whitespace",
			expr: `value ~> replace foo bar`,
			check: func(t *testing.T, chain *Chain) {
				require.Len(t, chain.Invocations, 1, "should have 1 invocation")
				assert.Equal(t, []string{"foo", "bar"}, chain.Invocations[0].Args, "args should split on whitespace")
			},
		},
		{
			name: "quoted_arg_is_one_token",
			expr: `"a,b" ~> join " | "`,
			check: func(t *testing.T, chain *Chain) {
				require.Len(t, chain.Invocations, 1, "should have 1 invocation")
				assert.Equal(t, []string{" | "}, chain.Invocations[0].Args, "quoted span should be a single token with quotes stripped")
			},
		},
		{
			name: "escaped_quote_inside_arg",
			expr: `x ~> replace "say \"hi\"" greeting`,
			check: func(t *testing.T, chain *Chain) {
				require.Len(t, chain.Invocations, 1, "should have 1 invocation")
				assert.Equal(t, []string{`say "hi"`, "greeting"}, chain.Invocations[0].Args, "escaped quotes should resolve inside the token")
			},
		},
		{
			name: "operator_inside_quotes_does_not_split",
			expr: `"a ~> b" ~> trim`,
			check: func(t *testing.T, chain *Chain) {
				assert.Equal(t, `"a ~> b"`, chain.Seed, "quoted operator should stay inside the seed")
				require.Len(t, chain.Invocations, 1, "should have exactly 1 invocation")
			},
		},
		{
			name: "empty_seed_is_valid",
			expr: ` ~> trim`,
			check: func(t *testing.T, chain *Chain) {
				assert.Equal(t, "", chain.Seed, "empty seed should be allowed")
				require.Len(t, chain.Invocations, 1, "should have 1 invocation")
			},
		},
		{
			name:        "dangling_operator",
			expr:        `"hello" ~> trim ~> `,
			wantErr:     true,
			errContains: "no operation name",
		},
		{
			name:        "unterminated_quote",
			expr:        `"hello ~> trim`,
			wantErr:     true,
			errContains: "unterminated quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := Parse(tt.expr)
			if tt.wantErr {
				require.Error(t, err, "parse should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should explain the problem")
				var serr *SyntaxError
				assert.ErrorAs(t, err, &serr, "error should be a SyntaxError")
				return
			}
			require.NoError(t, err, "parse should succeed")
			tt.check(t, chain)
		})
	}
}

func TestContainsOperator(t *testing.T) {
	assert.True(t, ContainsOperator(`"x" ~> trim`), "chain expression should contain the operator")
	assert.False(t, ContainsOperator("just a value"), "literal should not contain the operator")
}

func TestParseInvocation(t *testing.T) {
	inv, err := ParseInvocation(`replace "old text" new`)
	require.NoError(t, err, "parse should succeed")
	assert.Equal(t, "replace", inv.Name, "name should be the first token")
	assert.Equal(t, []string{"old text", "new"}, inv.Args, "quoted arg should be one token")

	_, err = ParseInvocation("   ")
	require.Error(t, err, "empty step should fail")
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "  hello  ", unquote(`"  hello  "`), "quoted seed should strip quotes and keep inner spaces")
	assert.Equal(t, "plain", unquote("plain"), "unquoted input should pass through")
	assert.Equal(t, `say "hi"`, unquote(`"say \"hi\""`), "escapes should resolve")
	assert.Equal(t, `"`, unquote(`"`), "a lone quote is not a quoted span")
}
