package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	got, err := opParseJSON(`{"a": [1, 2], "b": "x"}`, nil, map[string]any{})
	require.NoError(t, err, "parse should succeed")
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}, "b": "x"}, got, "decoded value should match")

	_, err = opParseJSON("{not json", nil, map[string]any{})
	require.Error(t, err, "malformed JSON should fail")
	var dfe *DataFormatError
	assert.ErrorAs(t, err, &dfe, "error should be DataFormatError")
}

func TestStringify_RoundTrip(t *testing.T) {
	values := []any{
		map[string]any{"name": "goose", "count": float64(3)},
		[]any{"a", float64(1), true, nil},
		"plain string",
		float64(42),
	}

	for _, v := range values {
		s, err := opStringify(v, []string{"0"}, map[string]any{})
		require.NoError(t, err, "stringify should succeed")

		back, err := opParseJSON(s, nil, map[string]any{})
		require.NoError(t, err, "parse should succeed")
		assert.Equal(t, v, back, "parseJson(stringify(v, 0)) should round-trip")
	}
}

func TestStringify_Indent(t *testing.T) {
	s, err := opStringify(map[string]any{"a": float64(1)}, []string{"2"}, map[string]any{})
	require.NoError(t, err, "stringify should succeed")
	assert.Equal(t, "{\n  \"a\": 1\n}", s, "indent should apply")

	_, err = opStringify(nil, []string{"two"}, map[string]any{})
	require.Error(t, err, "non-numeric indent should fail")
}

func TestParseYAML_Minimal(t *testing.T) {
	input := `
# a comment
name: goose

title: "quoted value"
motto: 'single quoted'
a line with no separator at all
ratio: 3:2
`
	got, err := opParseYAML(input, nil, map[string]any{})
	require.NoError(t, err, "parse should succeed")

	m, ok := got.(map[string]any)
	require.True(t, ok, "result should be a map")
	assert.Equal(t, "goose", m["name"], "plain value should parse")
	assert.Equal(t, "quoted value", m["title"], "double quotes should strip")
	assert.Equal(t, "single quoted", m["motto"], "single quotes should strip")
	assert.Equal(t, "3:2", m["ratio"], "only the first colon splits")
	assert.NotContains(t, m, "# a comment", "comments should be ignored")
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		args    []string
		want    int64
		wantErr bool
	}{
		{name: "plain", value: "42", want: 42},
		{name: "negative", value: "-7", want: -7},
		{name: "leading_whitespace", value: "  12", want: 12},
		{name: "trailing_garbage", value: "12abc", want: 12},
		{name: "radix_16", value: "ff", args: []string{"16"}, want: 255},
		{name: "radix_16_with_prefix", value: "0xff", args: []string{"16"}, want: 255},
		{name: "radix_2", value: "1012", args: []string{"2"}, want: 5},
		{name: "no_digits", value: "abc", wantErr: true},
		{name: "bad_radix", value: "1", args: []string{"99"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opParseInt(tt.value, tt.args, map[string]any{})
			if tt.wantErr {
				require.Error(t, err, "parseInt should fail")
				return
			}
			require.NoError(t, err, "parseInt should succeed")
			assert.Equal(t, tt.want, got, "parsed value should match")
		})
	}
}

func TestParseFloat(t *testing.T) {
	got, err := opParseFloat("3.14 apples", nil, map[string]any{})
	require.NoError(t, err, "parseFloat should succeed")
	assert.Equal(t, 3.14, got, "longest numeric prefix should parse")

	_, err = opParseFloat("apples", nil, map[string]any{})
	require.Error(t, err, "non-numeric input should fail")
}
