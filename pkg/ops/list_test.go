package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOps(t *testing.T) {
	people := []any{
		map[string]any{"name": "ada"},
		map[string]any{"name": "grace"},
	}

	tests := []struct {
		name    string
		op      Func
		value   any
		args    []string
		want    any
		wantErr bool
	}{
		{name: "filter_by_regex", op: opFilter, value: []any{"apple", "banana", "avocado"}, args: []string{"^a"}, want: []any{"apple", "avocado"}},
		{name: "filter_empty_result", op: opFilter, value: []any{"x"}, args: []string{"^z"}, want: []any{}},
		{name: "filter_scalar_input", op: opFilter, value: "nope", args: []string{"a"}, wantErr: true},
		{name: "map_property", op: opMap, value: people, args: []string{"name"}, want: []any{"ada", "grace"}},
		{name: "map_missing_property", op: opMap, value: people, args: []string{"age"}, want: []any{nil, nil}},
		{name: "select_index", op: opSelect, value: []any{"a", "b", "c"}, args: []string{"1"}, want: "b"},
		{name: "select_out_of_range", op: opSelect, value: []any{"a"}, args: []string{"5"}, want: nil},
		{name: "select_non_numeric", op: opSelect, value: []any{"a"}, args: []string{"one"}, wantErr: true},
		{name: "first", op: opFirst, value: []any{"a", "b"}, want: "a"},
		{name: "first_empty", op: opFirst, value: []any{}, want: nil},
		{name: "last", op: opLast, value: []any{"a", "b"}, want: "b"},
		{name: "length_array", op: opLength, value: []any{"a", "b", "c"}, want: 3},
		{name: "length_string", op: opLength, value: "abcd", want: 4},
		{name: "length_number", op: opLength, value: float64(3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.value, tt.args, map[string]any{})
			if tt.wantErr {
				require.Error(t, err, "operation should fail")
				return
			}
			require.NoError(t, err, "operation should succeed")
			assert.Equal(t, tt.want, got, "result should match")
		})
	}
}

func TestListOps_InputTypeError(t *testing.T) {
	_, err := opFirst("scalar", nil, map[string]any{})
	require.Error(t, err, "scalar input should fail")

	var ite *InputTypeError
	require.ErrorAs(t, err, &ite, "error should be InputTypeError")
	assert.Equal(t, "array", ite.Expected, "error should name the expected shape")
}
