package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		args    []string
		want    any
		wantErr bool
	}{
		{name: "star_matches", value: "main.go", args: []string{"*.go"}, want: true},
		{name: "star_does_not_cross_separator", value: "pkg/main.go", args: []string{"*.go"}, want: false},
		{name: "doublestar_crosses_separator", value: "pkg/a/b/main.go", args: []string{"**/*.go"}, want: true},
		{name: "case_insensitive_flag", value: "README.MD", args: []string{"*.md", "i"}, want: true},
		{name: "dotfile_matches", value: ".env", args: []string{"*"}, want: true},
		{name: "bad_pattern", value: "x", args: []string{"[unclosed"}, wantErr: true},
		{name: "missing_pattern", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opGlobMatch(tt.value, tt.args, map[string]any{})
			if tt.wantErr {
				require.Error(t, err, "globMatch should fail")
				return
			}
			require.NoError(t, err, "globMatch should succeed")
			assert.Equal(t, tt.want, got, "match result should match")
		})
	}
}

func TestGlobFilter(t *testing.T) {
	paths := []any{"a.js", "a.test.js", "b.ts"}

	got, err := opGlobFilter(paths, []string{"*.js"}, map[string]any{})
	require.NoError(t, err, "globFilter should succeed")
	assert.Equal(t, []any{"a.js", "a.test.js"}, got, "include mode should keep matches")

	got, err = opGlobFilter(paths, []string{"*.test.js", "exclude"}, map[string]any{})
	require.NoError(t, err, "globFilter should succeed")
	assert.Equal(t, []any{"a.js", "b.ts"}, got, "exclude mode should drop matches")

	_, err = opGlobFilter(paths, []string{"*.js", "sideways"}, map[string]any{})
	require.Error(t, err, "invalid mode should fail")
}

func TestGlobFilterMulti(t *testing.T) {
	paths := []any{"a.js", "a.test.js", "b.ts", "c.jsx"}

	tests := []struct {
		name string
		args []string
		want []any
	}{
		{
			name: "csv_patterns",
			args: []string{"*.js, *.jsx", "*.test.js"},
			want: []any{"a.js", "c.jsx"},
		},
		{
			name: "json_array_patterns",
			args: []string{`["*.js", "*.ts"]`, `["*.test.js"]`},
			want: []any{"a.js", "b.ts"},
		},
		{
			name: "no_excludes",
			args: []string{"*.ts"},
			want: []any{"b.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opGlobFilterMulti(paths, tt.args, map[string]any{})
			require.NoError(t, err, "globFilterMulti should succeed")
			assert.Equal(t, tt.want, got, "exclude should always win over include")
		})
	}
}

func TestGlobExtract(t *testing.T) {
	got, err := opGlobExtract("src/main.go", []string{"src/*.go"}, map[string]any{})
	require.NoError(t, err, "globExtract should succeed")
	assert.Equal(t, "main", got, "first wildcard capture should extract")

	got, err = opGlobExtract("src/deep/tree/main.go", []string{"src/**/*.go"}, map[string]any{})
	require.NoError(t, err, "globExtract should succeed")
	assert.Equal(t, "deep/tree", got, "doublestar should capture across separators")

	got, err = opGlobExtract("main.rs", []string{"*.go"}, map[string]any{})
	require.NoError(t, err, "globExtract should succeed")
	assert.Nil(t, got, "no match should yield nil")

	got, err = opGlobExtract([]any{"a.go", "b.rs", "c.go"}, []string{"*.go"}, map[string]any{})
	require.NoError(t, err, "globExtract should succeed")
	assert.Equal(t, []any{"a", "c"}, got, "list input should extract per element, dropping non-matches")
}
