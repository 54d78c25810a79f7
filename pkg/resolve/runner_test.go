package resolve

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/geese/pkg/geesefile"
)

// fixtureDir lays out a working directory with the given file contents.
func fixtureDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755), "creating parent dirs")
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644), "writing fixture %s", name)
	}
	return dir
}

func TestRun_ResolvesEachTarget(t *testing.T) {
	dir := fixtureDir(t, map[string]string{
		"a.txt":      "  alpha  ",
		"b.txt":      "  beta  ",
		"skip.md":    "not a target",
		"c.test.txt": "excluded",
	})

	b, _ := newBuilder(t)
	gf := &geesefile.File{
		Name: "app.yaml",
		Dir:  dir,
		Properties: []geesefile.Property{
			{Name: "$include", IsSystem: true, Raw: "*.txt"},
			{Name: "$exclude", IsSystem: true, Raw: "*.test.txt"},
			{Name: "clean", Raw: "content ~> trim"},
		},
		System: map[string]any{"$include": "*.txt", "$exclude": "*.test.txt"},
	}

	report, err := Run(context.Background(), Options{GeeseFile: gf, Builder: b})
	require.NoError(t, err, "run should succeed")

	require.Len(t, report.Results, 2, "two targets after exclusion")
	assert.Empty(t, report.Failed(), "no file should fail")

	byName := map[string]map[string]any{}
	for _, res := range report.Results {
		byName[filepath.Base(res.Path)] = res.Context
	}
	assert.Equal(t, "alpha", byName["a.txt"]["clean"], "a.txt resolves against its own content")
	assert.Equal(t, "beta", byName["b.txt"]["clean"], "b.txt resolves against its own content")
}

func TestRun_PerFileFailureIsolation(t *testing.T) {
	dir := fixtureDir(t, map[string]string{
		"good.json": `{"ok": true}`,
		"bad.json":  `{not json`,
	})

	b, _ := newBuilder(t)
	gf := &geesefile.File{
		Name: "app.yaml",
		Dir:  dir,
		Properties: []geesefile.Property{
			{Name: "$include", IsSystem: true, Raw: "*.json"},
			{Name: "parsed", Raw: "content ~> parseJson"},
		},
		System: map[string]any{"$include": "*.json"},
	}

	report, err := Run(context.Background(), Options{GeeseFile: gf, Builder: b})
	require.NoError(t, err, "one bad file must not fail the run")

	require.Len(t, report.Results, 2, "both targets reported")
	failed := report.Failed()
	require.Len(t, failed, 1, "exactly the bad file fails")
	assert.Equal(t, "bad.json", filepath.Base(failed[0].Path), "failure names the file")
	assert.Contains(t, failed[0].Err.Error(), `"parsed"`, "failure names the property")

	ok := report.Succeeded()
	require.Len(t, ok, 1, "the good file still resolves")
	assert.Equal(t, map[string]any{"ok": true}, ok[0].Context["parsed"], "good file's context is complete")
}

func TestRun_Parallel(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".txt"] = "  " + name + "  "
	}
	dir := fixtureDir(t, files)

	b, _ := newBuilder(t)
	gf := &geesefile.File{
		Name: "app.yaml",
		Dir:  dir,
		Properties: []geesefile.Property{
			{Name: "$include", IsSystem: true, Raw: "*.txt"},
			{Name: "clean", Raw: "content ~> trim"},
		},
		System: map[string]any{"$include": "*.txt"},
	}

	report, err := Run(context.Background(), Options{GeeseFile: gf, Builder: b, Parallel: 4})
	require.NoError(t, err, "parallel run should succeed")
	require.Len(t, report.Results, len(files), "every target reported")

	for _, res := range report.Results {
		require.NoError(t, res.Err, "no file should fail")
		name := filepath.Base(res.Path)
		want := name[:len(name)-len(".txt")]
		assert.Equal(t, want, res.Context["clean"], "file %s resolves independently", name)
	}
}

func TestRun_WorkDirOverride(t *testing.T) {
	geeseDir := t.TempDir()
	workDir := fixtureDir(t, map[string]string{"only.txt": "here"})

	b, _ := newBuilder(t)
	gf := &geesefile.File{
		Name:   "app.yaml",
		Dir:    geeseDir,
		System: map[string]any{"$include": "*.txt"},
	}

	report, err := Run(context.Background(), Options{GeeseFile: gf, Builder: b, WorkDir: workDir})
	require.NoError(t, err, "run should succeed")
	require.Len(t, report.Results, 1, "target found under the override dir")
	assert.Equal(t, "only.txt", filepath.Base(report.Results[0].Path), "override dir wins over the geese file dir")
}

func TestRun_NoTargets(t *testing.T) {
	b, _ := newBuilder(t)
	gf := &geesefile.File{Name: "app.yaml", Dir: t.TempDir()}

	report, err := Run(context.Background(), Options{GeeseFile: gf, Builder: b})
	require.NoError(t, err, "no $include means an empty run, not an error")
	assert.Empty(t, report.Results, "nothing to resolve")
}

func TestRun_InputValidation(t *testing.T) {
	b, _ := newBuilder(t)

	_, err := Run(context.Background(), Options{Builder: b})
	require.Error(t, err, "geese file is required")

	_, err = Run(context.Background(), Options{GeeseFile: &geesefile.File{}})
	require.Error(t, err, "builder is required")
}
