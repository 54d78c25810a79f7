package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFileResolution(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name       string
		resolution FileResolution
		symbol     string
	}{
		{
			name:       "resolved",
			resolution: FileResolution{Path: "a.txt", Status: "resolved", Properties: 3},
			symbol:     "✓",
		},
		{
			name:       "failed",
			resolution: FileResolution{Path: "b.txt", Status: "parse error", IsError: true},
			symbol:     "✗",
		},
		{
			name:       "skipped",
			resolution: FileResolution{Path: "c.txt", Status: "excluded", IsSkipped: true},
			symbol:     "-",
		},
	}

	l := New(&bytes.Buffer{}, zerolog.Disabled)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := l.formatFileResolution(tt.resolution)
			assert.Contains(t, line, tt.symbol, "line should carry the outcome symbol")
			assert.Contains(t, line, tt.resolution.Path, "line should carry the path")
			assert.Contains(t, line, tt.resolution.Status, "line should carry the status")
		})
	}
}

func TestRunLifecycle(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf, zerolog.Disabled)
	ctx := context.Background()

	l.StartRun(ctx, RunInfo{GeeseFile: "app.yaml", WorkDir: "/work", Targets: 2})
	l.LogFileResolution(ctx, FileResolution{Path: "a.txt", Status: "resolved", Properties: 1})
	l.LogFileResolution(ctx, FileResolution{Path: "b.txt", Status: "boom", IsError: true})
	l.EndRun(ctx)

	out := buf.String()
	assert.Contains(t, out, "app.yaml", "run header names the geese file")
	assert.Contains(t, out, "2 targets", "run header counts the targets")
	assert.Contains(t, out, "a.txt", "each resolution is printed")
	assert.Contains(t, out, "b.txt", "failures are printed too")
}

func TestMessageHelpers(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf, zerolog.Disabled)

	l.Header("resolving target contexts")
	l.Infof("include %s", "[*.js]")
	l.Warningf("no files matched")
	l.Successf("resolved %d files", 3)
	l.LogNewline()

	out := buf.String()
	assert.Contains(t, out, "geese", "header carries the tool name")
	assert.Contains(t, out, "resolving target contexts", "header message printed")
	assert.Contains(t, out, "include [*.js]", "info formats its arguments")
	assert.Contains(t, out, "no files matched", "warning printed")
	assert.Contains(t, out, "resolved 3 files", "success formats its arguments")
}

func TestContextRoundTrip(t *testing.T) {
	l := New(&bytes.Buffer{}, zerolog.Disabled)
	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx), "the stored logger comes back")

	require.Panics(t, func() {
		FromContext(context.Background())
	}, "a context without a logger is a programmer error")
}
