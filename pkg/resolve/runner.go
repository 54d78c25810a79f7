package resolve

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/geese/pkg/geesefile"
	"github.com/walteh/geese/pkg/target"
)

// 📋 FileResult is one target file's resolution outcome. Err is set when
// that file's context could not be built; other files are unaffected.
type FileResult struct {
	Path    string
	Context map[string]any
	Err     error
}

// 📊 Report collects every file's outcome for a run. Failures are reported
// here per file, never silently swallowed and never fatal to the run.
type Report struct {
	Results []FileResult
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the results that resolved cleanly.
func (r *Report) Succeeded() []FileResult {
	var out []FileResult
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

// 🔧 Options configures a resolution run.
type Options struct {
	// GeeseFile is the loaded property declarations.
	GeeseFile *geesefile.File
	// Builder resolves each file's context.
	Builder *Builder
	// Config is the merged configuration object exposed as _config.
	Config map[string]any
	// WorkDir overrides the working directory; defaults to the geese file's
	// own directory.
	WorkDir string
	// Parallel is the number of files resolved at once. Zero or one means
	// sequential.
	Parallel int
}

// 🏃 Run collects the target files from the geese file's $include/$exclude
// patterns and resolves a context per file. The operation registry is
// frozen before any file resolves: custom operations must be loaded before
// Run, and with the single writer gone, parallel resolution needs no
// registry synchronization.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.GeeseFile == nil {
		return nil, errors.New("geese file is required")
	}
	if opts.Builder == nil {
		return nil, errors.New("builder is required")
	}

	logger := zerolog.Ctx(ctx)

	includes, err := opts.GeeseFile.IncludePatterns()
	if err != nil {
		return nil, err
	}
	excludes, err := opts.GeeseFile.ExcludePatterns()
	if err != nil {
		return nil, err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = opts.GeeseFile.Dir
	}

	paths, err := target.Collect(ctx, includes, excludes, workDir)
	if err != nil {
		return nil, errors.Errorf("collecting target files: %w", err)
	}

	opts.Builder.Executor().Registry().Freeze()

	logger.Debug().
		Int("targets", len(paths)).
		Int("parallel", opts.Parallel).
		Msg("resolving target contexts")

	report := &Report{Results: make([]FileResult, len(paths))}

	if opts.Parallel <= 1 {
		for i, path := range paths {
			report.Results[i] = resolveOne(ctx, opts, path)
		}
		return report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			// each goroutine owns its slot
			report.Results[i] = resolveOne(gctx, opts, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

func resolveOne(ctx context.Context, opts Options, path string) FileResult {
	pctx, err := opts.Builder.Prepare(ctx, opts.GeeseFile, opts.Config, path)
	return FileResult{Path: path, Context: pctx, Err: err}
}
