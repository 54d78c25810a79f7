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

// Package oploader scans a directory for operation-definition files and
// registers them, letting user operations shadow built-ins of the same
// name. Loading is best effort: one broken definition never disables the
// rest of the engine.
package oploader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/ops"
)

// 📦 Loader registers custom operations into an explicit registry.
type Loader struct {
	reg *ops.Registry
}

// 🏭 New creates a loader over the given registry.
func New(reg *ops.Registry) (*Loader, error) {
	if reg == nil {
		return nil, errors.New("registry is required")
	}
	return &Loader{reg: reg}, nil
}

// 📋 Result reports what a directory scan did: which operations loaded and
// which files failed, per file.
type Result struct {
	Loaded []string
	Errors []LoadError
}

// 🚫 LoadError is one definition file's failure to load.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return "loading " + e.Path + ": " + e.Err.Error()
}

// 🎯 LoadDir enumerates the operation-definition files in dir and registers
// each under its base name. Shared-library plugins (.so) must export an
// `Operation` symbol of the operation signature; .hcl/.yaml/.yml/.json
// files define composite operations declaratively. A file that fails to
// load is reported in the result and skipped; the remaining files still
// load.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading operations directory: %w", err)
	}

	res := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		var fn ops.Func
		switch ext {
		case ".so":
			fn, err = loadPlugin(path)
		case ".hcl":
			fn, err = l.loadHCL(path)
		case ".yaml", ".yml":
			fn, err = l.loadYAML(path)
		case ".json":
			fn, err = l.loadJSON(path)
		default:
			continue
		}
		if err != nil {
			logger.Warn().Str("file", path).Err(err).Msg("skipping custom operation")
			res.Errors = append(res.Errors, LoadError{Path: path, Err: err})
			continue
		}

		if err := l.reg.Register(name, fn, false); err != nil {
			res.Errors = append(res.Errors, LoadError{Path: path, Err: err})
			continue
		}

		logger.Debug().Str("op", name).Str("file", path).Msg("registered custom operation")
		res.Loaded = append(res.Loaded, name)
	}

	return res, nil
}
