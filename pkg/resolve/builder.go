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

// Package resolve builds the per-target-file execution context: file
// metadata plus every declared property, with expression-valued properties
// evaluated through the chain executor.
package resolve

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/geesefile"
	"github.com/walteh/geese/pkg/pipe"
)

// 🎮 Builder resolves contexts through a chain executor.
type Builder struct {
	exec *pipe.Executor
}

// 🏭 NewBuilder creates a context builder.
func NewBuilder(exec *pipe.Executor) (*Builder, error) {
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	return &Builder{exec: exec}, nil
}

// Executor returns the chain executor the builder evaluates with.
func (b *Builder) Executor() *pipe.Executor {
	return b.exec
}

// 🎯 Prepare builds the resolved context for one target file. The context
// seeds with file metadata before any evaluation, then properties resolve
// in declaration order against the live context: a later chain sees every
// earlier property already resolved. System properties are file-level
// controls and are never pipe-resolved here.
func (b *Builder) Prepare(ctx context.Context, gf *geesefile.File, cfg map[string]any, targetPath string) (map[string]any, error) {
	logger := zerolog.Ctx(ctx)

	content, err := os.ReadFile(targetPath)
	if err != nil {
		return nil, errors.Errorf("reading target file %s: %w", targetPath, err)
	}

	pctx := map[string]any{
		"filename":      filepath.Base(targetPath),
		"filepath":      targetPath,
		"content":       string(content),
		"geese_file":    gf.Name,
		"_geeseFileDir": gf.Dir,
		"_config":       cfg,
	}

	for _, prop := range gf.Properties {
		if prop.IsSystem {
			continue
		}

		raw, ok := prop.Raw.(string)
		if !ok || !pipe.ContainsOperator(raw) {
			// literal, copied verbatim
			pctx[prop.Name] = prop.Raw
			continue
		}

		value, err := b.exec.Execute(ctx, raw, pctx)
		if err != nil {
			return nil, errors.Errorf("resolving property %q: %w", prop.Name, err)
		}
		pctx[prop.Name] = value

		logger.Trace().
			Str("property", prop.Name).
			Str("file", targetPath).
			Msg("resolved expression property")
	}

	return pctx, nil
}
