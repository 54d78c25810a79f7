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

// Package target resolves include/exclude glob patterns against a working
// directory into the ordered set of files a geese run operates on.
package target

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Collect resolves include patterns (unioned) minus exclude patterns
// (subtracted, always winning over includes) under rootDir, returning an
// ordered, deduplicated list of absolute file paths. Dotfiles are matched by
// default. No include patterns yields an empty set: that is the default-safe
// behavior, not an "include everything" fallback.
func Collect(ctx context.Context, includes, excludes []string, rootDir string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.Errorf("resolving root directory: %w", err)
	}

	fsys := os.DirFS(absRoot)

	seen := map[string]bool{}
	var ordered []string
	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true
			ordered = append(ordered, rel)
		}
	}

	var out []string
	for _, rel := range ordered {
		excluded, err := matchesAny(excludes, rel)
		if err != nil {
			return nil, err
		}
		if excluded {
			logger.Debug().Str("file", rel).Msg("excluded by pattern")
			continue
		}
		out = append(out, filepath.Join(absRoot, filepath.FromSlash(rel)))
	}

	logger.Debug().
		Int("included", len(ordered)).
		Int("collected", len(out)).
		Str("root", absRoot).
		Msg("collected target files")

	return out, nil
}

// matchesAny reports whether path matches any of the patterns.
func matchesAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, errors.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
