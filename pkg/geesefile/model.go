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

// Package geesefile loads geese files: property declarations whose string
// values may be pipe expressions, plus the $-prefixed system properties
// driving file discovery.
package geesefile

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/target"
)

// 📦 Property is one declared property, in declaration order. System
// properties carry the canonical $ prefix in Name; legacy @ prefixes are
// normalized on load.
type Property struct {
	Name     string
	IsSystem bool
	Raw      any
}

// 📚 File is a loaded geese file.
type File struct {
	// Path is the absolute path of the geese file itself.
	Path string
	// Dir is its containing directory; relative paths in pipe operations
	// resolve against it.
	Dir string
	// Name is the file's base name.
	Name string
	// Properties holds every declaration in order, system ones included.
	Properties []Property
	// System maps canonical $-prefixed names to their raw values. These are
	// parsed once at the file level and never pipe-resolved per target.
	System map[string]any
}

// 📋 UserProperties returns the non-system properties in declaration order.
func (f *File) UserProperties() []Property {
	var out []Property
	for _, p := range f.Properties {
		if !p.IsSystem {
			out = append(out, p)
		}
	}
	return out
}

// 🎯 IncludePatterns returns the $include pattern list.
func (f *File) IncludePatterns() ([]string, error) {
	patterns, err := target.ParsePatternList(f.System["$include"])
	if err != nil {
		return nil, errors.Errorf("parsing $include: %w", err)
	}
	return patterns, nil
}

// 🎯 ExcludePatterns returns the $exclude pattern list.
func (f *File) ExcludePatterns() ([]string, error) {
	patterns, err := target.ParsePatternList(f.System["$exclude"])
	if err != nil {
		return nil, errors.Errorf("parsing $exclude: %w", err)
	}
	return patterns, nil
}

// 🔧 MergedConfig builds the merged configuration object exposed to every
// resolution context: the file's system properties overlaid with caller
// overrides (flags win over file values).
func MergedConfig(f *File, overrides map[string]any) map[string]any {
	merged := map[string]any{}
	for name, v := range f.System {
		merged[strings.TrimPrefix(name, "$")] = v
	}
	for name, v := range overrides {
		merged[name] = v
	}
	return merged
}

// rawProperty is a parsed (name, value) pair before prefix normalization.
type rawProperty struct {
	name  string
	value any
}

// normalize turns raw declarations into the ordered property list: `$` is
// the canonical system prefix, `@` the legacy alias normalized on load, and
// a `$`-spelled value wins over its `@` twin when both are present.
func normalize(raw []rawProperty) ([]Property, map[string]any, error) {
	canonical := map[string]bool{}
	for _, rp := range raw {
		if strings.HasPrefix(rp.name, "$") {
			canonical[rp.name] = true
		}
	}

	var props []Property
	system := map[string]any{}
	for _, rp := range raw {
		name := rp.name
		if name == "" {
			return nil, nil, errors.New("property name is required")
		}

		if strings.HasPrefix(name, "@") {
			name = "$" + name[1:]
			if canonical[name] {
				continue
			}
			if _, dup := system[name]; dup {
				continue
			}
		}

		if strings.HasPrefix(name, "$") {
			system[name] = rp.value
			props = append(props, Property{Name: name, IsSystem: true, Raw: rp.value})
			continue
		}

		props = append(props, Property{Name: name, Raw: rp.value})
	}

	return props, system, nil
}
