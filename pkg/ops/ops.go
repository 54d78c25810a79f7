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

// Package ops provides the operation registry and the built-in catalog of
// pipe operations that chain expressions are executed against.
package ops

import (
	"io"
	"os"
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Func is the signature every pipe operation implements. The value flows
// in from the previous chain segment, args are the whitespace-delimited
// tokens following the operation name, and ctx is the per-file resolution
// context. Operations must treat ctx as read-only.
type Func func(value any, args []string, ctx map[string]any) (any, error)

// 🗺️ Registry maps operation names to their implementations. It holds the
// built-ins plus any user-supplied operations, which shadow built-ins of the
// same name (last registration wins). A registry is an explicit instance, not
// process state, so independent engine runs never share mutable state.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	frozen  bool
	debug   io.Writer
}

type entry struct {
	fn      Func
	builtin bool
}

// 🏭 NewRegistry creates a registry pre-populated with the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{
		entries: map[string]entry{},
		debug:   os.Stdout,
	}
	registerBuiltins(r)
	return r
}

// 🏭 NewEmptyRegistry creates a registry with no operations at all.
// Mostly useful for tests that want full control over the catalog.
func NewEmptyRegistry() *Registry {
	return &Registry{
		entries: map[string]entry{},
		debug:   os.Stdout,
	}
}

// 📝 Register adds an operation. Registering an existing name overwrites the
// previous entry without error; the custom operation loader relies on this to
// let user operations shadow built-ins.
func (r *Registry) Register(name string, fn Func, builtin bool) error {
	if name == "" {
		return errors.New("operation name is required")
	}
	if fn == nil {
		return errors.Errorf("operation %q: function is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.Errorf("operation %q: registry is frozen", name)
	}
	r.entries[name] = entry{fn: fn, builtin: builtin}
	return nil
}

// 🔍 Get looks up an operation by name.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, &OperationNotFoundError{Name: name}
	}
	return e.fn, nil
}

// 📋 List returns the registered operation names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🔍 IsBuiltin reports whether name resolves to a built-in implementation.
// A custom operation shadowing a built-in reports false.
func (r *Registry) IsBuiltin(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return ok && e.builtin
}

// 🧊 Freeze makes the registry read-only. Load all custom operations first,
// then freeze before resolving target files concurrently; reads need no
// further synchronization once no writer remains.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// 📝 SetDebugWriter redirects the output of the echo operation. Defaults to
// stdout.
func (r *Registry) SetDebugWriter(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = w
}

func (r *Registry) debugWriter() io.Writer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.debug
}

// registerBuiltins installs the full built-in catalog.
func registerBuiltins(r *Registry) {
	registerStringOps(r)
	registerListOps(r)
	registerConvertOps(r)
	registerRegexOps(r)
	registerFileOps(r)
	registerGrepOps(r)
	registerGlobOps(r)
	registerJqOps(r)
	registerUtilOps(r)
}

// mustRegister is used for the built-in catalog, where registration happens
// before the registry is ever frozen or shared.
func mustRegister(r *Registry, name string, fn Func) {
	if err := r.Register(name, fn, true); err != nil {
		panic(err)
	}
}
