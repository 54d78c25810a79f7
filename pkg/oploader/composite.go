package oploader

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/geese/pkg/ops"
	"github.com/walteh/geese/pkg/pipe"
)

// opDef is the declarative form of a custom operation: an ordered list of
// steps, each the textual form of an operation invocation. An argument
// token $1..$9 in a step is replaced by the corresponding argument of the
// composite when it is invoked; $* splices in all of them.
type opDef struct {
	Steps       []string `json:"steps" yaml:"steps" hcl:"steps"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
}

func (l *Loader) loadJSON(path string) (ops.Func, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading definition: %w", err)
	}

	var def opDef
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Errorf("parsing JSON definition: %w", err)
	}
	return l.compile(def)
}

func (l *Loader) loadYAML(path string) (ops.Func, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading definition: %w", err)
	}

	var def opDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Errorf("parsing YAML definition: %w", err)
	}
	return l.compile(def)
}

func (l *Loader) loadHCL(path string) (ops.Func, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading definition: %w", err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL definition: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{}}

	var def opDef
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &def)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL definition: %s", diags.Error())
	}
	return l.compile(def)
}

// compile parses the step list once at load time and returns the composite
// function. Step operations resolve against the registry at call time, so a
// step sees the same shadowing a chain would.
func (l *Loader) compile(def opDef) (ops.Func, error) {
	if len(def.Steps) == 0 {
		return nil, errors.New("definition has no steps")
	}

	invocations := make([]pipe.Invocation, 0, len(def.Steps))
	for _, step := range def.Steps {
		inv, err := pipe.ParseInvocation(step)
		if err != nil {
			return nil, errors.Errorf("parsing step %q: %w", step, err)
		}
		invocations = append(invocations, inv)
	}

	return func(value any, args []string, ctx map[string]any) (any, error) {
		cur := value
		for _, inv := range invocations {
			fn, err := l.reg.Get(inv.Name)
			if err != nil {
				return nil, err
			}
			cur, err = fn(cur, substituteArgs(inv.Args, args), ctx)
			if err != nil {
				return nil, errors.Errorf("%s: %w", inv.Name, err)
			}
		}
		return cur, nil
	}, nil
}

// substituteArgs replaces $1..$9 placeholder tokens with the composite's
// own arguments (missing ones become empty) and splices $* in place.
func substituteArgs(stepArgs, callArgs []string) []string {
	out := make([]string, 0, len(stepArgs))
	for _, arg := range stepArgs {
		if arg == "$*" {
			out = append(out, callArgs...)
			continue
		}
		if len(arg) == 2 && arg[0] == '$' && arg[1] >= '1' && arg[1] <= '9' {
			i, _ := strconv.Atoi(arg[1:])
			if i <= len(callArgs) {
				out = append(out, callArgs[i-1])
			} else {
				out = append(out, "")
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
