package geesefile

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load loads a geese file from the given path. The format is determined by
// the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .geese will try both YAML and HCL formats
// Property declaration order is preserved in every format; that order is
// the evaluation order during context resolution.
func Load(ctx context.Context, path string) (*File, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading geese file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading geese file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var raw []rawProperty

	if ext == ".geese" || filepath.Base(path) == ".geese" {
		raw, err = parseYAML(data)
		if err != nil {
			var hclErr error
			raw, hclErr = parseHCL(data, path)
			if hclErr != nil {
				return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, hclErr)
			}
		}
	} else {
		switch ext {
		case ".json":
			raw, err = parseJSON(data)
		case ".yaml", ".yml":
			raw, err = parseYAML(data)
		case ".hcl":
			raw, err = parseHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported geese file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	props, system, err := normalize(raw)
	if err != nil {
		return nil, errors.Errorf("validating geese file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving geese file path: %w", err)
	}

	return &File{
		Path:       abs,
		Dir:        filepath.Dir(abs),
		Name:       filepath.Base(abs),
		Properties: props,
		System:     system,
	}, nil
}

// parseJSON walks the token stream instead of decoding into a map, so that
// declaration order survives.
func parseJSON(data []byte) ([]rawProperty, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parsing JSON: top level must be an object")
	}

	var raw []rawProperty
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("parsing JSON: unexpected key token %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Errorf("parsing JSON value of %q: %w", key, err)
		}
		raw = append(raw, rawProperty{name: key, value: value})
	}

	return raw, nil
}

// parseYAML decodes into a node tree and walks the top-level mapping in
// source order.
func parseYAML(data []byte) ([]rawProperty, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("parsing YAML: empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("parsing YAML: top level must be a mapping")
	}

	var raw []rawProperty
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, errors.Errorf("parsing YAML value of %q: %w", keyNode.Value, err)
		}
		raw = append(raw, rawProperty{name: keyNode.Value, value: value})
	}

	return raw, nil
}

// parseHCL reads top-level attributes as user properties and the attributes
// of the `system` block as $-prefixed system properties (HCL identifiers
// cannot start with $, so the prefix is implied by the block).
func parseHCL(data []byte, filename string) ([]rawProperty, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	body, ok := hclFile.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New("parsing HCL: unexpected body type")
	}

	var raw []rawProperty
	for _, attr := range sortedAttributes(body.Attributes) {
		value, err := evalAttribute(attr)
		if err != nil {
			return nil, err
		}
		raw = append(raw, rawProperty{name: attr.Name, value: value})
	}

	for _, block := range body.Blocks {
		if block.Type != "system" {
			return nil, errors.Errorf("parsing HCL: unsupported block %q", block.Type)
		}
		for _, attr := range sortedAttributes(block.Body.Attributes) {
			value, err := evalAttribute(attr)
			if err != nil {
				return nil, err
			}
			raw = append(raw, rawProperty{name: "$" + attr.Name, value: value})
		}
	}

	return raw, nil
}

func sortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	out := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SrcRange.Start.Byte < out[j].SrcRange.Start.Byte
	})
	return out
}

// evalAttribute evaluates an HCL expression with no variables in scope and
// converts the cty value to its JSON-shaped Go form.
func evalAttribute(attr *hclsyntax.Attribute) (any, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{Variables: map[string]cty.Value{}})
	if diags.HasErrors() {
		return nil, errors.Errorf("evaluating HCL attribute %q: %s", attr.Name, diags.Error())
	}
	return ctyToGo(attr.Name, val)
}

func ctyToGo(name string, val cty.Value) (any, error) {
	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, errors.Errorf("converting HCL attribute %q: %w", name, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Errorf("converting HCL attribute %q: %w", name, err)
	}
	return out, nil
}
