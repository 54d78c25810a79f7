package ops

import (
	"encoding/base64"
	"encoding/hex"
	"os"
	"path/filepath"
)

func registerFileOps(r *Registry) {
	mustRegister(r, "readFile", opReadFile)
	// loadFile is a historical alias.
	mustRegister(r, "loadFile", opReadFile)
}

// opReadFile reads the file named by the value, resolved relative to the
// geese file's directory when the path is not absolute. The read is
// deliberately blocking: pipe operations are plain synchronous functions and
// must compose without asynchrony leaking through the chain.
func opReadFile(value any, args []string, ctx map[string]any) (any, error) {
	path := toText(value)
	if path == "" {
		return nil, argErrorf("readFile: path is empty")
	}

	if dir, ok := ctx["_geeseFileDir"].(string); ok && dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	encoding := "utf8"
	if len(args) > 0 {
		encoding = args[0]
	}
	switch encoding {
	case "utf8", "utf-8":
		return string(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "hex":
		return hex.EncodeToString(data), nil
	default:
		return nil, argErrorf("readFile: unsupported encoding %q", encoding)
	}
}
