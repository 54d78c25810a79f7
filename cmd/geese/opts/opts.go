package opts

import (
	"github.com/walteh/geese/cmd/geese/ui"
	"github.com/walteh/geese/pkg/geesefile"
	"github.com/walteh/geese/pkg/oploader"
	"github.com/walteh/geese/pkg/resolve"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	GeeseFile  *geesefile.File
	Builder    *resolve.Builder
	Config     map[string]any
	OpsReport  *oploader.Result
	UserLogger *ui.UserLogger
	WorkDir    string
	Parallel   int
}
