// Package version stores the release of the module.
package version

import (
	"fmt"
	"runtime"
)

const (
	Version = "0.1"
)

// VersionString is displayed by the command line tool.
var VersionString = fmt.Sprintf("Go-FlexRender %s (%s)", Version, runtime.Version())
