package repo

import (
	"fmt"
	"runtime"
)

// set by ldflags when building
var (
	BuildVersion = "dev"
	BuildBranch  = "main"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"

	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	GoVersion = runtime.Version()
)
