// Package version holds build information, set with -ldflags at release
// time:
//
//	go build -ldflags "-X github.com/tsawler/pdfoutline/version.GitRelease=v1.0.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"

	// GoInfo is the toolchain and platform the binary was built for
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)
