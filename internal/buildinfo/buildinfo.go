// Package buildinfo carries version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/fuellog/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/dmitrijs2005/fuellog/internal/buildinfo.Date=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/fuellog/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version string
	Date    string
	Commit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(Commit))
}
