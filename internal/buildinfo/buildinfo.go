// Package buildinfo carries version metadata injected at link time:
//
//	go build -ldflags "-X github.com/arloliu/countfit/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("countfit %s (commit=%s, date=%s)", Version, Commit, Date)
}
