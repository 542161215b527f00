// Package version holds the build version, overridden at link time:
//
//	go build -ldflags "-X promoscan/internal/version.Version=v1.2.3" ./cmd/promoscan
package version

var Version = "dev"
