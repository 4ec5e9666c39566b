// Package buildinfo provides build information for isis.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/isis-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When a binary is installed with `go install` and no ldflags, the module
// version and VCS revision recorded by the toolchain are used instead.
package buildinfo
