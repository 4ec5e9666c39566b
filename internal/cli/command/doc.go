// Package command defines the isis command line with urfave/cli/v2.
//
//   - root.go: application, global flags, per-invocation environment
//   - hide.go: hide a file in a carrier image
//   - extract.go: recover a hidden file
//   - capacity.go: report how much a carrier can hold
//   - menu.go: interactive numbered menu (default with no command)
//   - config.go: show and initialise the configuration file
//   - version.go: build information
//
// Commands parse flags, call the stego service and format the result with
// the output package. Diagnostics go to the app's ErrWriter; results go to
// its Writer.
package command
