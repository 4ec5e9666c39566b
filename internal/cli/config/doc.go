// Package config defines the isis command-line configuration.
//
//   - spec.go: Config struct and defaults (~/.isis/config.yaml)
//   - loader.go: layered loading via confloader, and saving
package config
