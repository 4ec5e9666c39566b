// Package output renders command results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned key/value and row tables with human-readable sizes
//   - json.go: indented JSON
//   - yaml.go: YAML
//
// Struct fields use their json tag as the display name. The table tag
// accepts comma-separated options: "-" hides a field, "wide" shows it only
// in wide mode, "bytes" renders an integer as an IEC size and "count" adds
// thousands separators.
package output
