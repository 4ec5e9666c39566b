// Package domain defines the core domain model for isis.
//
// Domain values are plain data without IO dependencies:
//
//   - Record: the name and payload hidden inside a carrier
//   - Errors: coded error taxonomy shared by codec, service and CLI
//
// The carrier layout itself is fixed-width and undelimited; see Record.
package domain
