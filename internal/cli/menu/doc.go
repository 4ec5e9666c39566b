// Package menu implements the numbered interactive menu shown when isis is
// started without a command.
package menu
