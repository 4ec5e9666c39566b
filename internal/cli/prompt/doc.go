// Package prompt reads answers from an interactive user.
//
// Passwords are read with terminal echo disabled when the input is a
// terminal; piped input is read line by line so scripted sessions work.
package prompt
