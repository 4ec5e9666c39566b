// Package logger provides structured logging for isis.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler selection (json/text), levels, global default
//   - context.go: operation-scoped loggers carried through context.Context
//   - redact.go: masking of password-like attributes
//
// Every CLI invocation gets an operation id that is attached to each line
// logged through L(ctx).
package logger
