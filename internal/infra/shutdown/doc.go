// Package shutdown runs cleanup hooks when a command finishes or is
// interrupted.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(flushMetrics)
//	defer h.Shutdown()
//
//	ctx, stop := shutdown.WithSignals(ctx)
//	defer stop()
package shutdown
