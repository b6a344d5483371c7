// Package trace records what the compiler is doing while it does it.
//
// Every driver phase of a file (load, parse, infer, lower, print, cache) is
// a span; cache integrity problems and other one-off facts are points.
// Tracing is off unless the CLI enables it:
//
//	jsxstream build --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: disabled tracing, no allocations
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// A tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
