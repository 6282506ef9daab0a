// Package reconcile provides the generic concurrent driver that check and
// repair operations plug into.
//
// The driver reads item paths from a line-oriented reader, fans them out
// across a bounded worker pool, and applies a supplied per-item function to
// each path. Workers borrow a grid client from a bounded store.Pool for the
// duration of one item and release it on every exit path. Every input line
// is processed exactly once; completion order is unspecified.
//
// # Fault isolation
//
// A failure while processing one item never aborts its siblings or the run.
// Typed store and checksum errors are handled inside the per-item functions;
// anything that escapes, including panics, is caught at the driver boundary,
// logged with the item index and path, and counted as a failure.
//
// # Output
//
// Workers print matched paths through a shared Sink, which serializes writes
// so lines never interleave mid-line. The Summary returned at the end is
// exact and order-independent.
package reconcile
