// Package batch runs one operation over a list of file records with
// bounded parallelism, aggregating per-file outcomes into a summary.
//
// The concurrency contract:
//
//   - up to MaxParallelism operations run at once (default 4)
//   - each operation has a mandatory per-item timeout (default 30s); a
//     timed-out item counts as failed without blocking in-flight work
//   - outcome and progress notifications fire in completion order, which
//     can differ from submission order
//   - the summary is the only shared mutable state and is owned by a
//     single aggregating loop, so its sums are deterministic
//   - Stop is cooperative: already-dispatched operations finish but their
//     outcomes are discarded; a summary is always returned
//
// A per-file failure never aborts the batch. The batch as a whole never
// fails: even when every file fails the caller receives a complete
// summary with a populated error list.
package batch
