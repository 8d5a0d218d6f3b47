// Package operations implements the per-file actions a batch can execute:
// delete, move and compress. Each operation is context-aware and localized
// to one file; failures are returned, never panicked, so the batch layer
// can attribute them to individual outcomes.
package operations
