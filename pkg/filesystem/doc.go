// Package filesystem provides implementations of the types.FS interface:
// an OS-backed one for production and an afero-backed one so tests can run
// against an in-memory filesystem.
package filesystem
