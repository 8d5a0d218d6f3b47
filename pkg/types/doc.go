// Package types defines the core types and interfaces used throughout scour.
// This includes the FileRecord scan snapshot, the rule evaluation and batch
// result types, and the narrow FS interface used to abstract filesystem
// access for testing.
package types
