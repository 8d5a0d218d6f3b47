// Package config defines the user-authored rule configuration and its
// loading, validation and pattern-compilation steps.
//
// A configuration is loaded once per operation. Validation of threshold
// values happens at load time (never mid-batch), and pattern rules are
// compiled once: a malformed pattern is reported a single time and treated
// as never-matching afterwards, so one bad pattern cannot abort evaluation
// of all files.
package config
