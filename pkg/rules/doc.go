// Package rules implements the decision logic of the cleanup pipeline.
//
// Two independent decision strategies exist and are deliberately kept
// separate because they serve different call sites:
//
//   - Evaluate is the advanced, additive scoring model: weighted signals
//     accumulate in a fixed order and a file is retained for action when
//     the score reaches 2.
//   - FilterFiles is the quick-scan path: a plain union (OR) of
//     independent boolean rules.
//
// Evaluate's accumulation order is fixed: age, size, extension patterns,
// name patterns, protected folders, categories. Protected-folder matches
// subtract 10 points each, which a file can only out-accumulate when at
// least 12 points accrue from the other rules. That boundary is documented
// behavior, not a bug to be fixed.
package rules
