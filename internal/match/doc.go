// Package match ranks known filter and transform names by similarity to a
// mistyped one, for "did you mean" hints.
//
// Key functions:
//   - Normalize: folds case and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidates by normalized similarity
package match
