// Package diagnostic provides structured errors and warnings produced while
// checking a filter manifest against the library on disk.
//
// Key capabilities:
//   - Stable diagnostic codes for each failed invariant
//   - Location by transform and filter name
//   - Merging results from several checks
package diagnostic
