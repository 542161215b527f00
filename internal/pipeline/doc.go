// Package pipeline runs a partition.Plan: one goroutine per plan worker, each
// checking homology, extracting upstream windows and matching promoters for
// its jobs, then a single-threaded merge of the per-worker accumulators.
//
// The only contracts to implement are homology.Filter and promoter.Matcher
// (bundled as Analyzer). This keeps the driver swappable and testable.
package pipeline
