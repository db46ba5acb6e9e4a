// Package batch runs a per-item function over a slice in fixed-size
// batches, with bounded concurrency across batches and progress reporting.
//
// Items inside a batch are processed in order. Batches may run in parallel,
// so callers that need ordered output should write results by index.
package batch
