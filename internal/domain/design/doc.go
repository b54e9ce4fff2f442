// Package design defines the design context: the bounded, structured
// description of a page's content and visual properties that drives HTML
// generation.
//
// Every producer (capture compiler) and consumer (context cache,
// generation adapter) works on the same Context type. Size caps live in
// limits.go and are re-applied by Bound, so a Context that leaves the core
// has a bounded serialized size regardless of how large the source page is.
//
// Partial failure is modeled as data: extraction steps run through a
// Collector, which records a StepFailure instead of aborting the rest.
package design
