// Package session owns the pipeline state of one running snapshot: the raw
// lead set, its normalized derivation, filter parameters, the stalled
// threshold, the stage catalog and the current selection.
//
// Load ingests from the configured source, falling back to the synthetic
// generator when the source cannot be read, and reports which of the two
// happened in its LoadResult. ApplyPatch is the only way records change;
// every mutation renormalizes the whole raw set.
//
// A Session is not safe for concurrent use. Callers that reload from a
// watcher goroutine must serialize access themselves.
package session
