// Package pipeline holds the pure stages of the snapshot pipeline:
// normalization, filtering, aggregation and projection into display rows.
//
// None of these functions read shared state; callers pass the normalized set
// and parameters in and receive fresh values back.
package pipeline
