// Package safety contains the core domain logic of the monitor.
//
// It defines the sensor Snapshot (decoded once from the loosely typed state
// document), the proximity Zone bands, the pure Classify evaluator and the
// edge-triggered alert state machine Advance. Both functions are free of
// side effects so the notification invariants can be tested in isolation.
package safety
