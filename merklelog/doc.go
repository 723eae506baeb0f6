// Package merklelog persists accumulator logs to an object store and publishes
// signed checkpoints over their roots.
//
// A log is stored as a single snapshot object holding the leaves and the root
// history, and a sequence of checkpoint objects. Each checkpoint is a COSE
// Sign1 message over an AccumulatorState. The root is removed from the state
// before the message is stored, so a verifier must recover it from the log
// itself.
package merklelog
