// Package poller drives the fetch → classify → notify → sleep cycle.
//
// The loop owns two pieces of mutable state for the process lifetime:
// the poll cursor (unix seconds, never rolled back) and the alert
// dedup state. Both are mutated only between cycles, so a single
// goroutine runs the whole loop and no locking is needed beyond the
// schedule hot-swap.
//
// Every runtime anomaly is downgraded to a review.Result at the loop
// boundary: transient upstream failures raise a deduplicated alert,
// malformed payloads are logged only, and nothing escapes as a panic.
package poller
