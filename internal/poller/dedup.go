package poller

// Dedup tracks whether the current run of consecutive failures has
// already been reported, so a sustained outage alerts once while the
// first occurrence and any new kind of failure still surface.
//
// Owned exclusively by the loop; not safe for concurrent use.
type Dedup struct {
	lastReported string
	reported     bool
}

// ShouldNotify reports whether the failure with the given signature
// should be surfaced, and records it as the last reported one. An
// immediately repeated identical signature returns false; a different
// signature starts a new run and returns true.
func (d *Dedup) ShouldNotify(signature string) bool {
	if d.reported && d.lastReported == signature {
		return false
	}
	d.lastReported = signature
	d.reported = true
	return true
}

// Reset clears the reported state. Called when a cycle ends in a fresh
// status, so a future failure with the same signature alerts again.
func (d *Dedup) Reset() {
	d.lastReported = ""
	d.reported = false
}
