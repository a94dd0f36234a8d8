// Package review holds the domain vocabulary of the homework review
// process: status records, the per-cycle result variant, payload
// validation and message formatting. It has no I/O.
package review

// Status is the closed vocabulary of review verdicts the API may report.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// known reports whether s is one of the defined statuses.
func (s Status) known() bool {
	switch s {
	case StatusApproved, StatusReviewing, StatusRejected:
		return true
	}
	return false
}

// Record is one review status update. Immutable once constructed:
// Validate only ever produces records with all fields present and a
// known status.
type Record struct {
	ID     string
	Status Status
	Label  string
}
