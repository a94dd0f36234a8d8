package review

import "fmt"

// ResultKind discriminates the outcome of one poll cycle.
type ResultKind int

const (
	// KindFresh means a new status record was extracted.
	KindFresh ResultKind = iota
	// KindNoUpdate means the update list was present but empty.
	KindNoUpdate
	// KindMalformed means the body arrived but its shape was unexpected.
	KindMalformed
	// KindTransient means the fetch itself failed (network/server).
	KindTransient
	// KindFatal means an unrecoverable condition (startup configuration).
	KindFatal
)

func (k ResultKind) String() string {
	switch k {
	case KindFresh:
		return "fresh"
	case KindNoUpdate:
		return "no_update"
	case KindMalformed:
		return "malformed"
	case KindTransient:
		return "transient"
	case KindFatal:
		return "fatal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is the single value the poll loop reasons about each cycle.
// Exactly one variant is live: Record is set only for KindFresh, Reason
// only for KindMalformed, Cause only for KindTransient/KindFatal.
type Result struct {
	Kind   ResultKind
	Record Record
	Reason string
	Cause  error
}

func Fresh(rec Record) Result        { return Result{Kind: KindFresh, Record: rec} }
func NoUpdate() Result               { return Result{Kind: KindNoUpdate} }
func Malformed(reason string) Result { return Result{Kind: KindMalformed, Reason: reason} }
func Transient(cause error) Result   { return Result{Kind: KindTransient, Cause: cause} }
func Fatal(cause error) Result       { return Result{Kind: KindFatal, Cause: cause} }
