package review

import "fmt"

// verdicts is the closed status → verdict vocabulary. The surrounding
// sentence is shared; only the verdict differs per status.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Format renders a record as the user-facing notification text.
//
// Validate guarantees a known status by construction, so an unknown
// status here is an internal invariant violation: the error is returned
// for the caller to treat as fatal, never silently skipped.
func Format(rec Record) (string, error) {
	verdict, ok := verdicts[rec.Status]
	if !ok {
		return "", fmt.Errorf("review: unknown status %q for work %q", rec.Status, rec.ID)
	}
	return fmt.Sprintf("Изменился статус проверки работы %q. %s", rec.ID, verdict), nil
}
