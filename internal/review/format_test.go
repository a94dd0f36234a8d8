package review

import (
	"strings"
	"testing"
)

func TestFormatKnownStatuses(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status  Status
		verdict string
	}{
		{StatusApproved, "Работа проверена: ревьюеру всё понравилось. Ура!"},
		{StatusReviewing, "Работа взята на проверку ревьюером."},
		{StatusRejected, "Работа проверена: у ревьюера есть замечания."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			msg, err := Format(Record{ID: "hw42", Status: tt.status, Label: "Go sprint"})
			if err != nil {
				t.Fatalf("Format error: %v", err)
			}
			want := `Изменился статус проверки работы "hw42". ` + tt.verdict
			if msg != want {
				t.Fatalf("message = %q, want %q", msg, want)
			}
		})
	}
}

func TestFormatUnknownStatusIsInvariantViolation(t *testing.T) {
	t.Parallel()
	_, err := Format(Record{ID: "hw42", Status: Status("shredded"), Label: "l"})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !strings.Contains(err.Error(), "shredded") {
		t.Fatalf("error should name the status: %v", err)
	}
}
