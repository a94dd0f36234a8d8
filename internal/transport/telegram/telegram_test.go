package telegram

import (
	"strings"
	"testing"

	logx "github.com/Mikhail-Kushnerev/homework-bot/pkg/logx"
)

func TestSplitShortTextUnchanged(t *testing.T) {
	t.Parallel()
	got := splitTelegramText("короткое сообщение", 100)
	if len(got) != 1 || got[0] != "короткое сообщение" {
		t.Fatalf("got %q", got)
	}
}

func TestSplitPrefersNewlines(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("строка текста\n", 40)
	chunks := splitTelegramText(text, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Fatalf("chunk %d exceeds limit: %d runes", i, len([]rune(c)))
		}
		if strings.HasPrefix(c, "\n") || strings.HasSuffix(c, "\n") {
			t.Fatalf("chunk %d has dangling newline: %q", i, c)
		}
		// Newline-preferred splitting keeps lines whole.
		for _, line := range strings.Split(c, "\n") {
			if line != "строка текста" {
				t.Fatalf("chunk %d split mid-line: %q", i, line)
			}
		}
	}
}

func TestSplitHandlesUnbrokenRuns(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("x", 250)
	chunks := splitTelegramText(text, 100)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if joined := strings.Join(chunks, ""); joined != text {
		t.Fatalf("content lost while splitting: %d runes", len(joined))
	}
}

func TestNewRequiresToken(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}, logx.Nop()); err == nil {
		t.Fatal("expected error for empty token")
	}
}
