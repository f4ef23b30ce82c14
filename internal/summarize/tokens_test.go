package summarize

import (
	"strings"
	"testing"
)

func TestTruncateDiff_UnderBudget(t *testing.T) {
	oldEstimate := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return len(text) / 10 }
	defer func() { estimateTokensFunc = oldEstimate }()

	text := "short diff\n"
	out, truncated := TruncateDiff(text, 100)
	if truncated || out != text {
		t.Fatalf("expected text unchanged, got %q (truncated=%v)", out, truncated)
	}
}

func TestTruncateDiff_OverBudget(t *testing.T) {
	oldEstimate := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return len(text) }
	defer func() { estimateTokensFunc = oldEstimate }()

	text := strings.Repeat("0123456789\n", 100)
	out, truncated := TruncateDiff(text, 50)
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if len(out) > 50 {
		t.Fatalf("truncated text still over budget: %d bytes", len(out))
	}
	if out != "" && !strings.HasSuffix(text[:len(out)+1], "\n") {
		t.Fatalf("expected cut at a line boundary")
	}
}

func TestTruncateDiff_NoBudget(t *testing.T) {
	out, truncated := TruncateDiff("anything", 0)
	if truncated || out != "anything" {
		t.Fatalf("zero budget must disable truncation")
	}
}
