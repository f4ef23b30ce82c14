package style

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/mathlib-ci/prsummary/internal/logging"
	"github.com/mathlib-ci/prsummary/internal/prompt"
)

type stubCompleter struct {
	prompts []string
	reply   string
}

func (s *stubCompleter) Complete(_ context.Context, p string) (string, error) {
	s.prompts = append(s.prompts, p)
	return s.reply, nil
}

func newChecker(t *testing.T, completer *stubCompleter) *Checker {
	t.Helper()
	prompts, err := prompt.Load("")
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	return NewChecker(completer, prompts.CheckStyle, logging.New(logr.Discard()))
}

func TestCheck_SkippedWithoutPath(t *testing.T) {
	completer := &stubCompleter{reply: Sentinel}
	out, err := newChecker(t, completer).Check(context.Background(), "", "+line")
	if err != nil || out != "" {
		t.Fatalf("expected skip, got %q, %v", out, err)
	}
	if len(completer.prompts) != 0 {
		t.Fatalf("no request expected when skipped")
	}
}

func TestCheck_SkippedWhenGuideMissing(t *testing.T) {
	completer := &stubCompleter{reply: Sentinel}
	out, err := newChecker(t, completer).Check(context.Background(), filepath.Join(t.TempDir(), "none.md"), "+line")
	if err != nil || out != "" {
		t.Fatalf("expected skip on missing guide, got %q, %v", out, err)
	}
}

func TestCheck_RunsAndReturnsVerbatim(t *testing.T) {
	dir := t.TempDir()
	guide := filepath.Join(dir, "style.md")
	if err := os.WriteFile(guide, []byte("Use two-space indentation."), 0o644); err != nil {
		t.Fatalf("write guide: %v", err)
	}

	completer := &stubCompleter{reply: "  " + Sentinel + "\n"}
	out, err := newChecker(t, completer).Check(context.Background(), guide, "+  foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != Sentinel {
		t.Fatalf("expected trimmed sentinel, got %q", out)
	}
	if len(completer.prompts) != 1 || !strings.Contains(completer.prompts[0], "Use two-space indentation.") {
		t.Fatalf("guide content must reach the prompt")
	}
}
