package report

import (
	"strings"
	"testing"
	"time"

	"github.com/mathlib-ci/prsummary/internal/diff"
	"github.com/mathlib-ci/prsummary/internal/sorry"
	"github.com/mathlib-ci/prsummary/internal/summarize"
)

func sampleInput() Input {
	return Input{
		Summary: "Adds two lemmas about ordered fields.",
		Stats:   diff.Stats{FilesChanged: 2, LinesAdded: 10, LinesRemoved: 3},
		Sorries: sorry.Report{
			Total: sorry.Counts{Added: 1, Shifted: 1},
			Files: []sorry.FileResult{{
				Path:   "Mathlib/Order/Field.lean",
				Counts: sorry.Counts{Added: 1, Shifted: 1},
				Records: []sorry.Record{
					{
						FilePath: "Mathlib/Order/Field.lean",
						Status:   sorry.StatusShifted,
						DeclName: "foo",
						Header:   "theorem foo : True",
						OldLine:  4,
						NewLine:  9,
					},
					{
						FilePath: "Mathlib/Order/Field.lean",
						Status:   sorry.StatusAdded,
						DeclName: "bar",
						Header:   "lemma bar : False",
						NewLine:  20,
					},
				},
			}},
		},
		StyleReport: "All changes adhere to the style guide.",
		FileSummaries: []summarize.FileSummary{
			{FilePath: "Mathlib/Order/Field.lean", Text: "Adds lemma bar."},
		},
		IssueRefs:   map[string]int{"foo@Mathlib/Order/Field.lean": 123},
		GeneratedAt: time.Date(2026, 8, 26, 12, 30, 0, 0, time.UTC),
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	in := sampleInput()
	first := Assemble(in)
	second := Assemble(in)
	if first != second {
		t.Fatalf("assembler output must be byte-identical for identical inputs")
	}
}

func TestAssemble_Sections(t *testing.T) {
	out := Assemble(sampleInput())

	for _, want := range []string{
		Marker,
		"Adds two lemmas about ordered fields.",
		"| 📝 **Files Changed** | 2 |",
		"`lemma bar : False` in `Mathlib/Order/Field.lean`",
		"moved from L4 to L9 (Issue #123)",
		"**Totals:** 1 added / 0 removed / 1 moved / 0 unchanged",
		"All changes adhere to the style guide.",
		"*Last updated: 2026-08-26 12:30 UTC.*",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAssemble_StyleSentinelVerbatim(t *testing.T) {
	in := sampleInput()
	in.StyleReport = "All changes adhere to the style guide."
	out := Assemble(in)
	if !strings.Contains(out, in.StyleReport) {
		t.Fatalf("sentinel must be rendered verbatim")
	}
}

func TestAssemble_NoSorries(t *testing.T) {
	in := sampleInput()
	in.Sorries = sorry.Report{}
	out := Assemble(in)
	if !strings.Contains(out, "No `sorry`s were added, removed, or moved.") {
		t.Fatalf("expected the empty-tracking line:\n%s", out)
	}
	if strings.Contains(out, "**Totals:**") {
		t.Fatalf("no totals line expected with zero occurrences")
	}
}

func TestAssemble_SummaryFailureNote(t *testing.T) {
	in := sampleInput()
	in.Summary = ""
	in.SummaryErr = "completion request to gemini failed (timeout)"
	out := Assemble(in)
	if !strings.Contains(out, "the AI summary could not be generated") {
		t.Fatalf("expected failure note:\n%s", out)
	}
}

func TestAssemble_TruncationNote(t *testing.T) {
	in := sampleInput()
	in.Truncated = true
	out := Assemble(in)
	if !strings.Contains(out, "diff was too large") {
		t.Fatalf("expected truncation note")
	}
}
