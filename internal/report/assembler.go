// Package report assembles the final PR comment body. Assemble is a
// pure merge function: no network, no clock, no process side effects,
// byte-identical output for identical inputs.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mathlib-ci/prsummary/internal/diff"
	"github.com/mathlib-ci/prsummary/internal/sorry"
	"github.com/mathlib-ci/prsummary/internal/summarize"
)

// Marker is the hidden string identifying prior bot comments, used for
// idempotent find-and-update posting.
const Marker = "<!-- lean-pr-summary -->"

type Input struct {
	Summary       string
	SummaryErr    string
	Stats         diff.Stats
	Sorries       sorry.Report
	StyleReport   string
	FileSummaries []summarize.FileSummary
	Truncated     bool
	// IssueRefs maps a sorry tracker id (decl@file) to an open issue
	// number for cross-linking shifted sorries.
	IssueRefs map[string]int
	// GeneratedAt is supplied by the caller so identical inputs always
	// produce identical output.
	GeneratedAt time.Time
}

func Assemble(in Input) string {
	var b strings.Builder

	b.WriteString("### 🤖 PR Summary\n\n")
	b.WriteString(Marker + "\n\n")
	if in.Summary != "" {
		b.WriteString(in.Summary + "\n")
	}
	if in.SummaryErr != "" {
		fmt.Fprintf(&b, "> *Note: the AI summary could not be generated: %s*\n", in.SummaryErr)
	}
	if in.Truncated {
		b.WriteString("> *Note: The diff was too large and was truncated before summarization.*\n")
	}

	b.WriteString("\n---\n\n**Analysis of Changes**\n\n")
	b.WriteString("| Metric | Count |\n| --- | --- |\n")
	fmt.Fprintf(&b, "| 📝 **Files Changed** | %d |\n", in.Stats.FilesChanged)
	fmt.Fprintf(&b, "| ✅ **Lines Added** | %d |\n", in.Stats.LinesAdded)
	fmt.Fprintf(&b, "| ❌ **Lines Removed** | %d |\n", in.Stats.LinesRemoved)

	b.WriteString("\n---\n\n**`sorry` Tracking**\n\n")
	writeSorrySections(&b, in)

	if in.StyleReport != "" {
		b.WriteString("\n---\n\n<details><summary>🎨 **Style Guide Adherence**</summary>\n\n")
		b.WriteString(in.StyleReport)
		b.WriteString("\n</details>\n")
	}

	if len(in.FileSummaries) > 0 {
		b.WriteString("\n---\n\n<details><summary>📄 **Per-File Summaries**</summary>\n\n")
		for _, s := range in.FileSummaries {
			fmt.Fprintf(&b, "*   **%s**: %s\n", s.FilePath, s.Text)
		}
		b.WriteString("</details>\n")
	}

	fmt.Fprintf(&b, "\n---\n\n*Last updated: %s.*", in.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))
	return b.String()
}

func writeSorrySections(b *strings.Builder, in Input) {
	removed := in.Sorries.ByStatus(sorry.StatusRemoved)
	added := in.Sorries.ByStatus(sorry.StatusAdded)
	shifted := in.Sorries.ByStatus(sorry.StatusShifted)

	if len(removed) > 0 {
		fmt.Fprintf(b, "<details><summary>✅ **Removed:** %d `sorry`(s)</summary>\n\n", len(removed))
		for _, rec := range removed {
			fmt.Fprintf(b, "*   %s\n", describe(rec))
		}
		b.WriteString("</details>\n")
	}
	if len(added) > 0 {
		fmt.Fprintf(b, "<details><summary>❌ **Added:** %d `sorry`(s)</summary>\n\n", len(added))
		for _, rec := range added {
			fmt.Fprintf(b, "*   %s\n", describe(rec))
		}
		b.WriteString("</details>\n")
	}
	if len(shifted) > 0 {
		fmt.Fprintf(b, "<details><summary>✏️ **Moved:** %d `sorry`(s) (line number changed)</summary>\n\n", len(shifted))
		for _, rec := range shifted {
			link := ""
			if num, ok := in.IssueRefs[TrackerID(rec)]; ok {
				link = fmt.Sprintf(" (Issue #%d)", num)
			}
			fmt.Fprintf(b, "*   %s moved from L%d to L%d%s\n", describe(rec), rec.OldLine, rec.NewLine, link)
		}
		b.WriteString("</details>\n")
	}

	if len(removed)+len(added)+len(shifted) == 0 {
		b.WriteString("*   No `sorry`s were added, removed, or moved.\n")
	}

	if total := in.Sorries.Total; total.Total() > 0 {
		fmt.Fprintf(b, "\n**Totals:** %d added / %d removed / %d moved / %d unchanged\n",
			total.Added, total.Removed, total.Shifted, total.Unchanged)
	}
}

func describe(rec sorry.Record) string {
	header := rec.Header
	if header == "" {
		header = "sorry"
	}
	return fmt.Sprintf("`%s` in `%s`", header, rec.FilePath)
}

// TrackerID is the stable identifier linking a sorry to its tracking
// issue: the enclosing declaration name at the file path.
func TrackerID(rec sorry.Record) string {
	return rec.DeclName + "@" + rec.FilePath
}
