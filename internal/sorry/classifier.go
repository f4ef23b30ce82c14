package sorry

import (
	"strings"

	"github.com/mathlib-ci/prsummary/internal/diff"
)

const leanExtension = ".lean"

// Analyze classifies every placeholder occurrence in every Lean file of
// the diff. Non-Lean and binary files contribute nothing.
func Analyze(files []diff.File, scanner *Scanner) Report {
	var report Report
	for _, f := range files {
		if f.Binary || !strings.HasSuffix(f.Path(), leanExtension) {
			continue
		}
		result := classifyFile(f, scanner)
		if len(result.Records) == 0 {
			continue
		}
		report.Files = append(report.Files, result)
		report.Total.Added += result.Counts.Added
		report.Total.Removed += result.Counts.Removed
		report.Total.Shifted += result.Counts.Shifted
		report.Total.Unchanged += result.Counts.Unchanged
	}
	return report
}

// classifyFile correlates pre-image and post-image occurrences through
// the context-line mapping. Each occurrence is classified independently,
// line by line, with no batching across hunks.
func classifyFile(f diff.File, scanner *Scanner) FileResult {
	result := FileResult{Path: f.Path()}

	var pre, post []Occurrence
	if f.Kind != diff.ChangeAdded {
		pre = scanner.Scan(f.PreImage())
	}
	if f.Kind != diff.ChangeDeleted {
		post = scanner.Scan(f.PostImage())
	}
	mapping := f.LineMapping()

	// Post-image occurrences grouped by line; matched entries are
	// consumed so one new occurrence never pairs with two old ones.
	postByLine := make(map[int][]Occurrence)
	for _, occ := range post {
		postByLine[occ.Line] = append(postByLine[occ.Line], occ)
	}

	record := func(status Status, occ Occurrence, oldLine, newLine int) {
		result.Records = append(result.Records, Record{
			FilePath: f.Path(),
			Status:   status,
			Keyword:  occ.Keyword,
			DeclName: occ.DeclName,
			Header:   occ.Header,
			OldLine:  oldLine,
			NewLine:  newLine,
		})
		result.Counts.bump(status)
	}

	for _, occ := range pre {
		newLine, mapped := mapping[occ.Line]
		if !mapped || len(postByLine[newLine]) == 0 {
			record(StatusRemoved, occ, occ.Line, 0)
			continue
		}
		counterpart := postByLine[newLine][0]
		postByLine[newLine] = postByLine[newLine][1:]
		if occ.Line == newLine {
			record(StatusUnchanged, occ, occ.Line, counterpart.Line)
		} else {
			record(StatusShifted, occ, occ.Line, counterpart.Line)
		}
	}

	for _, occ := range post {
		remaining := postByLine[occ.Line]
		if len(remaining) > 0 && remaining[0] == occ {
			// Not consumed by any pre-image occurrence.
			postByLine[occ.Line] = remaining[1:]
			record(StatusAdded, occ, 0, occ.Line)
		}
	}

	return result
}
