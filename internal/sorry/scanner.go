package sorry

import (
	"regexp"
	"strings"

	"github.com/mathlib-ci/prsummary/internal/diff"
)

var sorryRegexp = regexp.MustCompile(`\bsorry\b`)

// Scanner locates sorry placeholders in one file image. A line matches
// when it contains both a declaration keyword and the sorry token, or
// when it contains the token while a declaration opened on an earlier
// line is still considered open.
//
// Declaration boundaries are a heuristic, not a grammar. A declaration
// opens on any non-comment line containing a keyword as a word, and
// closes on a blank line followed by a line indented at or below the
// declaration header. Known failure modes: a keyword inside prose or a
// string literal opens a stray declaration (false positive), and a
// declaration that ends without a blank line can swallow the sorry of
// an unrelated construct below it (misattribution).
type Scanner struct {
	keywordRegexp *regexp.Regexp
	nameRegexp    *regexp.Regexp
}

func NewScanner(keywords []string) *Scanner {
	escaped := make([]string, len(keywords))
	for i, k := range keywords {
		escaped[i] = regexp.QuoteMeta(k)
	}
	alternation := strings.Join(escaped, "|")
	return &Scanner{
		keywordRegexp: regexp.MustCompile(`\b(` + alternation + `)\b`),
		nameRegexp:    regexp.MustCompile(`\b(?:` + alternation + `)\s+([^\s({:]+)`),
	}
}

type openDecl struct {
	keyword string
	name    string
	header  string
	indent  int
}

// Scan walks one reconstructed image in order. Occurrences are never
// deduplicated: every token match yields its own entry. A gap in line
// numbers (the image only covers hunk regions) resets declaration state,
// as does a blank line followed by a dedent.
func (s *Scanner) Scan(image []diff.ImageLine) []Occurrence {
	var (
		occurrences  []Occurrence
		decl         *openDecl
		pendingBlank bool
		prevNumber   int
	)

	for _, line := range image {
		if prevNumber != 0 && line.Number != prevNumber+1 {
			decl = nil
			pendingBlank = false
		}
		prevNumber = line.Number

		trimmed := strings.TrimSpace(line.Text)
		if trimmed == "" {
			pendingBlank = true
			continue
		}

		indent := indentWidth(line.Text)
		if decl != nil && pendingBlank && indent <= decl.indent {
			decl = nil
		}
		pendingBlank = false

		if !strings.HasPrefix(trimmed, "--") {
			if kw := s.keywordRegexp.FindStringSubmatch(line.Text); kw != nil {
				name := ""
				if m := s.nameRegexp.FindStringSubmatch(line.Text); m != nil {
					name = m[1]
				}
				decl = &openDecl{
					keyword: kw[1],
					name:    name,
					header:  declHeader(trimmed),
					indent:  indent,
				}
			}
		}

		if decl == nil {
			continue
		}
		for range sorryMatches(line.Text) {
			occurrences = append(occurrences, Occurrence{
				Line:     line.Number,
				Keyword:  decl.keyword,
				DeclName: decl.name,
				Header:   decl.header,
			})
		}
	}
	return occurrences
}

// sorryMatches returns token matches on the line, dropping any that sit
// after a "--" line comment.
func sorryMatches(text string) [][]int {
	matches := sorryRegexp.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	commentPos := strings.Index(text, "--")
	if commentPos < 0 {
		return matches
	}
	var kept [][]int
	for _, m := range matches {
		if m[0] < commentPos {
			kept = append(kept, m)
		}
	}
	return kept
}

// declHeader trims the declaration header at its body, mirroring how it
// is quoted in the final report.
func declHeader(trimmed string) string {
	if idx := strings.Index(trimmed, ":="); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func indentWidth(text string) int {
	width := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		width++
	}
	return width
}
