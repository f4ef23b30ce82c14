package diff

import "fmt"

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
)

type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is one body line of a hunk, classified by its leading marker.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous change region of a file. OldLen counts
// context+removed lines, NewLen counts context+added lines.
type Hunk struct {
	OldStart int
	OldLen   int
	NewStart int
	NewLen   int
	Lines    []Line
}

// File is the parsed diff of a single file. Raw preserves the file's
// original diff text, including all headers, for prompt construction.
type File struct {
	OldPath string
	NewPath string
	Kind    ChangeKind
	Binary  bool
	Hunks   []Hunk
	Raw     string
}

// Path returns the post-image path, falling back to the pre-image path
// for deleted files.
func (f File) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// MalformedDiffError reports a hunk whose declared line counts disagree
// with the lines actually present. It aborts the run: every downstream
// line-number computation would be wrong after a desynchronization.
type MalformedDiffError struct {
	Path        string
	HunkHeader  string
	ExpectedOld int
	GotOld      int
	ExpectedNew int
	GotNew      int
}

func (e *MalformedDiffError) Error() string {
	return fmt.Sprintf("malformed diff for %s at %q: declared -%d/+%d lines, consumed -%d/+%d",
		e.Path, e.HunkHeader, e.ExpectedOld, e.ExpectedNew, e.GotOld, e.GotNew)
}

// Stats are whole-diff line statistics reported verbatim in the comment.
type Stats struct {
	FilesChanged int
	LinesAdded   int
	LinesRemoved int
}

// CollectStats sums line statistics across all parsed files.
func CollectStats(files []File) Stats {
	s := Stats{FilesChanged: len(files)}
	for _, f := range files {
		for _, h := range f.Hunks {
			for _, line := range h.Lines {
				switch line.Kind {
				case LineAdded:
					s.LinesAdded++
				case LineRemoved:
					s.LinesRemoved++
				}
			}
		}
	}
	return s
}
