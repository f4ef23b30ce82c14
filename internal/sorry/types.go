package sorry

// Status is the fate of one placeholder occurrence across the diff.
type Status string

const (
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusShifted   Status = "shifted"
	StatusUnchanged Status = "unchanged"
)

// Occurrence is one sorry found in a single file image. Line is 1-based
// within that image. Keyword and DeclName identify the enclosing
// declaration as far as the scanning heuristic can tell.
type Occurrence struct {
	Line     int
	Keyword  string
	DeclName string
	Header   string
}

// Record is the classified fate of one occurrence. OldLine is zero for
// added occurrences, NewLine is zero for removed ones. Records are
// immutable once produced and live only for the current run.
type Record struct {
	FilePath string
	Status   Status
	Keyword  string
	DeclName string
	Header   string
	OldLine  int
	NewLine  int
}

// Counts aggregates record statuses.
type Counts struct {
	Added     int
	Removed   int
	Shifted   int
	Unchanged int
}

func (c *Counts) bump(s Status) {
	switch s {
	case StatusAdded:
		c.Added++
	case StatusRemoved:
		c.Removed++
	case StatusShifted:
		c.Shifted++
	case StatusUnchanged:
		c.Unchanged++
	}
}

func (c Counts) Total() int {
	return c.Added + c.Removed + c.Shifted + c.Unchanged
}

// FileResult holds the classification for one changed file.
type FileResult struct {
	Path    string
	Counts  Counts
	Records []Record
}

// Report is the whole-diff sorry analysis, the ground truth rendered
// verbatim in the PR comment.
type Report struct {
	Total Counts
	Files []FileResult
}

// ByStatus returns all records with the given status, in file order.
func (r Report) ByStatus(s Status) []Record {
	var out []Record
	for _, f := range r.Files {
		for _, rec := range f.Records {
			if rec.Status == s {
				out = append(out, rec)
			}
		}
	}
	return out
}
