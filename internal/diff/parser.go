package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fileHeaderRegexp = regexp.MustCompile(`(?m)^diff --git a/(?P<old>.*?) b/(?P<new>.*?)$`)
	hunkHeaderRegexp = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// Parse splits a unified multi-file diff into per-file records. An empty
// or blank input yields an empty slice, not an error. Binary entries and
// rename-only entries are kept with no hunks. The only parse failure is a
// hunk whose declared line counts do not match its body.
func Parse(text string) ([]File, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	matches := fileHeaderRegexp.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	files := make([]File, 0, len(matches))
	for i, loc := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chunk := text[loc[0]:end]
		file, err := parseFileChunk(chunk)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func parseFileChunk(chunk string) (File, error) {
	header := fileHeaderRegexp.FindStringSubmatch(chunk)
	file := File{
		OldPath: header[fileHeaderRegexp.SubexpIndex("old")],
		NewPath: header[fileHeaderRegexp.SubexpIndex("new")],
		Kind:    ChangeModified,
		Raw:     strings.TrimRight(chunk, "\n"),
	}

	lines := strings.Split(chunk, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	var hunk *Hunk
	var hunkHeader string
	oldSeen, newSeen := 0, 0

	closeHunk := func() *MalformedDiffError {
		if hunk == nil {
			return nil
		}
		if oldSeen != hunk.OldLen || newSeen != hunk.NewLen {
			return &MalformedDiffError{
				Path:        file.Path(),
				HunkHeader:  hunkHeader,
				ExpectedOld: hunk.OldLen,
				GotOld:      oldSeen,
				ExpectedNew: hunk.NewLen,
				GotNew:      newSeen,
			}
		}
		file.Hunks = append(file.Hunks, *hunk)
		hunk = nil
		return nil
	}

	for idx, line := range lines {
		if idx == 0 {
			continue // the diff --git header itself
		}

		if m := hunkHeaderRegexp.FindStringSubmatch(line); m != nil {
			if err := closeHunk(); err != nil {
				return File{}, err
			}
			hunk = &Hunk{
				OldStart: atoi(m[1]),
				OldLen:   atoiDefault(m[2], 1),
				NewStart: atoi(m[3]),
				NewLen:   atoiDefault(m[4], 1),
			}
			hunkHeader = line
			oldSeen, newSeen = 0, 0
			continue
		}

		if hunk != nil {
			done := oldSeen == hunk.OldLen && newSeen == hunk.NewLen
			if !done {
				switch {
				case strings.HasPrefix(line, "+"):
					hunk.Lines = append(hunk.Lines, Line{Kind: LineAdded, Text: line[1:]})
					newSeen++
				case strings.HasPrefix(line, "-"):
					hunk.Lines = append(hunk.Lines, Line{Kind: LineRemoved, Text: line[1:]})
					oldSeen++
				case strings.HasPrefix(line, `\`):
					// "\ No newline at end of file" counts for neither side.
				case strings.HasPrefix(line, " "), line == "":
					text := line
					if text != "" {
						text = line[1:]
					}
					hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Text: text})
					oldSeen++
					newSeen++
				default:
					return File{}, &MalformedDiffError{
						Path:        file.Path(),
						HunkHeader:  hunkHeader,
						ExpectedOld: hunk.OldLen,
						GotOld:      oldSeen,
						ExpectedNew: hunk.NewLen,
						GotNew:      newSeen,
					}
				}
				continue
			}
			// The declared counts are satisfied; any further marker line
			// means the header under-declared its body.
			switch {
			case strings.HasPrefix(line, "+"):
				newSeen++
			case strings.HasPrefix(line, "-"):
				oldSeen++
			case strings.HasPrefix(line, " "):
				oldSeen++
				newSeen++
			case strings.HasPrefix(line, `\`):
				continue
			}
			if oldSeen > hunk.OldLen || newSeen > hunk.NewLen {
				return File{}, &MalformedDiffError{
					Path:        file.Path(),
					HunkHeader:  hunkHeader,
					ExpectedOld: hunk.OldLen,
					GotOld:      oldSeen,
					ExpectedNew: hunk.NewLen,
					GotNew:      newSeen,
				}
			}
			if err := closeHunk(); err != nil {
				return File{}, err
			}
		}

		applyFileHeaderLine(&file, line)
	}

	if err := closeHunk(); err != nil {
		return File{}, err
	}

	switch file.Kind {
	case ChangeAdded:
		file.OldPath = ""
	case ChangeDeleted:
		file.NewPath = ""
	}
	return file, nil
}

// applyFileHeaderLine interprets the extended header lines between the
// diff --git line and the first hunk.
func applyFileHeaderLine(file *File, line string) {
	switch {
	case strings.HasPrefix(line, "new file mode"):
		file.Kind = ChangeAdded
	case strings.HasPrefix(line, "deleted file mode"):
		file.Kind = ChangeDeleted
	case strings.HasPrefix(line, "rename from "), strings.HasPrefix(line, "rename to "):
		file.Kind = ChangeRenamed
	case strings.HasPrefix(line, "Binary files "), line == "GIT binary patch":
		file.Binary = true
	case line == "--- /dev/null":
		file.Kind = ChangeAdded
	case line == "+++ /dev/null":
		file.Kind = ChangeDeleted
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
