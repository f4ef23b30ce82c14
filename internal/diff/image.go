package diff

// ImageLine is one line of a reconstructed file image, carrying its
// absolute 1-based line number within that image.
type ImageLine struct {
	Number int
	Text   string
}

// PreImage reconstructs the portion of the file's old image covered by
// its hunks: context and removed lines, with absolute old line numbers.
func (f File) PreImage() []ImageLine {
	var image []ImageLine
	for _, h := range f.Hunks {
		old := h.OldStart
		for _, line := range h.Lines {
			switch line.Kind {
			case LineContext, LineRemoved:
				image = append(image, ImageLine{Number: old, Text: line.Text})
				old++
			}
		}
	}
	return image
}

// PostImage reconstructs the portion of the file's new image covered by
// its hunks: context and added lines, with absolute new line numbers.
func (f File) PostImage() []ImageLine {
	var image []ImageLine
	for _, h := range f.Hunks {
		next := h.NewStart
		for _, line := range h.Lines {
			switch line.Kind {
			case LineContext, LineAdded:
				image = append(image, ImageLine{Number: next, Text: line.Text})
				next++
			}
		}
	}
	return image
}

// LineMapping returns the old-line to new-line correspondence established
// by context lines. Lines inside removed-only or added-only regions have
// no entry.
func (f File) LineMapping() map[int]int {
	mapping := make(map[int]int)
	for _, h := range f.Hunks {
		old, next := h.OldStart, h.NewStart
		for _, line := range h.Lines {
			switch line.Kind {
			case LineContext:
				mapping[old] = next
				old++
				next++
			case LineRemoved:
				old++
			case LineAdded:
				next++
			}
		}
	}
	return mapping
}
