package source

// OffsetToDetail converts a byte offset into a 1-based line/column pair.
// Offsets past the end of the file clamp to the end.
func OffsetToDetail(f *File, offset int) Detail {
	if offset > len(f.Source) {
		offset = len(f.Source)
	}
	if offset < 0 {
		offset = 0
	}
	line := f.lineOf(offset)
	return Detail{Line: line + 1, Column: offset - f.lineStarts[line] + 1}
}

// DetailToOffset converts a 1-based line/column pair back into a byte offset.
// It reports false when the line does not exist; columns past the end of the line
// clamp to the line end.
func DetailToOffset(f *File, d Detail) (int, bool) {
	if d.Line < 1 || d.Line > len(f.lineStarts) {
		return 0, false
	}
	start := f.lineStarts[d.Line-1]
	end := len(f.Source)
	if d.Line < len(f.lineStarts) {
		end = f.lineStarts[d.Line] - 1 // the newline itself
	}
	col := d.Column - 1
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end, true
	}
	return start + col, true
}
