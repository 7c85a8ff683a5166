package chordpro

// LineColumn converts a byte offset in content into a 1-based line and
// column pair. The column is the distance from the preceding newline, so it
// is correct for mixed line lengths and for content without a trailing
// newline. Offsets past the end of content are clamped.
func LineColumn(content string, offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	line = 1
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			lastNewline = i
		}
	}

	return line, offset - lastNewline
}
