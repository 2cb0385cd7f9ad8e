package render

import "strings"

// ChunkLines splits text into chunks of at most limit-ChunkMargin characters,
// breaking only at line boundaries. A single line longer than the budget
// becomes its own oversized chunk rather than being split mid-line, and no
// empty chunks are emitted. Concatenating the returned chunks reconstructs
// the input exactly.
func ChunkLines(text string, limit int) []string {
	budget := limit - ChunkMargin

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if current.Len() > 0 && current.Len()+len(line) > budget {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
