package service

import (
	"strings"
	"unicode"
)

const (
	maxChunkSize = 1000
	chunkOverlap = 200
)

// SplitText splits document text into overlapping segments of at most
// maxChunkSize runes. Each segment after the first starts exactly
// chunkOverlap runes before the previous segment's end, so dropping the
// first chunkOverlap runes of every segment but the first reconstructs
// the input. Cut points prefer, in order: paragraph break, sentence end,
// word boundary, hard cut. Empty or whitespace-only input yields nil.
func SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= maxChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		cut := findCut(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - chunkOverlap
	}

	return chunks
}

// findCut picks the cut position in (start+chunkOverlap, end], scanning
// backwards from end for the best natural boundary. The lower bound
// guarantees forward progress once the overlap is subtracted.
func findCut(runes []rune, start, end int) int {
	minCut := start + chunkOverlap + 1

	boundaries := []func([]rune, int) bool{
		isParagraphBreak,
		isSentenceEnd,
		isWordBoundary,
	}
	for _, boundary := range boundaries {
		for i := end; i >= minCut; i-- {
			if boundary(runes, i) {
				return i
			}
		}
	}
	return end
}

// isParagraphBreak reports whether position i sits just after a blank line
func isParagraphBreak(runes []rune, i int) bool {
	return i >= 2 && runes[i-1] == '\n' && runes[i-2] == '\n'
}

// isSentenceEnd reports whether position i sits just after sentence
// punctuation followed by whitespace
func isSentenceEnd(runes []rune, i int) bool {
	if i < 1 || i >= len(runes) {
		return false
	}
	switch runes[i-1] {
	case '.', '!', '?':
		return unicode.IsSpace(runes[i])
	}
	return false
}

// isWordBoundary reports whether position i sits just after whitespace
func isWordBoundary(runes []rune, i int) bool {
	return i >= 1 && unicode.IsSpace(runes[i-1])
}
