// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits normalized text into bounded, overlapping windows
// sized for embedding.
package chunk

import (
	"strings"
	"unicode"
)

const (
	// DefaultSize is the maximum chunk length in runes.
	DefaultSize = 1000

	// DefaultOverlap is the number of runes shared by consecutive chunks.
	DefaultOverlap = 100
)

// Splitter cuts text into overlapping windows, preferring paragraph and
// word boundaries over hard cuts. Sizes are measured in runes so multibyte
// scripts are not penalized.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter returns a splitter with the given window size and overlap.
// Non-positive values fall back to the defaults; the overlap is capped
// below the size so the window always advances.
func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split returns the chunks of text in order. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(strings.TrimSpace(text)) == 0 {
		return nil
	}
	if len(runes) <= s.size {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, piece)
		}
		if end == len(runes) {
			break
		}

		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// breakPoint searches backwards from end for a paragraph break, then a line
// break, then any whitespace, so chunks end on natural boundaries. The
// search stays within the second half of the window; failing that, the hard
// cut at end stands.
func breakPoint(runes []rune, start, end int) int {
	floor := start + (end-start)/2

	for i := end; i > floor+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	for i := end; i > floor; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
