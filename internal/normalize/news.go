// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minSentenceRunes is the length below which an extracted first sentence is
// considered too thin to stand alone and gets the title prepended.
const minSentenceRunes = 25

var (
	tagRE = regexp.MustCompile(`<[^>]+>`)

	// sentenceEndRE matches the end of the first sentence: terminal
	// punctuation, or the Korean sentence-final "다." form, followed by
	// whitespace or end of input.
	sentenceEndRE = regexp.MustCompile(`([.!?]|다\.)(\s+|$)`)
)

// StripMarkup removes HTML tags and collapses whitespace.
func StripMarkup(s string) string {
	s = tagRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// RepresentativeSentence condenses a feed entry to a single sentence that
// stands in for the full article. The summary is stripped of markup and cut
// at the first sentence boundary; a too-short sentence is prefixed with the
// title, and an empty summary falls back to the title alone.
func RepresentativeSentence(title, summaryHTML string) string {
	summary := StripMarkup(summaryHTML)
	if summary == "" {
		return strings.TrimSpace(title)
	}

	first := summary
	if loc := sentenceEndRE.FindStringIndex(summary); loc != nil {
		first = strings.TrimSpace(summary[:loc[1]])
	}

	if utf8.RuneCountInString(first) < minSentenceRunes {
		return strings.TrimSpace(strings.TrimSpace(title) + " - " + first)
	}
	return first
}
