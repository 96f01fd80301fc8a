// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize extracts stable identities and canonical text from raw
// sources: PDF files become per-page text units, feed entries become a
// single representative sentence.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// normalizeText lowercases and collapses all whitespace runs to single
// spaces. Used for identity computation only, never for display.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRE.ReplaceAllString(s, " ")
}

// StableID returns the identity hash for a news candidate: the SHA-256 of
// the normalized title joined with the raw link. The same article always
// maps to the same identity regardless of retrieval order or incidental
// whitespace and case differences in the title.
func StableID(title, link string) string {
	base := normalizeText(title) + "|" + strings.TrimSpace(link)
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])
}

// FileID returns the identity hash for a document candidate: the SHA-256
// of the full file contents. Renaming a file keeps its identity; changing
// its bytes produces a new one.
func FileID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
