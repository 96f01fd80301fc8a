// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Page is one PDF page's extracted text with its 1-based page number.
type Page struct {
	Number int
	Text   string
}

// PageLoader extracts per-page text from a PDF file.
type PageLoader interface {
	// LoadPages returns one Page per PDF page. A missing file yields an
	// empty set with no error.
	LoadPages(ctx context.Context, path string) ([]Page, error)
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Pdftotext extracts PDF text by shelling out to the poppler pdftotext
// binary. Pages arrive separated by form-feed characters on stdout.
type Pdftotext struct {
	runner CommandRunner
}

// NewPdftotext returns a loader backed by the system pdftotext binary.
func NewPdftotext() *Pdftotext {
	return &Pdftotext{runner: execRunner{}}
}

// NewPdftotextWithRunner returns a loader using a custom command runner.
func NewPdftotextWithRunner(r CommandRunner) *Pdftotext {
	return &Pdftotext{runner: r}
}

// LoadPages implements PageLoader.
func (p *Pdftotext) LoadPages(ctx context.Context, path string) ([]Page, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	out, err := p.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("pdftotext %s: %s", path, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("pdftotext %s: %w", path, err)
	}

	var pages []Page
	for i, raw := range strings.Split(string(out), "\f") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}
	return pages, nil
}
