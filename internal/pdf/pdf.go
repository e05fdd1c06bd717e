// Package pdf extracts page text from PDF files.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrNoText is returned when every page of a readable PDF yields no text.
// Callers treat it as a result, not a failure.
var ErrNoText = errors.New("no text found in PDF")

// Extractor returns the concatenated text of every page of a PDF.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// TextExtractor is the MuPDF (go-fitz) backed Extractor.
type TextExtractor struct{}

// Extract joins the text of all pages, one page after another.
// It returns ErrNoText when no page has any text.
func (TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	pages, err := ReadPages(ctx, path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, lines := range pages {
		if len(lines) == 0 {
			continue
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", ErrNoText
	}
	return b.String(), nil
}

// ReadPages returns the text lines of each page in document order.
// A page without text is returned as an empty slice.
func ReadPages(ctx context.Context, path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i+1, err)
		}
		pages = append(pages, textLines(text))
	}
	return pages, nil
}

// textLines splits MuPDF's plain-text output into lines, collapsing runs of
// whitespace inside a line and dropping blank ones.
func textLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
