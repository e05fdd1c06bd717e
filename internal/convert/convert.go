// Package convert turns a PDF into a Word (.docx) document.
package convert

import (
	"context"
	"fmt"

	"pdfdesk/internal/pdf"
)

// PageRange selects zero-based pages [Start, End]. A negative End means
// through the last page, so PageRange{Start: 0, End: -1} is the whole document.
type PageRange struct {
	Start int
	End   int
}

// AllPages covers every page of the input.
var AllPages = PageRange{Start: 0, End: -1}

// Converter produces a Word document at docxPath from the PDF at pdfPath.
// No output is guaranteed to be removed on failure; callers clean up.
type Converter interface {
	Convert(ctx context.Context, pdfPath, docxPath string, pages PageRange) error
}

// PDFToDOCX converts the text layer of a PDF into a DOCX with one paragraph
// per text line and a page break between source pages.
type PDFToDOCX struct{}

func (PDFToDOCX) Convert(ctx context.Context, pdfPath, docxPath string, pages PageRange) error {
	all, err := pdf.ReadPages(ctx, pdfPath)
	if err != nil {
		return err
	}
	selected, err := pages.apply(all)
	if err != nil {
		return err
	}

	return WriteDOCX(docxPath, selected)
}

func (r PageRange) apply(pages [][]string) ([][]string, error) {
	end := r.End
	if end < 0 || end >= len(pages) {
		end = len(pages) - 1
	}
	if r.Start < 0 || (len(pages) > 0 && r.Start > end) {
		return nil, fmt.Errorf("invalid page range %d-%d for %d pages", r.Start, r.End, len(pages))
	}
	if len(pages) == 0 {
		return nil, nil
	}
	return pages[r.Start : end+1], nil
}
