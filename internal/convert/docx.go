package convert

import (
	"fmt"

	"github.com/gomutex/godocx"
)

// ContentType is the MIME type of the documents WriteDOCX produces.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WriteDOCX saves pages as a Word document at path: one paragraph per text
// line and a page break between consecutive pages.
func WriteDOCX(path string, pages [][]string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}
	for i, lines := range pages {
		if i > 0 {
			doc.AddPageBreak()
		}
		for _, line := range lines {
			doc.AddParagraph(line)
		}
	}
	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}
