package service

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pdfdesk/internal/model"
)

// InvalidUploadMessage is shown when the request carries no usable PDF.
const InvalidUploadMessage = "Please upload a valid PDF file."

var (
	// ErrInvalidUpload means the request carried no file or a name not ending in .pdf.
	ErrInvalidUpload = errors.New("invalid upload: a .pdf file is required")
	ErrReaderNil     = errors.New("reader is nil")
)

// StepError is a conversion or extraction failure. Its text is shown to the
// user as-is, e.g. "Error converting PDF: malformed pdf: ...".
type StepError struct {
	Message string
	Err     error
}

func (e *StepError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// ValidPDFName reports whether name ends in .pdf, ignoring case.
func ValidPDFName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// newUpload validates an incoming file and describes it. It does not touch disk.
func newUpload(r io.Reader, filename, contentType string, size int64) (*model.Upload, error) {
	if filename == "" || !ValidPDFName(filename) {
		return nil, ErrInvalidUpload
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &model.Upload{
		OriginalName: filepath.Base(filename),
		Extension:    strings.ToLower(filepath.Ext(filename)),
		ContentType:  contentType,
		Size:         size,
		ReceivedAt:   time.Now().UTC(),
	}, nil
}
