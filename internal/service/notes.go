package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"pdfdesk/internal/metrics"
	"pdfdesk/internal/model"
	"pdfdesk/internal/nlp"
	"pdfdesk/internal/pdf"
	"pdfdesk/internal/quota"
	"pdfdesk/internal/storage"
)

// NoTextMessage replaces the notes when no page of the PDF carries text.
const NoTextMessage = "No text found in the PDF."

// ErrQuotaExceeded means the session used its free uploads and is not premium.
var ErrQuotaExceeded = errors.New("free upload quota used")

// NotesService defines the PDF to notes and flashcards use case.
type NotesService interface {
	// Process validates the upload, admits it against the session's quota,
	// extracts its text and summarizes it. The upload is removed from the
	// workspace once extraction returns.
	//
	// Errors: ErrInvalidUpload, ErrQuotaExceeded, *StepError for extraction
	// failures. Summarization problems never surface as errors.
	Process(ctx context.Context, sess quota.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Notes, error)
}

// NotesDeps are the collaborators of the notes pipeline.
type NotesDeps struct {
	Store      storage.Storage
	Limiter    *quota.Limiter
	Extractor  pdf.Extractor
	Summarizer nlp.Summarizer
	Questions  nlp.QuestionGenerator
	ChunkWords int
	Metrics    *metrics.Pipeline
}

type notesService struct {
	NotesDeps
	log zerolog.Logger
}

// NewNotesService constructs a new NotesService.
func NewNotesService(deps NotesDeps, log zerolog.Logger) NotesService {
	if deps.ChunkWords <= 0 {
		deps.ChunkWords = nlp.ChunkWords
	}
	return &notesService{
		NotesDeps: deps,
		log:       log.With().Str("component", "notes").Logger(),
	}
}

func (s *notesService) Process(ctx context.Context, sess quota.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Notes, error) {
	up, err := newUpload(r, originalFilename, contentType, size)
	if err != nil {
		s.Metrics.NotesUpload(metrics.NotesInvalid)
		return nil, err
	}

	decision, err := s.Limiter.Admit(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		s.Metrics.NotesUpload(metrics.NotesRejected)
		return nil, ErrQuotaExceeded
	}

	text, err := s.extract(ctx, up, r)
	switch {
	case errors.Is(err, pdf.ErrNoText):
		s.Metrics.NotesUpload(metrics.NotesNoText)
		return &model.Notes{Notes: NoTextMessage}, nil
	case err != nil:
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.Metrics.NotesUpload(metrics.NotesExtractFailed)
			s.log.Warn().Err(err).Str("upload", up.OriginalName).Msg("extraction failed")
		}
		return nil, err
	}

	notes, chunks, failed := nlp.Digest(ctx, s.Summarizer, text, s.ChunkWords, nlp.DefaultBounds)
	s.Metrics.ChunkSummaries(chunks, failed)
	cards := nlp.Flashcards(ctx, s.Questions, notes, nlp.FlashcardCount)
	s.Metrics.NotesUpload(metrics.NotesProcessed)

	s.log.Debug().
		Str("upload", up.OriginalName).
		Int("uploads_used", decision.Used).
		Bool("premium", decision.Premium).
		Int("chunks", chunks).
		Int("failed_chunks", failed).
		Msg("notes generated")

	return &model.Notes{Notes: notes, Flashcards: cards, Chunks: chunks}, nil
}

// extract parks the upload under a unique name, reads its text and removes it.
// Extraction failures come back as *StepError; pdf.ErrNoText is passed through.
func (s *notesService) extract(ctx context.Context, up *model.Upload, r io.Reader) (string, error) {
	key := storage.UniqueKey("uploaded", ".pdf")
	obj, err := s.Store.Put(ctx, key, r, storage.PutObjectOptions{
		ContentType: up.ContentType,
		Metadata:    map[string]string{"original-filename": up.OriginalName},
	})
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	up.Path = obj.Path
	defer func() {
		if err := s.Store.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cleanup failed")
		}
	}()

	text, err := s.Extractor.Extract(ctx, up.Path)
	if err != nil && !errors.Is(err, pdf.ErrNoText) {
		return "", &StepError{Message: "Error extracting text", Err: err}
	}
	return text, err
}
