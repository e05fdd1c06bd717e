package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/metrics"
	"pdfdesk/internal/nlp"
	nlpMocks "pdfdesk/internal/nlp/mocks"
	"pdfdesk/internal/pdf"
	pdfMocks "pdfdesk/internal/pdf/mocks"
	"pdfdesk/internal/pdf/pdftest"
	"pdfdesk/internal/quota"
)

type memSession struct {
	id     string
	values map[string]interface{}
}

func newMemSession() *memSession {
	return &memSession{id: "sess-1", values: map[string]interface{}{}}
}

func (s *memSession) ID() string                      { return s.id }
func (s *memSession) Get(key string) interface{}      { return s.values[key] }
func (s *memSession) Set(key string, val interface{}) { s.values[key] = val }
func (s *memSession) Save() error                     { return nil }

type notesFixture struct {
	svc        NotesService
	dir        string
	extractor  *pdfMocks.MockExtractor
	summarizer *nlpMocks.MockSummarizer
	questions  *nlpMocks.MockQuestionGenerator
	reg        *prometheus.Registry
}

func newNotesFixture(t *testing.T, premium quota.PremiumResolver) *notesFixture {
	t.Helper()
	store, dir := newWorkspace(t)
	reg := prometheus.NewRegistry()
	m, err := metrics.NewPipeline(reg)
	require.NoError(t, err)

	f := &notesFixture{
		dir:        dir,
		extractor:  new(pdfMocks.MockExtractor),
		summarizer: new(nlpMocks.MockSummarizer),
		questions:  new(nlpMocks.MockQuestionGenerator),
		reg:        reg,
	}
	f.svc = NewNotesService(NotesDeps{
		Store:      store,
		Limiter:    quota.NewLimiter(1, premium, zerolog.Nop()),
		Extractor:  f.extractor,
		Summarizer: f.summarizer,
		Questions:  f.questions,
		Metrics:    m,
	}, zerolog.Nop())
	return f
}

// uploadExists matches a path that is present on disk when the extractor runs.
func uploadExists() interface{} {
	return mock.MatchedBy(func(p string) bool {
		_, err := os.Stat(p)
		return err == nil && strings.HasSuffix(p, ".pdf")
	})
}

func TestNotesService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh session short document", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		sess := newMemSession()
		text := pdftest.Words(42)

		f.extractor.On("Extract", ctx, uploadExists()).Return(text+"\n", nil).Once()
		f.summarizer.On("Summarize", ctx, text, nlp.DefaultBounds).Return("a short summary", nil).Once()
		f.questions.On("Generate", ctx, "a short summary", nlp.FlashcardCount).
			Return([]string{"What is w1?", "Why w2?", "Extra?"}, nil).Once()

		res, err := f.svc.Process(ctx, sess, strings.NewReader("%PDF"), "lecture.pdf", "application/pdf", 4)
		require.NoError(t, err)

		assert.Equal(t, "a short summary", res.Notes)
		assert.Equal(t, []string{"What is w1?", "Why w2?"}, res.Flashcards)
		assert.Equal(t, 1, res.Chunks)
		assert.Equal(t, 1, sess.values[quota.UploadsKey])
		assertEmptyDir(t, f.dir)
		f.extractor.AssertExpectations(t)
		f.summarizer.AssertExpectations(t)
		f.questions.AssertExpectations(t)
	})

	t.Run("second upload rejected without extraction", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		sess := newMemSession()
		sess.values[quota.UploadsKey] = 1

		res, err := f.svc.Process(ctx, sess, strings.NewReader("%PDF"), "lecture.pdf", "", 4)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Equal(t, 1, sess.values[quota.UploadsKey])
		f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		assertEmptyDir(t, f.dir)
	})

	t.Run("premium session keeps uploading", func(t *testing.T) {
		f := newNotesFixture(t, quota.Static(true))
		sess := newMemSession()
		sess.values[quota.UploadsKey] = 5

		f.extractor.On("Extract", ctx, uploadExists()).Return("one two three", nil).Once()
		f.summarizer.On("Summarize", ctx, "one two three", nlp.DefaultBounds).Return("s", nil).Once()
		f.questions.On("Generate", ctx, "s", nlp.FlashcardCount).Return([]string{"q1", "q2"}, nil).Once()

		res, err := f.svc.Process(ctx, sess, strings.NewReader("%PDF"), "x.PDF", "", 4)
		require.NoError(t, err)
		assert.Equal(t, "s", res.Notes)
		assert.Equal(t, 6, sess.values[quota.UploadsKey])
	})

	t.Run("no text found", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		f.extractor.On("Extract", ctx, uploadExists()).Return("", pdf.ErrNoText).Once()

		res, err := f.svc.Process(ctx, newMemSession(), strings.NewReader("%PDF"), "scan.pdf", "", 4)
		require.NoError(t, err)

		assert.Equal(t, NoTextMessage, res.Notes)
		assert.Empty(t, res.Flashcards)
		f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
		f.questions.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		assertEmptyDir(t, f.dir)
	})

	t.Run("extraction failure still counts", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		sess := newMemSession()
		f.extractor.On("Extract", ctx, uploadExists()).Return("", errors.New("malformed pdf: bad xref")).Once()

		res, err := f.svc.Process(ctx, sess, strings.NewReader("junk"), "broken.pdf", "", 4)

		assert.Nil(t, res)
		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "Error extracting text: malformed pdf: bad xref", err.Error())
		assert.Equal(t, 1, sess.values[quota.UploadsKey])
		f.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
		assertEmptyDir(t, f.dir)
	})

	t.Run("invalid file does not consume quota", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		sess := newMemSession()

		_, err := f.svc.Process(ctx, sess, strings.NewReader("x"), "photo.png", "", 1)

		assert.ErrorIs(t, err, ErrInvalidUpload)
		assert.Nil(t, sess.values[quota.UploadsKey])
		assertEmptyDir(t, f.dir)
	})

	t.Run("long document is chunked", func(t *testing.T) {
		f := newNotesFixture(t, nil)
		f.extractor.On("Extract", ctx, uploadExists()).Return(pdftest.Words(650), nil).Once()
		f.summarizer.On("Summarize", ctx, mock.Anything, nlp.DefaultBounds).Return("part", nil).Twice()
		f.summarizer.On("Summarize", ctx, mock.Anything, nlp.DefaultBounds).Return("", errors.New("timeout")).Once()
		f.questions.On("Generate", ctx, mock.Anything, nlp.FlashcardCount).Return(nil, errors.New("quota")).Once()

		res, err := f.svc.Process(ctx, newMemSession(), strings.NewReader("%PDF"), "book.pdf", "", 4)
		require.NoError(t, err)

		assert.Equal(t, 3, res.Chunks)
		assert.Equal(t, "part\n\npart\n\n"+nlp.SummaryFailed, res.Notes)
		assert.Equal(t, []string{nlp.FlashcardsFailed}, res.Flashcards)
		f.summarizer.AssertNumberOfCalls(t, "Summarize", 3)
	})
}

func TestNotesService_RealPDF(t *testing.T) {
	ctx := context.Background()
	store, dir := newWorkspace(t)

	svc := NewNotesService(NotesDeps{
		Store:      store,
		Limiter:    quota.NewLimiter(1, nil, zerolog.Nop()),
		Extractor:  pdf.TextExtractor{},
		Summarizer: nlp.Lead{},
		Questions:  nlp.Lead{},
	}, zerolog.Nop())

	src := pdftest.Build([]string{"Go is a programming language.", "It was designed at Google."})
	res, err := svc.Process(ctx, newMemSession(), bytes.NewReader(src), "intro.pdf", "application/pdf", int64(len(src)))
	require.NoError(t, err)

	assert.Contains(t, res.Notes, "Go is a programming language.")
	assert.Len(t, res.Flashcards, 2)
	assertEmptyDir(t, dir)
}

func TestNotesService_Metrics(t *testing.T) {
	ctx := context.Background()
	f := newNotesFixture(t, nil)
	sess := newMemSession()

	f.extractor.On("Extract", ctx, uploadExists()).Return("", pdf.ErrNoText).Once()

	_, _ = f.svc.Process(ctx, sess, strings.NewReader("x"), "a.txt", "", 1)
	_, _ = f.svc.Process(ctx, sess, strings.NewReader("%PDF"), "a.pdf", "", 4)
	_, _ = f.svc.Process(ctx, sess, strings.NewReader("%PDF"), "a.pdf", "", 4)

	// invalid, no_text and rejected
	n, err := testutil.GatherAndCount(f.reg, "pdfdesk_notes_uploads_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
