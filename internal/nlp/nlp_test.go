package nlp_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfdesk/internal/nlp"
	"pdfdesk/internal/nlp/mocks"
	"pdfdesk/internal/pdf/pdftest"
)

func TestChunk_Counts(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{299, 1},
		{300, 1},
		{301, 2},
		{600, 2},
		{601, 3},
		{900 + 150, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d words", tt.words), func(t *testing.T) {
			chunks := nlp.Chunk(pdftest.Words(tt.words), 300)
			assert.Len(t, chunks, tt.want)

			total := 0
			for i, c := range chunks {
				n := len(strings.Fields(c))
				if i < len(chunks)-1 {
					assert.Equal(t, 300, n)
				}
				total += n
			}
			assert.Equal(t, tt.words, total)
		})
	}
}

func TestChunk_NonOverlapping(t *testing.T) {
	chunks := nlp.Chunk(pdftest.Words(7), 3)
	assert.Equal(t, []string{"w1 w2 w3", "w4 w5 w6", "w7"}, chunks)
}

func TestChunk_DefaultSize(t *testing.T) {
	assert.Len(t, nlp.Chunk(pdftest.Words(301), 0), 2)
}

func TestDigest(t *testing.T) {
	ctx := context.Background()

	t.Run("each chunk summarized and joined", func(t *testing.T) {
		s := new(mocks.MockSummarizer)
		s.On("Summarize", ctx, "w1 w2", nlp.DefaultBounds).Return("first", nil).Once()
		s.On("Summarize", ctx, "w3", nlp.DefaultBounds).Return("second", nil).Once()

		notes, n, failed := nlp.Digest(ctx, s, "w1 w2 w3", 2, nlp.DefaultBounds)

		assert.Equal(t, "first\n\nsecond", notes)
		assert.Equal(t, 2, n)
		assert.Zero(t, failed)
		s.AssertExpectations(t)
	})

	t.Run("failed chunk becomes placeholder", func(t *testing.T) {
		s := new(mocks.MockSummarizer)
		s.On("Summarize", ctx, "w1 w2", nlp.DefaultBounds).Return("", errors.New("model down")).Once()
		s.On("Summarize", ctx, "w3", nlp.DefaultBounds).Return("second", nil).Once()

		notes, _, failed := nlp.Digest(ctx, s, "w1 w2 w3", 2, nlp.DefaultBounds)

		assert.Equal(t, nlp.SummaryFailed+"\n\nsecond", notes)
		assert.Equal(t, 1, failed)
	})

	t.Run("empty text", func(t *testing.T) {
		s := new(mocks.MockSummarizer)

		notes, n, _ := nlp.Digest(ctx, s, "   ", 300, nlp.DefaultBounds)

		assert.Empty(t, notes)
		assert.Zero(t, n)
		s.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFlashcards(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		g := new(mocks.MockQuestionGenerator)
		g.On("Generate", ctx, "notes", 2).Return([]string{"Q1?", "Q2?"}, nil).Once()

		assert.Equal(t, []string{"Q1?", "Q2?"}, nlp.Flashcards(ctx, g, "notes", 2))
	})

	t.Run("extra questions trimmed", func(t *testing.T) {
		g := new(mocks.MockQuestionGenerator)
		g.On("Generate", ctx, "notes", 2).Return([]string{"Q1?", "Q2?", "Q3?"}, nil).Once()

		assert.Equal(t, []string{"Q1?", "Q2?"}, nlp.Flashcards(ctx, g, "notes", 2))
	})

	t.Run("failure", func(t *testing.T) {
		g := new(mocks.MockQuestionGenerator)
		g.On("Generate", ctx, "notes", 2).Return(nil, errors.New("boom")).Once()

		assert.Equal(t, []string{nlp.FlashcardsFailed}, nlp.Flashcards(ctx, g, "notes", 2))
	})

	t.Run("empty answer", func(t *testing.T) {
		g := new(mocks.MockQuestionGenerator)
		g.On("Generate", ctx, "notes", 2).Return([]string{}, nil).Once()

		assert.Equal(t, []string{nlp.FlashcardsFailed}, nlp.Flashcards(ctx, g, "notes", 2))
	})
}

func TestLead_Summarize(t *testing.T) {
	ctx := context.Background()
	text := "Cats sleep a lot. Dogs bark at night! Birds sing? Fish swim."

	got, err := nlp.Lead{}.Summarize(ctx, text, nlp.Bounds{Min: 5, Max: 100})
	require.NoError(t, err)
	assert.Equal(t, "Cats sleep a lot. Dogs bark at night!", got)

	got, err = nlp.Lead{}.Summarize(ctx, pdftest.Words(50), nlp.Bounds{Min: 20, Max: 10})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(got), 10)

	_, err = nlp.Lead{}.Summarize(ctx, "  ", nlp.DefaultBounds)
	assert.Error(t, err)
}

func TestLead_Generate(t *testing.T) {
	ctx := context.Background()

	qs, err := nlp.Lead{}.Generate(ctx, "Water boils at 100 degrees. Ice melts. Steam rises.", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`What does this mean: "Water boils at 100 degrees"?`,
		`What does this mean: "Ice melts"?`,
	}, qs)

	_, err = nlp.Lead{}.Generate(ctx, "", 2)
	assert.Error(t, err)
}

func TestLead_GenerateSplitsSingleSentence(t *testing.T) {
	ctx := context.Background()

	qs, err := nlp.Lead{}.Generate(ctx, "Photosynthesis turns light into sugar, and plants store that sugar in their roots.", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`What does this mean: "Photosynthesis turns light into sugar"?`,
		`What does this mean: "and plants store that sugar in their roots"?`,
	}, qs)

	qs, err = nlp.Lead{}.Generate(ctx, "Ice melts.", 2)
	require.NoError(t, err)
	assert.Len(t, qs, 1, "too short to split")
}

func TestFlashcards_LeadSingleSentenceNotes(t *testing.T) {
	ctx := context.Background()
	text := pdftest.Words(30) + "."

	notes, chunks, failed := nlp.Digest(ctx, nlp.Lead{}, text, nlp.ChunkWords, nlp.DefaultBounds)
	require.Equal(t, 1, chunks)
	require.Zero(t, failed)

	cards := nlp.Flashcards(ctx, nlp.Lead{}, notes, nlp.FlashcardCount)
	assert.Len(t, cards, nlp.FlashcardCount)
	assert.NotContains(t, cards, nlp.FlashcardsFailed)
}
