// Package nlp holds the summarization and flashcard steps of the notes app.
// Model backends sit behind Summarizer and QuestionGenerator; the functions
// here never fail, they degrade to placeholder text instead.
package nlp

import (
	"context"
	"strings"
)

const (
	// ChunkWords is the default number of words summarized at a time.
	ChunkWords = 300
	// FlashcardCount is how many questions are requested from the generator.
	FlashcardCount = 2

	SummaryFailed    = "[Summary failed for this chunk]"
	FlashcardsFailed = "Could not generate flashcards."
)

// DefaultBounds is the target summary length per chunk, in words.
var DefaultBounds = Bounds{Min: 20, Max: 100}

// Bounds is a target length range in words.
type Bounds struct {
	Min int
	Max int
}

// Summarizer condenses one chunk of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, b Bounds) (string, error)
}

// QuestionGenerator produces up to n study questions from text.
type QuestionGenerator interface {
	Generate(ctx context.Context, text string, n int) ([]string, error)
}

// Chunk splits text into non-overlapping slices of size words.
// The last chunk may be shorter. Text with no words yields no chunks.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = ChunkWords
	}
	words := strings.Fields(text)
	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// Digest summarizes every chunk independently and joins the summaries with a
// blank line. A chunk whose summary fails is replaced by SummaryFailed.
// It returns the notes, the number of chunks and how many of them failed.
func Digest(ctx context.Context, s Summarizer, text string, size int, b Bounds) (notes string, chunks, failed int) {
	parts := Chunk(text, size)
	summaries := make([]string, 0, len(parts))
	for _, c := range parts {
		sum, err := s.Summarize(ctx, c, b)
		if err != nil {
			sum = SummaryFailed
			failed++
		}
		summaries = append(summaries, sum)
	}
	return strings.Join(summaries, "\n\n"), len(parts), failed
}

// Flashcards asks g for n questions about notes. Any failure, or an empty
// answer, yields the single FlashcardsFailed entry.
func Flashcards(ctx context.Context, g QuestionGenerator, notes string, n int) []string {
	qs, err := g.Generate(ctx, notes, n)
	if err != nil || len(qs) == 0 {
		return []string{FlashcardsFailed}
	}
	if len(qs) > n {
		qs = qs[:n]
	}
	return qs
}
