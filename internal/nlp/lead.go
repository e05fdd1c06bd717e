package nlp

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Lead is an offline backend used when no model API key is configured.
// Summaries are the leading sentences of a chunk; questions are built from
// the leading sentences of the notes.
type Lead struct{}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

func sentences(text string) []string {
	var out []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Summarize keeps whole sentences until at least b.Min words are collected,
// never exceeding b.Max words.
func (Lead) Summarize(_ context.Context, text string, b Bounds) (string, error) {
	var (
		kept  []string
		count int
	)
	for _, s := range sentences(text) {
		n := len(strings.Fields(s))
		if count+n > b.Max {
			if count == 0 {
				kept = append(kept, strings.Join(strings.Fields(s)[:b.Max], " "))
			}
			break
		}
		kept = append(kept, s)
		count += n
		if count >= b.Min {
			break
		}
	}
	if len(kept) == 0 {
		return "", errors.New("nothing to summarize")
	}
	return strings.Join(kept, " "), nil
}

// minTopicWords is the shortest fragment Generate will ask about.
const minTopicWords = 3

// Generate turns the first n sentences of text into review prompts. When the
// text has fewer than n sentences, long sentences are split at a clause
// boundary (or their middle) so that n prompts can still be produced.
func (Lead) Generate(_ context.Context, text string, n int) ([]string, error) {
	topics := sentences(text)
	if len(topics) < n {
		topics = splitTopics(topics, n)
	}
	var out []string
	for _, s := range topics {
		if len(out) == n {
			break
		}
		out = append(out, "What does this mean: \""+strings.TrimRight(s, ".!?,;:")+"\"?")
	}
	if len(out) == 0 {
		return nil, errors.New("no sentences to ask about")
	}
	return out, nil
}

// splitTopics halves the longest topic until there are n of them or none is
// long enough to give two fragments of minTopicWords.
func splitTopics(topics []string, n int) []string {
	for len(topics) < n {
		longest, words := -1, []string(nil)
		for i, t := range topics {
			if w := strings.Fields(t); len(w) > len(words) {
				longest, words = i, w
			}
		}
		if longest < 0 || len(words) < 2*minTopicWords {
			break
		}
		cut := clauseCut(words)
		left := strings.Join(words[:cut], " ")
		right := strings.Join(words[cut:], " ")
		topics = append(topics[:longest], append([]string{left, right}, topics[longest+1:]...)...)
	}
	return topics
}

// clauseCut returns the split index closest to the middle of words that
// follows a clause mark, or the middle itself when there is none.
func clauseCut(words []string) int {
	mid := len(words) / 2
	best := -1
	for i := minTopicWords; i <= len(words)-minTopicWords; i++ {
		if !strings.ContainsAny(words[i-1][len(words[i-1])-1:], ",;:") {
			continue
		}
		if best < 0 || abs(i-mid) < abs(best-mid) {
			best = i
		}
	}
	if best < 0 {
		return mid
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
