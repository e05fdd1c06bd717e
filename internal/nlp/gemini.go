package nlp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	genai "google.golang.org/genai"
)

// Gemini implements Summarizer and QuestionGenerator on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini backend. hc may carry instrumentation; nil uses the default client.
func NewGemini(ctx context.Context, apiKey, model string, hc *http.Client) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: c, model: model}, nil
}

func (g *Gemini) prompt(ctx context.Context, text string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Text())
	if out == "" {
		return "", errors.New("empty model response")
	}
	return out, nil
}

func (g *Gemini) Summarize(ctx context.Context, text string, b Bounds) (string, error) {
	p := fmt.Sprintf("Summarize the following text in %d to %d words. Return only the summary, no preamble.\n\n%s", b.Min, b.Max, text)
	return g.prompt(ctx, p)
}

func (g *Gemini) Generate(ctx context.Context, text string, n int) ([]string, error) {
	p := fmt.Sprintf("Write exactly %d short study questions answerable from these notes. One question per line, no numbering, no other text.\n\n%s", n, text)
	out, err := g.prompt(ctx, p)
	if err != nil {
		return nil, err
	}
	return questionLines(out), nil
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// questionLines splits a model answer into one question per non-empty line,
// dropping bullets and numbering.
func questionLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
