// Package ai defines the summarization collaborator used when assembling
// patient-facing documents. The concrete implementation is injected; the
// default is a deterministic extractive summarizer that needs no external
// service, so the rest of the system works without any AI backend configured.
package ai

import (
	"context"
	"strings"
	"unicode"
)

// Summarizer condenses free clinical text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxSentences int) (string, error)
}

// Extractive is the default Summarizer. It keeps the first maxSentences
// sentences of the input verbatim, which is predictable and auditable.
type Extractive struct{}

// NewExtractive returns the default extractive summarizer.
func NewExtractive() *Extractive {
	return &Extractive{}
}

// Summarize returns the first maxSentences sentences of text, joined by a
// single space. Whitespace runs are collapsed. An empty input yields an
// empty summary, never an error.
func (e *Extractive) Summarize(_ context.Context, text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := splitSentences(text)
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	return strings.Join(sentences, " "), nil
}

// splitSentences breaks text on sentence-final punctuation. Abbreviation
// handling is intentionally minimal: a period followed by whitespace and an
// uppercase letter (or end of input) closes a sentence.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(strings.Join(strings.Fields(text), " "))
	for i, r := range runes {
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next >= len(runes) || unicode.IsUpper(runes[next]) {
			s := strings.TrimSpace(b.String())
			if s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
