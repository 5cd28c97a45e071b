package pundit

import (
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// punktSegmenter splits text into sentences using the punkt algorithm.
type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func newPunktSegmenter() (*punktSegmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &punktSegmenter{tokenizer: tokenizer}, nil
}

func (p *punktSegmenter) segment(text string) []Sentence {
	var out []Sentence
	cursor := 0
	for _, s := range p.tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		start := strings.Index(text[cursor:], trimmed)
		if start < 0 {
			start = 0
		}
		start += cursor
		end := start + len(trimmed)
		cursor = end
		out = append(out, Sentence{Text: trimmed, Start: start, End: end})
	}
	return out
}

// Snippet returns the leading sentences of text, up to max sentences, for
// compact display of representative documents.
func Snippet(text string, max int) string {
	seg, err := newPunktSegmenter()
	if err != nil || max < 1 {
		return text
	}
	sents := seg.segment(text)
	if len(sents) == 0 {
		return text
	}
	if len(sents) > max {
		sents = sents[:max]
	}
	parts := make([]string, len(sents))
	for i, s := range sents {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
