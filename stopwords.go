package pundit

import (
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
)

// A Stopset is the set of terms removed before sentiment scoring and
// vocabulary construction. Matching is case-insensitive.
type Stopset struct {
	terms map[string]bool
}

// NewStopset builds a stop set from the given terms only.
func NewStopset(terms ...string) *Stopset {
	s := &Stopset{terms: make(map[string]bool, len(terms))}
	for _, t := range terms {
		s.terms[strings.ToLower(t)] = true
	}
	return s
}

// EnglishStopset returns the default English stop set, plus any extra terms.
func EnglishStopset(extra ...string) *Stopset {
	s := NewStopset(englishStopTerms()...)
	for _, t := range extra {
		s.terms[strings.ToLower(t)] = true
	}
	return s
}

// Contains reports whether term is in the stop set.
func (s *Stopset) Contains(term string) bool {
	return s.terms[strings.ToLower(term)]
}

// Len returns the number of terms in the stop set.
func (s *Stopset) Len() int {
	return len(s.terms)
}

// Filter removes every token row whose term is in the stop set. The returned
// table never has more rows than the input.
func (s *Stopset) Filter(rows []TokenRow) []TokenRow {
	out := make([]TokenRow, 0, len(rows))
	for _, row := range rows {
		if s.Contains(row.Term) {
			continue
		}
		out = append(out, row)
	}
	return out
}

var (
	englishStopOnce sync.Once
	englishStop     []string
)

// englishStopTerms derives the English stop list from the stopwords library.
// The library doesn't export its word lists directly, so candidate words are
// probed one at a time: a word the library filters out is a stop word.
func englishStopTerms() []string {
	englishStopOnce.Do(func() {
		for _, word := range stopCandidates {
			cleaned := strings.TrimSpace(stopwords.CleanString(word, "en", false))
			if cleaned == "" || cleaned != word {
				englishStop = append(englishStop, word)
			}
		}
	})
	return englishStop
}

// stopCandidates lists common function words to probe against the library.
var stopCandidates = []string{
	// Articles, pronouns, prepositions, conjunctions
	"a", "an", "and", "are", "as", "at", "be", "been", "by", "for", "from",
	"has", "had", "have", "he", "her", "his", "how", "i", "in", "is", "it",
	"its", "of", "on", "or", "she", "that", "the", "their", "them", "they",
	"this", "to", "was", "we", "were", "what", "when", "where", "which", "who",
	"will", "with", "would", "you", "your",
	// Common verbs and other frequent words
	"about", "after", "all", "also", "am", "any", "back", "because", "before",
	"being", "between", "both", "but", "can", "could", "did", "do", "does",
	"down", "each", "even", "first", "get", "give", "go", "going", "got",
	"here", "him", "himself", "if", "into", "just", "know", "last", "made",
	"make", "many", "may", "me", "might", "more", "most", "much", "must",
	"my", "never", "no", "not", "now", "off", "only", "other", "our", "out",
	"over", "own", "said", "same", "see", "should", "since", "so", "some",
	"still", "such", "take", "than", "then", "there", "these", "thing",
	"think", "those", "through", "time", "too", "two", "under", "up", "upon",
	"us", "use", "used", "using", "very", "want", "way", "well", "went",
	"while", "why", "yet",
}
