package pundit

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// A Lexicon is a fixed reference mapping from term to sentiment value. It is
// read-only during scoring; AddTerm and external merges exist for setup.
type Lexicon struct {
	entries map[string]LexiconEntry
	mutex   sync.RWMutex
}

// A LexiconEntry is one term's sentiment information.
type LexiconEntry struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`           // AFINN-style value, typically -5..5.
	Class string  `json:"class,omitempty"` // "positive" or "negative"; derived from Score when empty.
}

// externalLexicon is the JSON structure for external lexicon files.
type externalLexicon struct {
	Terms []LexiconEntry `json:"terms"`
}

// NewLexicon builds a lexicon from the given entries only.
func NewLexicon(entries ...LexiconEntry) *Lexicon {
	lex := &Lexicon{entries: make(map[string]LexiconEntry, len(entries))}
	for _, e := range entries {
		lex.put(e)
	}
	return lex
}

// BaseLexicon returns the built-in English lexicon.
func BaseLexicon() *Lexicon {
	return NewLexicon(baseEntries...)
}

// LoadLexicon returns the built-in lexicon merged with an optional external
// JSON file. An empty path yields the base lexicon unchanged.
func LoadLexicon(externalPath string) (*Lexicon, error) {
	lex := BaseLexicon()
	if externalPath != "" {
		if err := lex.MergeExternal(externalPath); err != nil {
			return nil, fmt.Errorf("failed to load external lexicon: %w", err)
		}
	}
	return lex, nil
}

// MergeExternal loads an external JSON lexicon and merges it in. External
// entries win over built-in ones.
func (lex *Lexicon) MergeExternal(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external externalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	lex.mutex.Lock()
	defer lex.mutex.Unlock()
	for _, e := range external.Terms {
		lex.put(e)
	}
	return nil
}

func (lex *Lexicon) put(e LexiconEntry) {
	if e.Class == "" {
		if e.Score >= 0 {
			e.Class = "positive"
		} else {
			e.Class = "negative"
		}
	}
	lex.entries[strings.ToLower(e.Term)] = e
}

// Score returns the sentiment value for a term and whether the term is in the
// lexicon at all. Scoring joins are inner joins: callers skip terms that miss.
func (lex *Lexicon) Score(term string) (float64, bool) {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()

	entry, ok := lex.entries[strings.ToLower(term)]
	return entry.Score, ok
}

// Class returns the categorical label for a term ("positive" or "negative").
func (lex *Lexicon) Class(term string) (string, bool) {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()

	entry, ok := lex.entries[strings.ToLower(term)]
	return entry.Class, ok
}

// AddTerm adds or replaces a single term.
func (lex *Lexicon) AddTerm(term string, score float64) {
	lex.mutex.Lock()
	defer lex.mutex.Unlock()

	lex.put(LexiconEntry{Term: term, Score: score})
}

// Len returns the number of terms in the lexicon.
func (lex *Lexicon) Len() int {
	lex.mutex.RLock()
	defer lex.mutex.RUnlock()

	return len(lex.entries)
}

// baseEntries is the built-in English lexicon, AFINN-style integer values on a
// -5..5 scale, weighted toward the political-commentary register of the corpus.
var baseEntries = []LexiconEntry{
	// Strong positive
	{Term: "excellent", Score: 3}, {Term: "outstanding", Score: 5},
	{Term: "wonderful", Score: 4}, {Term: "brilliant", Score: 4},
	{Term: "superb", Score: 5}, {Term: "triumph", Score: 4},
	{Term: "thrilled", Score: 5}, {Term: "breakthrough", Score: 3},

	// Moderate positive
	{Term: "good", Score: 3}, {Term: "great", Score: 3},
	{Term: "win", Score: 4}, {Term: "wins", Score: 4},
	{Term: "winning", Score: 4}, {Term: "support", Score: 2},
	{Term: "supported", Score: 2}, {Term: "hope", Score: 2},
	{Term: "hopeful", Score: 2}, {Term: "progress", Score: 2},
	{Term: "reform", Score: 1}, {Term: "freedom", Score: 2},
	{Term: "peace", Score: 2}, {Term: "prosperity", Score: 3},
	{Term: "honest", Score: 2}, {Term: "fair", Score: 2},
	{Term: "strong", Score: 2}, {Term: "success", Score: 2},
	{Term: "successful", Score: 3}, {Term: "popular", Score: 2},
	{Term: "praise", Score: 3}, {Term: "praised", Score: 3},
	{Term: "right", Score: 1}, {Term: "better", Score: 2},
	{Term: "best", Score: 3}, {Term: "like", Score: 2},
	{Term: "love", Score: 3}, {Term: "secure", Score: 2},
	{Term: "approve", Score: 2}, {Term: "approval", Score: 2},

	// Moderate negative
	{Term: "bad", Score: -3}, {Term: "poor", Score: -2},
	{Term: "loss", Score: -3}, {Term: "lose", Score: -3},
	{Term: "losing", Score: -3}, {Term: "fail", Score: -2},
	{Term: "failed", Score: -2}, {Term: "failure", Score: -2},
	{Term: "weak", Score: -2}, {Term: "wrong", Score: -2},
	{Term: "worse", Score: -3}, {Term: "worst", Score: -3},
	{Term: "fear", Score: -2}, {Term: "afraid", Score: -2},
	{Term: "angry", Score: -3}, {Term: "anger", Score: -3},
	{Term: "attack", Score: -1}, {Term: "attacks", Score: -1},
	{Term: "blame", Score: -2}, {Term: "blamed", Score: -2},
	{Term: "crisis", Score: -3}, {Term: "debt", Score: -2},
	{Term: "deficit", Score: -2}, {Term: "tax", Score: -1},
	{Term: "taxes", Score: -1}, {Term: "problem", Score: -2},
	{Term: "problems", Score: -2}, {Term: "oppose", Score: -2},
	{Term: "opposed", Score: -2}, {Term: "threat", Score: -2},
	{Term: "threats", Score: -2}, {Term: "doubt", Score: -1},
	{Term: "dishonest", Score: -2}, {Term: "unfair", Score: -2},

	// Strong negative
	{Term: "terrible", Score: -3}, {Term: "awful", Score: -3},
	{Term: "horrible", Score: -3}, {Term: "disaster", Score: -2},
	{Term: "disastrous", Score: -3}, {Term: "corrupt", Score: -3},
	{Term: "corruption", Score: -3}, {Term: "scandal", Score: -3},
	{Term: "fraud", Score: -4}, {Term: "lie", Score: -2},
	{Term: "lies", Score: -2}, {Term: "lying", Score: -3},
	{Term: "war", Score: -3}, {Term: "wars", Score: -3},
	{Term: "violence", Score: -3}, {Term: "violent", Score: -3},
	{Term: "hate", Score: -3}, {Term: "hatred", Score: -3},
	{Term: "catastrophe", Score: -4}, {Term: "collapse", Score: -2},
	{Term: "recession", Score: -2}, {Term: "torture", Score: -4},
	{Term: "terror", Score: -3}, {Term: "terrorism", Score: -4},
	{Term: "crime", Score: -2}, {Term: "criminal", Score: -3},
}
