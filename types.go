package pundit

// A Document is one post from the corpus: an identifier, the raw text, and the
// metadata attributes used downstream. Documents are immutable once loaded.
type Document struct {
	ID     string // The document's identifier (docname column).
	Text   string // The document's raw text.
	Day    int    // Publication day, an ordinal within the corpus year.
	Rating string // Source rating / party label (e.g. "Liberal", "Conservative").
}

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text  string // The token's actual content.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// A TokenRow is one row of the long-format token table: a (document identifier,
// term) pair. Token order is irrelevant downstream; only counts matter.
type TokenRow struct {
	DocID string
	Term  string
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// A DocScore is the aggregated sentiment score for one document: the sum of the
// lexicon values of its matched tokens. Tokens absent from the lexicon
// contribute nothing.
type DocScore struct {
	DocID   string
	Score   float64
	Matched int // Number of token rows that matched the lexicon.
}

// A GroupScore is the aggregated sentiment score for one (rating, day) group.
type GroupScore struct {
	Rating string
	Day    int
	Score  float64
	Docs   int // Number of distinct documents in the group.
}

// A TermContribution records how much a single term moved the corpus total.
type TermContribution struct {
	Term  string
	Score float64 // The term's lexicon value.
	Count int     // Occurrences across the corpus.
	Total float64 // Score * Count.
}
