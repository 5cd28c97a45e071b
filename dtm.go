package pundit

import (
	"fmt"
	"sort"
	"strings"
)

// DTMOpts controls vocabulary pruning.
type DTMOpts struct {
	MinDocFreq int // Keep a term only if it appears in at least this many documents.
	MaxVocab   int // If > 0, cap the vocabulary to the most frequent terms.
}

// DefaultDTMOpts matches the usual preprocessing defaults for this corpus.
func DefaultDTMOpts() DTMOpts {
	return DTMOpts{MinDocFreq: 2}
}

// A DocTermMatrix is the pruned per-document sparse count structure fed to the
// topic model. DocIDs lists the documents that survived pruning, in first-seen
// token-table order; Meta holds their aligned metadata rows.
type DocTermMatrix struct {
	Terms  []string         // The pruned vocabulary, sorted.
	DocIDs []string         // Kept documents.
	Meta   []Document       // Metadata aligned with DocIDs.
	Counts []map[int]int    // Per-document counts keyed by term index.
	index  map[string]int   // Term -> index in Terms.
	docIdx map[string]int   // DocID -> index in DocIDs.
}

// BuildDocTermMatrix derives the document-term representation from the token
// table. Terms below MinDocFreq are pruned; documents emptied by pruning (or
// missing from meta) are dropped along with their metadata rows, keeping the
// two sides aligned for the topic model.
func BuildDocTermMatrix(rows []TokenRow, meta []Document, opts DTMOpts) (*DocTermMatrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("building document-term matrix: %w", ErrEmptyCorpus)
	}

	byID := make(map[string]Document, len(meta))
	for _, doc := range meta {
		byID[doc.ID] = doc
	}

	// Document frequency and corpus frequency per term.
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	seen := make(map[string]map[string]bool)
	for _, row := range rows {
		termFreq[row.Term]++
		if seen[row.Term] == nil {
			seen[row.Term] = make(map[string]bool)
		}
		if !seen[row.Term][row.DocID] {
			seen[row.Term][row.DocID] = true
			docFreq[row.Term]++
		}
	}

	minDF := opts.MinDocFreq
	if minDF < 1 {
		minDF = 1
	}
	var kept []string
	for term, df := range docFreq {
		if df >= minDF {
			kept = append(kept, term)
		}
	}
	if opts.MaxVocab > 0 && len(kept) > opts.MaxVocab {
		sort.Slice(kept, func(i, j int) bool {
			if termFreq[kept[i]] != termFreq[kept[j]] {
				return termFreq[kept[i]] > termFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:opts.MaxVocab]
	}
	sort.Strings(kept)
	if len(kept) == 0 {
		return nil, fmt.Errorf("vocabulary pruning left no terms (min doc freq %d)", minDF)
	}

	dtm := &DocTermMatrix{
		Terms:  kept,
		index:  make(map[string]int, len(kept)),
		docIdx: make(map[string]int),
	}
	for i, term := range kept {
		dtm.index[term] = i
	}

	for _, row := range rows {
		ti, ok := dtm.index[row.Term]
		if !ok {
			continue
		}
		doc, ok := byID[row.DocID]
		if !ok {
			continue
		}
		di, ok := dtm.docIdx[row.DocID]
		if !ok {
			di = len(dtm.DocIDs)
			dtm.docIdx[row.DocID] = di
			dtm.DocIDs = append(dtm.DocIDs, row.DocID)
			dtm.Meta = append(dtm.Meta, doc)
			dtm.Counts = append(dtm.Counts, make(map[int]int))
		}
		dtm.Counts[di][ti]++
	}

	if len(dtm.DocIDs) == 0 {
		return nil, fmt.Errorf("vocabulary pruning left no documents")
	}
	return dtm, nil
}

// Count returns the count of term within the identified document.
func (dtm *DocTermMatrix) Count(docID, term string) int {
	di, ok := dtm.docIdx[docID]
	if !ok {
		return 0
	}
	ti, ok := dtm.index[term]
	if !ok {
		return 0
	}
	return dtm.Counts[di][ti]
}

// VocabSize returns the size of the pruned vocabulary.
func (dtm *DocTermMatrix) VocabSize() int {
	return len(dtm.Terms)
}

// JoinDocs re-materializes each kept document as a space-joined string of its
// surviving terms (with multiplicity), the form the count vectoriser consumes.
func (dtm *DocTermMatrix) JoinDocs() []string {
	out := make([]string, len(dtm.DocIDs))
	for di := range dtm.DocIDs {
		idxs := make([]int, 0, len(dtm.Counts[di]))
		for ti := range dtm.Counts[di] {
			idxs = append(idxs, ti)
		}
		sort.Ints(idxs)

		var b strings.Builder
		for _, ti := range idxs {
			for n := 0; n < dtm.Counts[di][ti]; n++ {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(dtm.Terms[ti])
			}
		}
		out[di] = b.String()
	}
	return out
}
