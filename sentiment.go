package pundit

import (
	"sort"

	"github.com/jonreiter/govader"
)

// ScoreDocuments computes one aggregate row per document: an inner join of the
// token table against the lexicon, then a sum. Terms absent from the lexicon
// contribute nothing. Documents with no matched tokens still get a row, with a
// zero score, so long as they appear in the token table.
func ScoreDocuments(rows []TokenRow, lex *Lexicon) []DocScore {
	totals := make(map[string]*DocScore)
	var order []string

	for _, row := range rows {
		ds, ok := totals[row.DocID]
		if !ok {
			ds = &DocScore{DocID: row.DocID}
			totals[row.DocID] = ds
			order = append(order, row.DocID)
		}
		score, ok := lex.Score(row.Term)
		if !ok {
			continue
		}
		ds.Score += score
		ds.Matched++
	}

	out := make([]DocScore, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	return out
}

// ScoreGroups computes one aggregate row per (rating, day) group. Token rows
// whose document is missing from meta are dropped, mirroring the inner-join
// behavior of the lexicon match.
func ScoreGroups(rows []TokenRow, lex *Lexicon, meta []Document) []GroupScore {
	byID := make(map[string]Document, len(meta))
	for _, doc := range meta {
		byID[doc.ID] = doc
	}

	type groupKey struct {
		rating string
		day    int
	}
	totals := make(map[groupKey]*GroupScore)
	seenDocs := make(map[groupKey]map[string]bool)

	for _, row := range rows {
		doc, ok := byID[row.DocID]
		if !ok {
			continue
		}
		key := groupKey{rating: doc.Rating, day: doc.Day}
		gs, ok := totals[key]
		if !ok {
			gs = &GroupScore{Rating: doc.Rating, Day: doc.Day}
			totals[key] = gs
			seenDocs[key] = make(map[string]bool)
		}
		if !seenDocs[key][row.DocID] {
			seenDocs[key][row.DocID] = true
			gs.Docs++
		}
		if score, ok := lex.Score(row.Term); ok {
			gs.Score += score
		}
	}

	out := make([]GroupScore, 0, len(totals))
	for _, gs := range totals {
		out = append(out, *gs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// TermContributions aggregates the corpus-wide total contribution of each
// lexicon term, sorted by absolute total, largest first.
func TermContributions(rows []TokenRow, lex *Lexicon) []TermContribution {
	counts := make(map[string]int)
	for _, row := range rows {
		if _, ok := lex.Score(row.Term); ok {
			counts[row.Term]++
		}
	}

	out := make([]TermContribution, 0, len(counts))
	for term, count := range counts {
		score, _ := lex.Score(term)
		out = append(out, TermContribution{
			Term:  term,
			Score: score,
			Count: count,
			Total: score * float64(count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := abs(out[i].Total), abs(out[j].Total)
		if ti != tj {
			return ti > tj
		}
		return out[i].Term < out[j].Term
	})
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// VaderScores scores whole documents with the VADER rule-based analyzer, an
// alternative to the lexicon join that accounts for negation and intensifiers.
// Returned scores are compound values in [-1, 1].
func VaderScores(docs []Document) []DocScore {
	analyzer := govader.NewSentimentIntensityAnalyzer()

	out := make([]DocScore, 0, len(docs))
	for _, doc := range docs {
		scores := analyzer.PolarityScores(doc.Text)
		out = append(out, DocScore{DocID: doc.ID, Score: scores.Compound})
	}
	return out
}
