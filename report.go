package pundit

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// WriteGroupScores prints the (rating, day) aggregate table.
func WriteGroupScores(w io.Writer, groups []GroupScore) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RATING\tDAY\tDOCS\tSCORE")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\n", g.Rating, g.Day, g.Docs, g.Score)
	}
	return tw.Flush()
}

// WriteDocScores prints the n most positive and n most negative documents.
func WriteDocScores(w io.Writer, scores []DocScore, n int) error {
	sorted := make([]DocScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].DocID < sorted[j].DocID
	})
	if n > len(sorted) {
		n = len(sorted)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tMATCHED\tSCORE")
	for _, ds := range sorted[:n] {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\n", ds.DocID, ds.Matched, ds.Score)
	}
	if len(sorted) > 2*n {
		fmt.Fprintln(tw, "...\t\t")
	}
	start := len(sorted) - n
	if start < n {
		start = n
	}
	for _, ds := range sorted[start:] {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\n", ds.DocID, ds.Matched, ds.Score)
	}
	return tw.Flush()
}

// WriteTopWords prints the n top words for each topic.
func WriteTopWords(w io.Writer, model *TopicModel, n int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOPIC\tPROPORTION\tTOP WORDS")
	summary := model.Summary()
	for topic, terms := range model.TopWords(n) {
		words := ""
		for i, wt := range terms {
			if i > 0 {
				words += ", "
			}
			words += wt.Term
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%s\n", topic+1, summary[topic], words)
	}
	return tw.Flush()
}

// WriteRepresentativeDocs prints, for each topic, the documents with the
// highest topic proportion, shown as leading-sentence snippets.
func WriteRepresentativeDocs(w io.Writer, model *TopicModel, docs []Document, perTopic, snippetSentences int) error {
	byID := make(map[string]string, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc.Text
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOPIC\tWEIGHT\tDOCUMENT\tSNIPPET")
	for topic := 0; topic < model.K; topic++ {
		reps, err := model.RepresentativeDocs(topic, perTopic)
		if err != nil {
			return err
		}
		for _, rep := range reps {
			snippet := Snippet(byID[rep.DocID], snippetSentences)
			if len(snippet) > 120 {
				snippet = snippet[:120] + "..."
			}
			fmt.Fprintf(tw, "%d\t%.3f\t%s\t%s\n", topic+1, rep.Weight, rep.DocID, snippet)
		}
	}
	return tw.Flush()
}

// WritePrevalence prints the covariate prevalence coefficients per topic.
func WritePrevalence(w io.Writer, res *PrevalenceResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := "TOPIC"
	for _, name := range res.Covariates {
		header += "\t" + name
	}
	fmt.Fprintln(tw, header)
	for topic, coefs := range res.Coef {
		row := fmt.Sprintf("%d", topic+1)
		for _, c := range coefs {
			row += fmt.Sprintf("\t%+.4f", c)
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}
