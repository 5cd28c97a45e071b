package pundit

import (
	"fmt"
	"sort"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// TopicConfig parameterizes a topic-model fit.
type TopicConfig struct {
	K          int   // Number of topics.
	Iterations int   // LDA iterations.
	Seed       int64 // If non-zero, seeds initialization for a reproducible fit.
	Processes  int   // Parallelism for the fit; 0 leaves the library default.
}

// DefaultTopicConfig mirrors the usual settings for a corpus of this size.
func DefaultTopicConfig() TopicConfig {
	return TopicConfig{K: 20, Iterations: 50}
}

// A TopicModel is a fitted statistical object exposing per-topic word
// distributions and per-document topic proportions. It is created once per
// run and never updated incrementally.
type TopicModel struct {
	K      int
	Terms  []string   // Vocabulary in topic-word column order.
	DocIDs []string   // Documents in proportion row order.
	Meta   []Document // Metadata aligned with DocIDs.

	topicWord *mat.Dense // K x V, rows normalized to probabilities.
	docTopic  *mat.Dense // nDocs x K, rows normalized to probabilities.
}

// A WeightedTerm pairs a vocabulary term with its weight within a topic.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// A DocWeight pairs a document with its proportion of a topic.
type DocWeight struct {
	DocID  string
	Weight float64
}

// FitTopics fits a latent Dirichlet allocation model with a fixed topic count
// to the document-term representation. The fit is deterministic only when
// cfg.Seed is set; there are no retry or partial-failure semantics for a
// single offline batch fit.
func FitTopics(dtm *DocTermMatrix, cfg TopicConfig) (*TopicModel, error) {
	if cfg.K < 2 {
		return nil, fmt.Errorf("topic count must be at least 2, got %d", cfg.K)
	}
	if cfg.Iterations < 1 {
		cfg.Iterations = DefaultTopicConfig().Iterations
	}

	corpus := dtm.JoinDocs()

	vectoriser := nlp.NewCountVectoriser()
	lda := nlp.NewLatentDirichletAllocation(cfg.K)
	lda.Iterations = cfg.Iterations
	lda.TransformationPasses = cfg.Iterations / 2
	if cfg.Processes > 0 {
		lda.Processes = cfg.Processes
	}
	if cfg.Seed != 0 {
		lda.Rnd = rand.New(rand.NewSource(uint64(cfg.Seed)))
	}

	pipeline := nlp.NewPipeline(vectoriser, lda)

	// Rows are topics, columns are documents.
	docsOverTopics, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, fmt.Errorf("fitting topic model: %w", err)
	}
	topicsOverWords := lda.Components()

	vocab := make([]string, len(vectoriser.Vocabulary))
	for term, idx := range vectoriser.Vocabulary {
		vocab[idx] = term
	}

	model := &TopicModel{
		K:         cfg.K,
		Terms:     vocab,
		DocIDs:    dtm.DocIDs,
		Meta:      dtm.Meta,
		topicWord: normalizeRows(mat.DenseCopyOf(topicsOverWords)),
		docTopic:  normalizeRows(transpose(docsOverTopics)),
	}
	return model, nil
}

// TopWords returns the n highest-weight terms for each topic.
func (tm *TopicModel) TopWords(n int) [][]WeightedTerm {
	_, cols := tm.topicWord.Dims()
	if n > cols {
		n = cols
	}

	out := make([][]WeightedTerm, tm.K)
	for topic := 0; topic < tm.K; topic++ {
		terms := make([]WeightedTerm, cols)
		for w := 0; w < cols; w++ {
			terms[w] = WeightedTerm{Term: tm.Terms[w], Weight: tm.topicWord.At(topic, w)}
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].Weight != terms[j].Weight {
				return terms[i].Weight > terms[j].Weight
			}
			return terms[i].Term < terms[j].Term
		})
		out[topic] = terms[:n]
	}
	return out
}

// Proportions returns the topic-proportion vector for the identified document.
func (tm *TopicModel) Proportions(docID string) ([]float64, bool) {
	for i, id := range tm.DocIDs {
		if id == docID {
			return mat.Row(nil, i, tm.docTopic), true
		}
	}
	return nil, false
}

// RepresentativeDocs returns the n documents with the highest proportion of
// the given topic.
func (tm *TopicModel) RepresentativeDocs(topic, n int) ([]DocWeight, error) {
	if topic < 0 || topic >= tm.K {
		return nil, fmt.Errorf("topic %d out of range [0, %d)", topic, tm.K)
	}

	docs := make([]DocWeight, len(tm.DocIDs))
	for i, id := range tm.DocIDs {
		docs[i] = DocWeight{DocID: id, Weight: tm.docTopic.At(i, topic)}
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Weight != docs[j].Weight {
			return docs[i].Weight > docs[j].Weight
		}
		return docs[i].DocID < docs[j].DocID
	})
	if n > len(docs) {
		n = len(docs)
	}
	return docs[:n], nil
}

// Summary returns the expected corpus-wide proportion of each topic: the mean
// of per-document proportions, the quantity behind the topic-frequency plot.
func (tm *TopicModel) Summary() []float64 {
	rows, _ := tm.docTopic.Dims()
	out := make([]float64, tm.K)
	for topic := 0; topic < tm.K; topic++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += tm.docTopic.At(i, topic)
		}
		out[topic] = sum / float64(rows)
	}
	return out
}

// PrevalenceSpec names the covariates for the prevalence summary, the Go
// rendition of a prevalence formula such as ~ rating + poly(day, d).
type PrevalenceSpec struct {
	ByRating  bool // Include rating indicator terms.
	DayDegree int  // Include a day polynomial up to this degree.
}

// PrevalenceResult holds per-topic least-squares coefficients of the
// document-topic proportions on the covariate design matrix.
type PrevalenceResult struct {
	Covariates []string    // Column names, starting with "(intercept)".
	Coef       [][]float64 // Coef[topic][covariate].
}

// Prevalence regresses topic proportions on the covariates. The covariates
// summarize the fitted proportions; they do not inform inference.
func (tm *TopicModel) Prevalence(spec PrevalenceSpec) (*PrevalenceResult, error) {
	nDocs := len(tm.Meta)
	if nDocs == 0 {
		return nil, fmt.Errorf("prevalence: model has no document metadata")
	}

	names := []string{"(intercept)"}

	var ratings []string
	if spec.ByRating {
		seen := map[string]bool{}
		for _, doc := range tm.Meta {
			if !seen[doc.Rating] {
				seen[doc.Rating] = true
				ratings = append(ratings, doc.Rating)
			}
		}
		sort.Strings(ratings)
		// First level is the baseline absorbed by the intercept.
		for _, r := range ratings[1:] {
			names = append(names, "rating="+r)
		}
	}

	minDay, maxDay := dayRange(tm.Meta)
	for d := 1; d <= spec.DayDegree; d++ {
		names = append(names, fmt.Sprintf("day^%d", d))
	}

	p := len(names)
	if nDocs <= p {
		return nil, fmt.Errorf("prevalence: %d documents cannot support %d covariates", nDocs, p)
	}

	x := mat.NewDense(nDocs, p, nil)
	for i, doc := range tm.Meta {
		col := 0
		x.Set(i, col, 1)
		col++
		if spec.ByRating {
			for _, r := range ratings[1:] {
				if doc.Rating == r {
					x.Set(i, col, 1)
				}
				col++
			}
		}
		day := scaleDay(doc.Day, minDay, maxDay)
		v := 1.0
		for d := 1; d <= spec.DayDegree; d++ {
			v *= day
			x.Set(i, col, v)
			col++
		}
	}

	var beta mat.Dense
	if err := beta.Solve(x, tm.docTopic); err != nil {
		return nil, fmt.Errorf("prevalence regression: %w", err)
	}

	res := &PrevalenceResult{Covariates: names, Coef: make([][]float64, tm.K)}
	for topic := 0; topic < tm.K; topic++ {
		res.Coef[topic] = mat.Col(nil, topic, &beta)
	}
	return res, nil
}

func dayRange(meta []Document) (int, int) {
	minDay, maxDay := meta[0].Day, meta[0].Day
	for _, doc := range meta[1:] {
		if doc.Day < minDay {
			minDay = doc.Day
		}
		if doc.Day > maxDay {
			maxDay = doc.Day
		}
	}
	return minDay, maxDay
}

// scaleDay maps a day ordinal into [0, 1] to keep polynomial columns tame.
func scaleDay(day, minDay, maxDay int) float64 {
	if maxDay == minDay {
		return 0
	}
	return float64(day-minDay) / float64(maxDay-minDay)
}

func normalizeRows(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += m.At(i, j)
		}
		if sum == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			m.Set(i, j, m.At(i, j)/sum)
		}
	}
	return m
}

func transpose(m mat.Matrix) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(cols, rows, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}
