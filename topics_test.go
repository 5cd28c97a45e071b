package pundit

import (
	"math"
	"testing"
)

// topicTestDTM builds a small two-theme corpus: war coverage and tax coverage.
func topicTestDTM(t *testing.T) *DocTermMatrix {
	t.Helper()

	docs := []Document{
		{ID: "w1", Rating: "Liberal", Day: 1, Text: "war troops surge war battle troops"},
		{ID: "w2", Rating: "Liberal", Day: 2, Text: "battle war surge troops war"},
		{ID: "w3", Rating: "Conservative", Day: 3, Text: "troops battle war surge surge"},
		{ID: "t1", Rating: "Conservative", Day: 4, Text: "tax budget cut tax spending budget"},
		{ID: "t2", Rating: "Conservative", Day: 5, Text: "budget tax cut spending tax"},
		{ID: "t3", Rating: "Liberal", Day: 6, Text: "spending cut tax budget budget"},
	}
	rows := TokenRows(docs, NewIterTokenizer())
	dtm, err := BuildDocTermMatrix(rows, docs, DTMOpts{MinDocFreq: 2})
	if err != nil {
		t.Fatalf("BuildDocTermMatrix: %v", err)
	}
	return dtm
}

func seededConfig() TopicConfig {
	return TopicConfig{K: 2, Iterations: 30, Seed: 42, Processes: 1}
}

func TestFitTopics(t *testing.T) {
	dtm := topicTestDTM(t)

	model, err := FitTopics(dtm, seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	if model.K != 2 {
		t.Errorf("K = %d, want 2", model.K)
	}
	if len(model.DocIDs) != 6 {
		t.Errorf("fitted documents = %d, want 6", len(model.DocIDs))
	}

	for _, id := range model.DocIDs {
		props, ok := model.Proportions(id)
		if !ok {
			t.Fatalf("no proportions for %s", id)
		}
		var sum float64
		for _, p := range props {
			if p < 0 {
				t.Errorf("document %s has negative proportion %v", id, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("proportions of %s sum to %v, want 1", id, sum)
		}
	}
}

func TestTopicModelTopWords(t *testing.T) {
	model, err := FitTopics(topicTestDTM(t), seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	top := model.TopWords(3)
	if len(top) != 2 {
		t.Fatalf("expected word lists for 2 topics, got %d", len(top))
	}
	for topic, terms := range top {
		if len(terms) != 3 {
			t.Fatalf("topic %d has %d top words, want 3", topic, len(terms))
		}
		for i := 1; i < len(terms); i++ {
			if terms[i].Weight > terms[i-1].Weight {
				t.Errorf("topic %d top words not sorted by weight: %v", topic, terms)
			}
		}
	}
}

func TestTopicModelSummary(t *testing.T) {
	model, err := FitTopics(topicTestDTM(t), seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	summary := model.Summary()
	if len(summary) != 2 {
		t.Fatalf("summary length = %d, want 2", len(summary))
	}
	var total float64
	for _, share := range summary {
		total += share
	}
	if math.Abs(total-1) > 1e-6 {
		t.Errorf("topic shares sum to %v, want 1", total)
	}
}

func TestRepresentativeDocs(t *testing.T) {
	model, err := FitTopics(topicTestDTM(t), seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	reps, err := model.RepresentativeDocs(0, 3)
	if err != nil {
		t.Fatalf("RepresentativeDocs: %v", err)
	}
	if len(reps) != 3 {
		t.Fatalf("expected 3 representative documents, got %d", len(reps))
	}
	for i := 1; i < len(reps); i++ {
		if reps[i].Weight > reps[i-1].Weight {
			t.Errorf("representative documents not sorted by weight: %v", reps)
		}
	}

	if _, err := model.RepresentativeDocs(5, 1); err == nil {
		t.Error("expected an error for an out-of-range topic")
	}
}

func TestSeededFitIsReproducible(t *testing.T) {
	dtm := topicTestDTM(t)

	first, err := FitTopics(dtm, seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}
	second, err := FitTopics(dtm, seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	s1, s2 := first.Summary(), second.Summary()
	for topic := range s1 {
		if math.Abs(s1[topic]-s2[topic]) > 1e-9 {
			t.Errorf("seeded fits diverged at topic %d: %v vs %v", topic, s1[topic], s2[topic])
		}
	}
}

func TestPrevalence(t *testing.T) {
	model, err := FitTopics(topicTestDTM(t), seededConfig())
	if err != nil {
		t.Fatalf("FitTopics: %v", err)
	}

	res, err := model.Prevalence(PrevalenceSpec{ByRating: true, DayDegree: 1})
	if err != nil {
		t.Fatalf("Prevalence: %v", err)
	}

	// (intercept), rating=Liberal (Conservative is the baseline), day^1.
	expected := []string{"(intercept)", "rating=Liberal", "day^1"}
	if len(res.Covariates) != len(expected) {
		t.Fatalf("covariates = %v, want %v", res.Covariates, expected)
	}
	for i, name := range expected {
		if res.Covariates[i] != name {
			t.Errorf("covariate %d = %q, want %q", i, res.Covariates[i], name)
		}
	}
	if len(res.Coef) != 2 {
		t.Fatalf("expected coefficients for 2 topics, got %d", len(res.Coef))
	}
	for topic, coefs := range res.Coef {
		if len(coefs) != len(expected) {
			t.Errorf("topic %d has %d coefficients, want %d", topic, len(coefs), len(expected))
		}
	}
}

func TestFitTopicsBadConfig(t *testing.T) {
	if _, err := FitTopics(topicTestDTM(t), TopicConfig{K: 1}); err == nil {
		t.Error("expected an error for K < 2")
	}
}
