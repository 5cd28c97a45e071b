package pundit

import (
	"context"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"testing"
)

func pipelineTestDocs() []Document {
	return []Document{
		{ID: "d1", Rating: "Liberal", Day: 1, Text: "The war drags on. Another bad war budget, another bad vote."},
		{ID: "d2", Rating: "Liberal", Day: 2, Text: "War spending is bad and the tax debate stalled."},
		{ID: "d3", Rating: "Conservative", Day: 1, Text: "A good tax cut is a good start for the budget."},
		{ID: "d4", Rating: "Conservative", Day: 2, Text: "The tax cut passed. Good news for the budget debate."},
		{ID: "d5", Rating: "Liberal", Day: 3, Text: "Bad faith on the war vote, and the spending fight continues."},
		{ID: "d6", Rating: "Conservative", Day: 3, Text: "Spending falls, the budget holds, and the vote was good."},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	results, err := Run(context.Background(), pipelineTestDocs(),
		WithDTMOpts(DTMOpts{MinDocFreq: 2}),
		WithTopicConfig(TopicConfig{K: 2, Iterations: 30, Seed: 7, Processes: 1}),
		WithPrevalence(PrevalenceSpec{ByRating: true, DayDegree: 1}),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results.DocScores) != 6 {
		t.Errorf("document scores = %d, want 6", len(results.DocScores))
	}
	if len(results.GroupScores) == 0 {
		t.Error("expected rating and day group scores")
	}
	if len(results.Contributions) == 0 {
		t.Error("expected term contributions")
	}
	if len(results.TopicWords) != 2 {
		t.Errorf("topic word lists = %d, want 2", len(results.TopicWords))
	}
	if len(results.TopicShares) != 2 {
		t.Errorf("topic shares = %d, want 2", len(results.TopicShares))
	}
	if results.Prevalence == nil {
		t.Fatal("expected a prevalence summary")
	}
	if len(results.Prevalence.Coef) != 2 {
		t.Errorf("prevalence coefficient rows = %d, want 2", len(results.Prevalence.Coef))
	}
}

func TestRunCustomLexicon(t *testing.T) {
	lex := NewLexicon()
	lex.AddTerm("war", -3)
	lex.AddTerm("good", 2)

	results, err := Run(context.Background(), pipelineTestDocs(),
		UsingLexicon(lex),
		WithDTMOpts(DTMOpts{MinDocFreq: 2}),
		WithTopicConfig(TopicConfig{K: 2, Iterations: 20, Seed: 7, Processes: 1}),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, ds := range results.DocScores {
		if ds.DocID == "d1" && ds.Score != -6 {
			t.Errorf("d1 score = %v, want -6 with the custom lexicon", ds.Score)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, pipelineTestDocs(), WithLogger(quietLogger())); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	if _, err := Run(context.Background(), nil, WithLogger(quietLogger())); err != ErrEmptyCorpus {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestResultsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	results, err := Run(context.Background(), pipelineTestDocs(),
		WithDTMOpts(DTMOpts{MinDocFreq: 2}),
		WithTopicConfig(TopicConfig{K: 2, Iterations: 20, Seed: 7, Processes: 1}),
		WithPrevalence(PrevalenceSpec{ByRating: true, DayDegree: 1}),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := results.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := ResultsFromDisk(dir)
	if err != nil {
		t.Fatalf("ResultsFromDisk: %v", err)
	}

	if len(loaded.DocScores) != len(results.DocScores) {
		t.Fatalf("loaded %d document scores, want %d", len(loaded.DocScores), len(results.DocScores))
	}
	for i, ds := range results.DocScores {
		if loaded.DocScores[i] != ds {
			t.Errorf("document score %d = %+v, want %+v", i, loaded.DocScores[i], ds)
		}
	}
	if len(loaded.TopicShares) != len(results.TopicShares) {
		t.Fatalf("loaded %d topic shares, want %d", len(loaded.TopicShares), len(results.TopicShares))
	}
	for i := range results.TopicShares {
		if math.Abs(loaded.TopicShares[i]-results.TopicShares[i]) > 1e-9 {
			t.Errorf("topic share %d = %v, want %v", i, loaded.TopicShares[i], results.TopicShares[i])
		}
	}
	if loaded.Prevalence == nil {
		t.Fatal("expected the prevalence summary to survive the round trip")
	}
}

func TestResultsFromDiskMissing(t *testing.T) {
	if _, err := ResultsFromDisk(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing results directory")
	}
}
