package pundit

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RunResults collects the artifacts of one pipeline run for persistence.
type RunResults struct {
	DocScores     []DocScore         `json:"doc_scores"`
	GroupScores   []GroupScore       `json:"group_scores"`
	Contributions []TermContribution `json:"contributions"`
	TopicWords    [][]WeightedTerm   `json:"topic_words"`
	TopicShares   []float64          `json:"topic_shares"`
	Prevalence    *PrevalenceResult  `json:"prevalence,omitempty"`
}

const (
	sentimentFile = "sentiment.json"
	topicsFile    = "topics.json"
)

// Write saves the results to the user-provided directory, one JSON file per
// analysis stage.
func (r *RunResults) Write(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}

	sentiment := struct {
		DocScores     []DocScore         `json:"doc_scores"`
		GroupScores   []GroupScore       `json:"group_scores"`
		Contributions []TermContribution `json:"contributions"`
	}{r.DocScores, r.GroupScores, r.Contributions}
	if err := writeJSON(filepath.Join(path, sentimentFile), sentiment); err != nil {
		return err
	}

	topics := struct {
		TopicWords  [][]WeightedTerm  `json:"topic_words"`
		TopicShares []float64         `json:"topic_shares"`
		Prevalence  *PrevalenceResult `json:"prevalence,omitempty"`
	}{r.TopicWords, r.TopicShares, r.Prevalence}
	return writeJSON(filepath.Join(path, topicsFile), topics)
}

// ResultsFromDisk loads previously written results from a directory.
func ResultsFromDisk(path string) (*RunResults, error) {
	return resultsFromFS(os.DirFS(path))
}

func resultsFromFS(filesys fs.FS) (*RunResults, error) {
	var r RunResults

	if err := readJSON(filesys, sentimentFile, &struct {
		DocScores     *[]DocScore         `json:"doc_scores"`
		GroupScores   *[]GroupScore       `json:"group_scores"`
		Contributions *[]TermContribution `json:"contributions"`
	}{&r.DocScores, &r.GroupScores, &r.Contributions}); err != nil {
		return nil, err
	}

	if err := readJSON(filesys, topicsFile, &struct {
		TopicWords  *[][]WeightedTerm  `json:"topic_words"`
		TopicShares *[]float64         `json:"topic_shares"`
		Prevalence  **PrevalenceResult `json:"prevalence"`
	}{&r.TopicWords, &r.TopicShares, &r.Prevalence}); err != nil {
		return nil, err
	}

	return &r, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(filesys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(filesys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}
