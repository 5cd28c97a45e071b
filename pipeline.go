package pundit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// A PipelineOpt represents a setting that changes the analysis run.
//
// For example, it might swap in a custom lexicon:
//
//	results, err := pundit.Run(ctx, docs, pundit.UsingLexicon(lex))
type PipelineOpt func(*pipelineOpts)

type pipelineOpts struct {
	tokenizer Tokenizer
	stopset   *Stopset
	lexicon   *Lexicon
	dtm       DTMOpts
	topics    TopicConfig
	prev      *PrevalenceSpec
	plotDir   string
	logger    *slog.Logger
}

// UsingTokenizer specifies the Tokenizer to use.
func UsingTokenizer(tok Tokenizer) PipelineOpt {
	return func(o *pipelineOpts) { o.tokenizer = tok }
}

// UsingStopset specifies the stop-word set to filter with.
func UsingStopset(s *Stopset) PipelineOpt {
	return func(o *pipelineOpts) { o.stopset = s }
}

// UsingLexicon specifies the sentiment lexicon to join against.
func UsingLexicon(lex *Lexicon) PipelineOpt {
	return func(o *pipelineOpts) { o.lexicon = lex }
}

// WithDTMOpts overrides vocabulary pruning settings.
func WithDTMOpts(opts DTMOpts) PipelineOpt {
	return func(o *pipelineOpts) { o.dtm = opts }
}

// WithTopicConfig overrides the topic-model settings.
func WithTopicConfig(cfg TopicConfig) PipelineOpt {
	return func(o *pipelineOpts) { o.topics = cfg }
}

// WithPrevalence enables the covariate prevalence summary.
func WithPrevalence(spec PrevalenceSpec) PipelineOpt {
	return func(o *pipelineOpts) { o.prev = &spec }
}

// WithPlotDir enables plot rendering into the given directory.
func WithPlotDir(dir string) PipelineOpt {
	return func(o *pipelineOpts) { o.plotDir = dir }
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) PipelineOpt {
	return func(o *pipelineOpts) { o.logger = logger }
}

// Run executes the workflow once, top to bottom: tokenize, filter, score,
// build the document-term representation, fit topics, summarize. Each step is
// a stateless transformation over in-memory tables; there is no lifecycle
// beyond this call.
func Run(ctx context.Context, docs []Document, opts ...PipelineOpt) (*RunResults, error) {
	o := pipelineOpts{
		tokenizer: NewIterTokenizer(),
		stopset:   EnglishStopset(),
		lexicon:   BaseLexicon(),
		dtm:       DefaultDTMOpts(),
		topics:    DefaultTopicConfig(),
		logger:    slog.Default(),
	}
	for _, applyOpt := range opts {
		applyOpt(&o)
	}

	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := TokenRows(docs, o.tokenizer)
	o.logger.Info("tokenized corpus", "documents", len(docs), "tokens", len(rows))

	filtered := o.stopset.Filter(rows)
	o.logger.Info("removed stop words", "kept", len(filtered), "dropped", len(rows)-len(filtered))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := &RunResults{
		DocScores:     ScoreDocuments(filtered, o.lexicon),
		GroupScores:   ScoreGroups(filtered, o.lexicon, docs),
		Contributions: TermContributions(filtered, o.lexicon),
	}
	o.logger.Info("aggregated sentiment", "documents", len(results.DocScores), "groups", len(results.GroupScores))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dtm, err := BuildDocTermMatrix(filtered, docs, o.dtm)
	if err != nil {
		return nil, err
	}
	o.logger.Info("built document-term matrix",
		"documents", len(dtm.DocIDs), "vocabulary", dtm.VocabSize())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := FitTopics(dtm, o.topics)
	if err != nil {
		return nil, err
	}
	o.logger.Info("fitted topic model", "topics", o.topics.K, "iterations", o.topics.Iterations)

	results.TopicWords = model.TopWords(8)
	results.TopicShares = model.Summary()

	if o.prev != nil {
		results.Prevalence, err = model.Prevalence(*o.prev)
		if err != nil {
			return nil, err
		}
		o.logger.Info("estimated covariate prevalence", "covariates", len(results.Prevalence.Covariates))
	}

	if o.plotDir != "" {
		if err := renderPlots(results, model, o.plotDir); err != nil {
			return nil, err
		}
		o.logger.Info("rendered plots", "dir", o.plotDir)
	}

	return results, nil
}

func renderPlots(results *RunResults, model *TopicModel, dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}
	if err := SentimentSeriesPlot(results.GroupScores, filepath.Join(dir, "sentiment_by_day.png")); err != nil {
		return fmt.Errorf("rendering sentiment series: %w", err)
	}
	if err := ContributionPlot(results.Contributions, 20, filepath.Join(dir, "term_contributions.png")); err != nil {
		return fmt.Errorf("rendering term contributions: %w", err)
	}
	if err := TopicSummaryPlot(model, 3, filepath.Join(dir, "topic_summary.png")); err != nil {
		return fmt.Errorf("rendering topic summary: %w", err)
	}
	return nil
}
