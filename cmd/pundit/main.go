package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lmittmann/tint"
	"github.com/subosito/gotenv"

	"github.com/mbarley/pundit"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	Corpus       string `long:"corpus" env:"PUNDIT_CORPUS" description:"Path to the corpus CSV" required:"true"`
	TextColumn   string `long:"text-column" env:"PUNDIT_TEXT_COLUMN" default:"documents" description:"CSV column holding document text"`
	IDColumn     string `long:"id-column" env:"PUNDIT_ID_COLUMN" default:"docname" description:"CSV column holding document identifiers"`
	RatingColumn string `long:"rating-column" env:"PUNDIT_RATING_COLUMN" default:"rating" description:"CSV column holding the rating label"`
	DayColumn    string `long:"day-column" env:"PUNDIT_DAY_COLUMN" default:"day" description:"CSV column holding the publication day"`

	Lexicon   string   `long:"lexicon" env:"PUNDIT_LEXICON" description:"Optional external lexicon JSON to merge"`
	StopWords []string `long:"stop" description:"Extra stop words (repeatable)"`
	Vader     bool     `long:"vader" description:"Also score documents with the VADER analyzer"`

	Topics     int   `long:"topics" env:"PUNDIT_TOPICS" default:"20" description:"Number of topics K"`
	Iterations int   `long:"iterations" default:"50" description:"Topic model iterations"`
	Seed       int64 `long:"seed" env:"PUNDIT_SEED" description:"Seed for a reproducible topic fit (0 = unseeded)"`
	MinDocFreq int   `long:"min-doc-freq" default:"2" description:"Keep terms appearing in at least this many documents"`
	MaxVocab   int   `long:"max-vocab" description:"Cap the vocabulary to the most frequent terms (0 = no cap)"`
	DayDegree  int   `long:"day-degree" default:"2" description:"Degree of the day polynomial in the prevalence summary"`

	TopWords int    `long:"top-words" default:"8" description:"Words shown per topic"`
	PlotDir  string `long:"plot-dir" env:"PUNDIT_PLOT_DIR" description:"Directory for rendered plots (empty = skip plotting)"`
	OutDir   string `long:"out" env:"PUNDIT_OUT_DIR" default:"results" description:"Directory for run artifacts"`
	EnvFile  string `long:"env-file" default:".env" description:"Optional env file to load"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	Version  bool   `long:"version" short:"v" description:"Print version and exit"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println(Version)
		return
	}

	// Missing env file is fine: the OS environment alone is enough.
	_ = gotenv.Load(opts.EnvFile)

	initLogger(opts.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func run(ctx context.Context, opts options) error {
	docs, err := pundit.ReadCorpusFile(opts.Corpus,
		pundit.WithColumns(opts.TextColumn, opts.IDColumn, opts.RatingColumn, opts.DayColumn))
	if err != nil {
		return err
	}
	slog.Info("loaded corpus", "path", opts.Corpus, "documents", len(docs))

	lexicon, err := pundit.LoadLexicon(opts.Lexicon)
	if err != nil {
		return err
	}

	tokenizer := pundit.NewIterTokenizer()
	stopset := pundit.EnglishStopset(opts.StopWords...)

	rows := pundit.TokenRows(docs, tokenizer)
	filtered := stopset.Filter(rows)
	slog.Info("tokenized and filtered", "tokens", len(rows), "kept", len(filtered))

	results := &pundit.RunResults{
		DocScores:     pundit.ScoreDocuments(filtered, lexicon),
		GroupScores:   pundit.ScoreGroups(filtered, lexicon, docs),
		Contributions: pundit.TermContributions(filtered, lexicon),
	}

	fmt.Println("\nSentiment by rating and day:")
	if err := pundit.WriteGroupScores(os.Stdout, results.GroupScores); err != nil {
		return err
	}
	fmt.Println("\nMost positive and most negative documents:")
	if err := pundit.WriteDocScores(os.Stdout, results.DocScores, 5); err != nil {
		return err
	}

	if opts.Vader {
		vader := pundit.VaderScores(docs)
		fmt.Println("\nVADER compound scores:")
		if err := pundit.WriteDocScores(os.Stdout, vader, 5); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	dtm, err := pundit.BuildDocTermMatrix(filtered, docs, pundit.DTMOpts{
		MinDocFreq: opts.MinDocFreq,
		MaxVocab:   opts.MaxVocab,
	})
	if err != nil {
		return err
	}
	slog.Info("built document-term matrix", "documents", len(dtm.DocIDs), "vocabulary", dtm.VocabSize())

	topicCfg := pundit.TopicConfig{
		K:          opts.Topics,
		Iterations: opts.Iterations,
		Seed:       opts.Seed,
	}
	if opts.Seed != 0 {
		// A seeded fit is only reproducible single-threaded.
		topicCfg.Processes = 1
	}
	model, err := pundit.FitTopics(dtm, topicCfg)
	if err != nil {
		return err
	}
	slog.Info("fitted topic model", "topics", opts.Topics)

	results.TopicWords = model.TopWords(opts.TopWords)
	results.TopicShares = model.Summary()

	fmt.Println("\nTopics:")
	if err := pundit.WriteTopWords(os.Stdout, model, opts.TopWords); err != nil {
		return err
	}
	fmt.Println("\nRepresentative documents:")
	if err := pundit.WriteRepresentativeDocs(os.Stdout, model, docs, 2, 2); err != nil {
		return err
	}

	prevalence, err := model.Prevalence(pundit.PrevalenceSpec{
		ByRating:  true,
		DayDegree: opts.DayDegree,
	})
	if err != nil {
		return err
	}
	results.Prevalence = prevalence
	fmt.Println("\nTopic prevalence by covariate:")
	if err := pundit.WritePrevalence(os.Stdout, prevalence); err != nil {
		return err
	}

	if opts.PlotDir != "" {
		if err := os.MkdirAll(opts.PlotDir, os.ModePerm); err != nil {
			return err
		}
		if err := pundit.SentimentSeriesPlot(results.GroupScores, filepath.Join(opts.PlotDir, "sentiment_by_day.png")); err != nil {
			return err
		}
		if err := pundit.ContributionPlot(results.Contributions, 20, filepath.Join(opts.PlotDir, "term_contributions.png")); err != nil {
			return err
		}
		if err := pundit.TopicSummaryPlot(model, 3, filepath.Join(opts.PlotDir, "topic_summary.png")); err != nil {
			return err
		}
		slog.Info("rendered plots", "dir", opts.PlotDir)
	}

	if err := results.Write(opts.OutDir); err != nil {
		return err
	}
	slog.Info("wrote run artifacts", "dir", opts.OutDir)

	return nil
}
