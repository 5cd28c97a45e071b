package pundit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyCorpus is returned when the CSV contains a header but no documents.
var ErrEmptyCorpus = errors.New("corpus contains no documents")

// CorpusOpts controls how the corpus CSV is interpreted.
type CorpusOpts struct {
	TextColumn   string // Column holding the document text.
	IDColumn     string // Column holding the document identifier.
	RatingColumn string // Column holding the rating / party label.
	DayColumn    string // Column holding the publication day ordinal.
	Normalize    bool   // If true, flatten markdown and strip links from text.
}

// DefaultCorpusOpts matches the poliblogs corpus layout.
func DefaultCorpusOpts() CorpusOpts {
	return CorpusOpts{
		TextColumn:   "documents",
		IDColumn:     "docname",
		RatingColumn: "rating",
		DayColumn:    "day",
		Normalize:    true,
	}
}

// CorpusOpt adjusts corpus reading.
type CorpusOpt func(*CorpusOpts)

// WithColumns overrides the text, id, rating and day column names.
func WithColumns(text, id, rating, day string) CorpusOpt {
	return func(o *CorpusOpts) {
		o.TextColumn = text
		o.IDColumn = id
		o.RatingColumn = rating
		o.DayColumn = day
	}
}

// WithNormalize enables (the default) or disables text normalization.
func WithNormalize(enabled bool) CorpusOpt {
	return func(o *CorpusOpts) {
		o.Normalize = enabled
	}
}

// ReadCorpus parses a CSV corpus into documents. The first record is the
// header; the text, id, rating and day columns must all be present. Rows with
// a missing identifier fall back to their 1-based position.
func ReadCorpus(r io.Reader, opts ...CorpusOpt) ([]Document, error) {
	o := DefaultCorpusOpts()
	for _, applyOpt := range opts {
		applyOpt(&o)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	textIdx, err := columnIndex(cols, o.TextColumn)
	if err != nil {
		return nil, err
	}
	idIdx, err := columnIndex(cols, o.IDColumn)
	if err != nil {
		return nil, err
	}
	ratingIdx, err := columnIndex(cols, o.RatingColumn)
	if err != nil {
		return nil, err
	}
	dayIdx, err := columnIndex(cols, o.DayColumn)
	if err != nil {
		return nil, err
	}

	var docs []Document
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading corpus row %d: %w", line+2, err)
		}
		line++

		doc := Document{
			ID:     field(record, idIdx),
			Text:   field(record, textIdx),
			Rating: field(record, ratingIdx),
		}
		if doc.ID == "" {
			doc.ID = strconv.Itoa(line)
		}
		if day := field(record, dayIdx); day != "" {
			doc.Day, err = strconv.Atoi(day)
			if err != nil {
				return nil, fmt.Errorf("corpus row %d: bad day value %q: %w", line+1, day, err)
			}
		}
		if o.Normalize {
			doc.Text = NormalizeText(doc.Text)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}
	return docs, nil
}

// ReadCorpusFile reads a corpus CSV from disk.
func ReadCorpusFile(path string, opts ...CorpusOpt) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f, opts...)
}

func columnIndex(cols map[string]int, name string) (int, error) {
	idx, ok := cols[name]
	if !ok {
		return 0, fmt.Errorf("corpus is missing column %q", name)
	}
	return idx, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

var (
	mdLinkRE = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlRE    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagRE    = regexp.MustCompile(`<.*?>`)
)

// NormalizeText flattens markdown to plain text, drops links and markup, and
// applies NFC normalization. Blog posts arrive with markdown and raw HTML
// mixed into the prose.
func NormalizeText(input string) string {
	input = mdLinkRE.ReplaceAllString(input, "$1") // Keep only the link text
	input = urlRE.ReplaceAllString(input, "")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagRE.ReplaceAllString(string(rendered), " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return norm.NFC.String(plain)
}
