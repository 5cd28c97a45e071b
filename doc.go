// Package pundit implements a text-analysis workflow over a corpus of
// political blog posts: tokenization into a long-format token table,
// stop-word removal, lexicon-based sentiment scoring aggregated by document
// and by rating and day, and topic modeling over a pruned document-term
// representation with a covariate prevalence summary.
//
// Every computational step delegates to an existing library (tokenizer
// splitting rules aside): stop-word knowledge comes from bbalet/stopwords,
// sentence segmentation from neurosnap/sentences, topic-model inference from
// james-bowman/nlp, matrix algebra from gonum, and plotting from gonum/plot.
// Each step is a stateless transformation over in-memory tables; a run has no
// persistent state beyond the artifacts it chooses to write.
package pundit
