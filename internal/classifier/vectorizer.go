// Package classifier holds the fitted text pipeline: a TF-IDF vectorizer
// feeding a binary logistic-regression model. Parameters are immutable after
// fitting and safe to share across concurrent requests.
package classifier

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures caps the vocabulary size when none is configured
const DefaultMaxFeatures = 50000

// tokens of two or more word characters; single letters carry no signal
var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9]{2,}`)

// TermVector is one document as a sparse TF-IDF row keyed by feature index
type TermVector map[int]float64

// Vectorizer maps text to L2-normalized TF-IDF rows over a fixed vocabulary.
// Fit selects the vocabulary from a training corpus; Transform never mutates
// state and may be called concurrently once fitting is done.
type Vectorizer struct {
	Vocabulary  map[string]int
	IDF         []float64
	MaxFeatures int
}

// NewVectorizer creates an unfitted vectorizer. maxFeatures <= 0 selects the
// default cap.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fitted reports whether a vocabulary has been built
func (v *Vectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0 && len(v.IDF) == len(v.Vocabulary)
}

// FeatureCount returns the fitted vocabulary size
func (v *Vectorizer) FeatureCount() int {
	return len(v.Vocabulary)
}

// Tokenize splits text into lowercase word tokens, excluding stop words
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Fit builds the vocabulary and inverse-document-frequency table from the
// training corpus. When more distinct terms exist than MaxFeatures allows,
// the most frequent terms win; ties break toward the lexically smaller term
// so refitting the same corpus always yields the same vocabulary.
func (v *Vectorizer) Fit(docs []string) {
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			termCounts[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(termCounts))
	for term := range termCounts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCounts[terms[i]] != termCounts[terms[j]] {
			return termCounts[terms[i]] > termCounts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}

	// Feature indices follow the lexical order of the selected terms so the
	// vocabulary layout is independent of selection order.
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed idf: every term behaves as if seen in one extra document,
		// so unseen-at-transform-time terms never divide by zero.
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
}

// Transform maps one document onto the fitted vocabulary. Terms outside the
// vocabulary are dropped; the resulting row is L2-normalized. An unfitted
// vectorizer or a document with no known terms yields an empty row.
func (v *Vectorizer) Transform(doc string) TermVector {
	row := make(TermVector)
	if !v.Fitted() {
		return row
	}
	for _, tok := range Tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			row[idx]++
		}
	}
	var sumSquares float64
	for idx := range row {
		row[idx] *= v.IDF[idx]
		sumSquares += row[idx] * row[idx]
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range row {
			row[idx] /= norm
		}
	}
	return row
}
