package classifier

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// artifact is the serialized form of a fitted pipeline: one gzipped JSON
// document holding the vocabulary, idf table, and classifier weights.
type artifact struct {
	Version      string         `json:"version"`
	TrainedAt    string         `json:"trained_at"`
	TrainSamples int            `json:"train_samples"`
	MaxFeatures  int            `json:"max_features"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Weights      []float64      `json:"weights"`
	Bias         float64        `json:"bias"`
}

// Encode writes the fitted pipeline to w as a gzipped JSON artifact
func (p *Pipeline) Encode(w io.Writer) error {
	if !p.Fitted() {
		return fmt.Errorf("refusing to persist an unfitted pipeline")
	}
	art := artifact{
		Version:      p.meta.Version,
		TrainedAt:    p.meta.TrainedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		TrainSamples: p.meta.TrainSamples,
		MaxFeatures:  p.vectorizer.MaxFeatures,
		Vocabulary:   p.vectorizer.Vocabulary,
		IDF:          p.vectorizer.IDF,
		Weights:      p.model.Weights,
		Bias:         p.model.Bias,
	}

	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(&art); err != nil {
		zw.Close()
		return fmt.Errorf("encode pipeline artifact: %w", err)
	}
	return zw.Close()
}

// Decode reads a pipeline from a gzipped JSON artifact and validates that
// the parameter shapes agree before returning it.
func Decode(r io.Reader) (*Pipeline, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open pipeline artifact: %w", err)
	}
	defer zr.Close()

	var art artifact
	if err := json.NewDecoder(zr).Decode(&art); err != nil {
		return nil, fmt.Errorf("decode pipeline artifact: %w", err)
	}

	if len(art.Vocabulary) == 0 || len(art.Weights) == 0 {
		return nil, fmt.Errorf("pipeline artifact carries no fitted parameters")
	}
	if len(art.IDF) != len(art.Vocabulary) || len(art.Weights) != len(art.Vocabulary) {
		return nil, fmt.Errorf("pipeline artifact is inconsistent: %d terms, %d idf values, %d weights",
			len(art.Vocabulary), len(art.IDF), len(art.Weights))
	}

	// A missing or malformed timestamp degrades to the zero time; the
	// trained parameters are what matter.
	trainedAt, _ := time.Parse("2006-01-02T15:04:05Z07:00", art.TrainedAt)
	vectorizer := &Vectorizer{
		Vocabulary:  art.Vocabulary,
		IDF:         art.IDF,
		MaxFeatures: art.MaxFeatures,
	}
	model := &Model{Weights: art.Weights, Bias: art.Bias}
	meta := Metadata{
		Version:      art.Version,
		TrainedAt:    trainedAt,
		TrainSamples: art.TrainSamples,
	}
	return NewPipeline(vectorizer, model, meta), nil
}
