package classifier

import (
	"math"
	"time"

	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/pkg/models"
)

// PipelineVersion identifies the artifact layout and model family
const PipelineVersion = "tfidf-logreg-1"

// Metadata describes the provenance of a fitted pipeline
type Metadata struct {
	Version      string    `json:"version"`
	TrainedAt    time.Time `json:"trained_at"`
	TrainSamples int       `json:"train_samples"`
}

// Pipeline pairs a fitted vectorizer with a fitted model. It is the one
// process-wide piece of shared state: loaded once at startup, read-only
// afterwards, so Classify needs no locking.
type Pipeline struct {
	vectorizer *Vectorizer
	model      *Model
	meta       Metadata
}

// NewPipeline assembles a pipeline from fitted parts
func NewPipeline(vectorizer *Vectorizer, model *Model, meta Metadata) *Pipeline {
	if meta.Version == "" {
		meta.Version = PipelineVersion
	}
	return &Pipeline{vectorizer: vectorizer, model: model, meta: meta}
}

// Metadata returns the pipeline provenance
func (p *Pipeline) Metadata() Metadata {
	return p.meta
}

// Fitted reports whether both stages carry trained parameters
func (p *Pipeline) Fitted() bool {
	return p != nil && p.vectorizer != nil && p.vectorizer.Fitted() &&
		p.model != nil && p.model.Fitted()
}

// Classify maps normalized text to a verdict and its confidence, the
// probability of the returned label expressed as a percentage. An unfitted
// pipeline fails rather than guessing a default label.
//
// The verdict is REAL only when P(REAL) strictly exceeds 0.5; an exact tie
// is reported as FAKE, matching the trained reference behavior.
func (p *Pipeline) Classify(text string) (models.Label, float64, error) {
	if !p.Fitted() {
		return "", 0, apperrors.NewNotFittedError("classifier has no trained parameters loaded", nil)
	}

	pReal := p.model.Proba(p.vectorizer.Transform(text))

	label := models.LabelFake
	confidence := 1 - pReal
	if pReal > 0.5 {
		label = models.LabelReal
		confidence = pReal
	}
	return label, round2(confidence * 100), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
