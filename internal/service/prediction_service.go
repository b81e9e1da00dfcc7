// Package service orchestrates the prediction pipeline: extraction,
// filtering, normalization, classification, and the metadata attached to
// each verdict.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/newslens/news-inspector-go/internal/classifier"
	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/internal/observer"
	"github.com/newslens/news-inspector-go/internal/ocr"
	"github.com/newslens/news-inspector-go/internal/storage"
	"github.com/newslens/news-inspector-go/internal/textproc"
	"github.com/newslens/news-inspector-go/pkg/models"
	"github.com/newslens/news-inspector-go/pkg/validation"
)

// PredictionService is the contract the transport layer and the CLI consume
type PredictionService interface {
	// Predict classifies plain text. Blank input fails with an
	// empty-input error rather than a guessed verdict.
	Predict(ctx context.Context, text string) (*models.PredictionResult, error)

	// PredictFromImage extracts text from an image, filters newspaper
	// artifacts, and classifies what remains.
	PredictFromImage(ctx context.Context, image []byte, hints []string) (*models.PredictionResult, error)

	// PredictFromURL fetches the image bytes first, then follows the
	// image protocol.
	PredictFromURL(ctx context.Context, imageURL string, hints []string) (*models.PredictionResult, error)

	// PreviewOCR runs extraction and filtering without classification, so
	// callers can inspect exactly what the classifier would see. An empty
	// transcript is a valid preview, not an error.
	PreviewOCR(ctx context.Context, image []byte, hints []string, expectedText string) (*models.OCRPreviewResult, error)

	// SupportedLanguages maps the active engine to its language codes
	SupportedLanguages() map[string][]string
}

type predictionService struct {
	pipeline   *classifier.Pipeline
	extractor  *ocr.Extractor
	fetcher    storage.ImageFetcher
	normalizer *textproc.Normalizer
	filter     *textproc.ArtifactFilter
	reputation *textproc.ReputationChecker
	structure  *textproc.StructureAnalyzer
	urls       *validation.URLValidator
	events     observer.Subject
}

// NewPredictionService assembles the orchestrator. The pipeline is the one
// shared read-only resource; everything else is stateless per call.
func NewPredictionService(
	pipeline *classifier.Pipeline,
	extractor *ocr.Extractor,
	fetcher storage.ImageFetcher,
	rules textproc.Rules,
	allowedHosts []string,
	events observer.Subject,
) PredictionService {
	return &predictionService{
		pipeline:   pipeline,
		extractor:  extractor,
		fetcher:    fetcher,
		normalizer: textproc.NewNormalizer(),
		filter:     textproc.NewArtifactFilter(rules),
		reputation: textproc.NewReputationChecker(rules.ReputableOutlets),
		structure:  textproc.NewStructureAnalyzer(rules),
		urls:       validation.NewURLValidatorWithOptions([]string{"http", "https"}, allowedHosts),
		events:     events,
	}
}

// Predict implements the text protocol: normalize, then classify
func (s *predictionService) Predict(ctx context.Context, text string) (*models.PredictionResult, error) {
	start := time.Now()
	id := uuid.New().String()
	s.publishStarted(ctx, id, "text")

	if strings.TrimSpace(text) == "" {
		return nil, s.fail(ctx, id, "text", start, apperrors.NewEmptyInputError("text cannot be empty"))
	}

	normalized := s.normalizer.Normalize(text)
	if normalized == "" {
		return nil, s.fail(ctx, id, "text", start,
			apperrors.NewEmptyInputError("no usable text remains after normalization"))
	}

	label, confidence, err := s.pipeline.Classify(normalized)
	if err != nil {
		return nil, s.fail(ctx, id, "text", start, err)
	}

	result := &models.PredictionResult{
		ID:                id,
		Label:             label,
		Confidence:        confidence,
		PreprocessedText:  normalized,
		Timestamp:         start,
		ProcessingTimeSec: time.Since(start).Seconds(),
		ModelVersion:      s.pipeline.Metadata().Version,
	}
	s.publishCompleted(ctx, id, "text", start, result)
	return result, nil
}

// PredictFromImage implements the image protocol: extract, filter,
// normalize, classify, and attach the OCR metadata to the verdict
func (s *predictionService) PredictFromImage(ctx context.Context, image []byte, hints []string) (*models.PredictionResult, error) {
	start := time.Now()
	id := uuid.New().String()
	s.publishStarted(ctx, id, "image")

	extracted, err := s.extractor.Extract(ctx, image, hints)
	if err != nil {
		return nil, s.fail(ctx, id, "image", start, err)
	}

	normalized := s.prepareTranscript(extracted.Text)
	if normalized == "" {
		return nil, s.fail(ctx, id, "image", start,
			apperrors.NewEmptyInputError("no usable text recognized in the image"))
	}

	label, confidence, err := s.pipeline.Classify(normalized)
	if err != nil {
		return nil, s.fail(ctx, id, "image", start, err)
	}

	result := &models.PredictionResult{
		ID:                id,
		Label:             label,
		Confidence:        confidence,
		PreprocessedText:  normalized,
		Timestamp:         start,
		ProcessingTimeSec: time.Since(start).Seconds(),
		ExtractedText:     extracted.Text,
		OCREngineUsed:     extracted.Engine,
		TextDetections:    detectionCount(extracted),
		IsReputableSource: s.reputation.IsReputable(extracted.Text),
		ModelVersion:      s.pipeline.Metadata().Version,
	}
	s.publishCompleted(ctx, id, "image", start, result)
	return result, nil
}

// PredictFromURL fetches image bytes from HTTP or blob storage, then
// delegates to the image protocol
func (s *predictionService) PredictFromURL(ctx context.Context, imageURL string, hints []string) (*models.PredictionResult, error) {
	if err := s.urls.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	data, err := s.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		netErr := apperrors.NewNetworkError("failed to fetch image", err)
		s.events.NotifyObservers(ctx, observer.PredictionEvent{
			EventType:    observer.ImageFetchFailed,
			Timestamp:    time.Now(),
			InputType:    "url",
			ErrorMessage: netErr.Error(),
			Metadata:     map[string]interface{}{"image_url": imageURL},
		})
		return nil, netErr
	}
	s.events.NotifyObservers(ctx, observer.PredictionEvent{
		EventType: observer.ImageFetched,
		Timestamp: time.Now(),
		InputType: "url",
		Success:   true,
		Metadata:  map[string]interface{}{"image_url": imageURL, "bytes": len(data)},
	})

	result, err := s.PredictFromImage(ctx, data, hints)
	if err != nil {
		return nil, err
	}
	result.ImageURL = imageURL
	return result, nil
}

// PreviewOCR shares prepareTranscript with the image protocol, so preview
// and prediction can never disagree about the preprocessed text
func (s *predictionService) PreviewOCR(ctx context.Context, image []byte, hints []string, expectedText string) (*models.OCRPreviewResult, error) {
	start := time.Now()

	extracted, err := s.extractor.Extract(ctx, image, hints)
	if err != nil {
		return nil, err
	}

	preview := &models.OCRPreviewResult{
		ExtractedText:     extracted.Text,
		PreprocessedText:  s.prepareTranscript(extracted.Text),
		OCREngineUsed:     extracted.Engine,
		TextDetections:    detectionCount(extracted),
		IsReputableSource: s.reputation.IsReputable(extracted.Text),
		ProcessingTimeSec: time.Since(start).Seconds(),
		Structure:         s.structure.Summarize(extracted.Text),
	}
	preview.Accuracy = transcriptAccuracy(extracted.Text, expectedText)
	return preview, nil
}

// SupportedLanguages maps the active engine to its language codes
func (s *predictionService) SupportedLanguages() map[string][]string {
	return s.extractor.SupportedLanguages()
}

// prepareTranscript is the single filtering-plus-normalization step used by
// every OCR-derived path
func (s *predictionService) prepareTranscript(raw string) string {
	return s.normalizer.Normalize(s.filter.Filter(raw))
}

// detectionCount prefers the engine's region count; engines without region
// output fall back to counting transcript lines
func detectionCount(res ocr.Result) int {
	if len(res.Detections) > 0 {
		return len(res.Detections)
	}
	count := 0
	for _, line := range strings.Split(res.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

func (s *predictionService) publishStarted(ctx context.Context, id, inputType string) {
	s.events.NotifyObservers(ctx, observer.PredictionEvent{
		EventType: observer.PredictionStarted,
		Timestamp: time.Now(),
		RequestID: id,
		InputType: inputType,
	})
}

func (s *predictionService) publishCompleted(ctx context.Context, id, inputType string, start time.Time, result *models.PredictionResult) {
	s.events.NotifyObservers(ctx, observer.PredictionEvent{
		EventType:      observer.PredictionCompleted,
		Timestamp:      time.Now(),
		RequestID:      id,
		InputType:      inputType,
		ProcessingTime: time.Since(start),
		Success:        true,
		Label:          string(result.Label),
		Confidence:     result.Confidence,
	})
}

// fail publishes the failure event and returns the error unchanged
func (s *predictionService) fail(ctx context.Context, id, inputType string, start time.Time, err error) error {
	s.events.NotifyObservers(ctx, observer.PredictionEvent{
		EventType:      observer.PredictionFailed,
		Timestamp:      time.Now(),
		RequestID:      id,
		InputType:      inputType,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
	return err
}
