package models

import "time"

// Label is the verdict assigned to a document.
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// PredictionResult represents the complete result of classifying one document.
// The same struct serves the text and image entry points; OCR-specific fields
// stay empty for plain-text input.
type PredictionResult struct {
	ID                string    `json:"id"`
	Label             Label     `json:"label"`
	Confidence        float64   `json:"confidence"` // 0-100, probability of the returned label
	PreprocessedText  string    `json:"preprocessed_text"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	// OCR specific (image input only)
	ExtractedText     string `json:"extracted_text,omitempty"`
	OCREngineUsed     string `json:"ocr_engine_used,omitempty"`
	TextDetections    int    `json:"text_detections,omitempty"`
	IsReputableSource bool   `json:"is_reputable_source,omitempty"`
	ImageURL          string `json:"image_url,omitempty"`

	ModelVersion string `json:"model_version,omitempty"`
}

// IsFake reports whether the document was judged fabricated.
func (r *PredictionResult) IsFake() bool {
	return r.Label == LabelFake
}
