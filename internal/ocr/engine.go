// Package ocr wraps external text-recognition engines behind a narrow
// interface so backends can be swapped without touching the filtering or
// classification logic downstream.
package ocr

import (
	"context"
	"image"
)

// Detection is one recognized text region
type Detection struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"` // 0-1
	Bounds     image.Rectangle `json:"bounds"`
}

// Input is a single recognition request. Language hints are passed to the
// engine unvalidated; an unsupported hint is the engine's problem to
// tolerate, not ours to reject.
type Input struct {
	Image     []byte
	Languages []string
}

// Result carries the engine output. Text is the concatenation of detections
// in the engine's natural reading order; no reordering happens here.
type Result struct {
	Text       string
	Detections []Detection
	Engine     string
}

// Engine is the provider contract: one image in, one transcript out
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
