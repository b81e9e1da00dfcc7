package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with a local Tesseract installation
// through the gosseract client. A fresh client is created per call; the
// client is not safe for concurrent use.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

// Name returns the engine identity
func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR on one image. Line-level bounding boxes become
// detections and the transcript is their newline join in engine order; when
// the engine exposes no boxes the full-page text is used instead.
func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		text, terr := c.Text()
		if terr != nil {
			return Result{}, fmt.Errorf("recognize text: %w", terr)
		}
		return Result{Text: strings.TrimSpace(text), Engine: e.Name()}, nil
	}

	detections := make([]Detection, 0, len(boxes))
	lines := make([]string, 0, len(boxes))
	for _, b := range boxes {
		line := strings.TrimSpace(b.Word)
		if line == "" {
			continue
		}
		detections = append(detections, Detection{
			Text:       line,
			Confidence: b.Confidence / 100.0,
			Bounds:     b.Box,
		})
		lines = append(lines, line)
	}

	return Result{
		Text:       strings.Join(lines, "\n"),
		Detections: detections,
		Engine:     e.Name(),
	}, nil
}
