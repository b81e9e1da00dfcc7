package ocr

import (
	"bytes"
	"context"
	"image"
	"strings"

	// serving processes accept every format the decoder registry knows
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/internal/logger"
)

// engineLanguages lists the language codes each known engine accepts, in
// preference order
var engineLanguages = map[string][]string{
	"tesseract": {"eng", "chi_sim", "fra", "deu", "spa", "ita", "por", "rus", "jpn", "kor"},
}

// Extractor validates image payloads and runs them through the engine on a
// bounded worker pool. Decode failures and engine failures stay distinct:
// the first is the caller's input, the second is the engine's fault.
type Extractor struct {
	engine       Engine
	pool         *WorkerPool
	defaultLangs []string
}

// NewExtractor creates an extractor over the given engine with a pool of
// the given size. defaultLanguages are used for requests that carry no
// language hints of their own; nil leaves the engine's default in effect.
func NewExtractor(engine Engine, workers int, defaultLanguages []string) *Extractor {
	pool := NewWorkerPool(workers)
	pool.Start()
	return &Extractor{engine: engine, pool: pool, defaultLangs: defaultLanguages}
}

// EngineName returns the active engine's identity
func (e *Extractor) EngineName() string {
	return e.engine.Name()
}

// SupportedLanguages maps the active engine to the language codes it accepts
func (e *Extractor) SupportedLanguages() map[string][]string {
	name := e.engine.Name()
	codes := engineLanguages[name]
	out := make([]string, len(codes))
	copy(out, codes)
	return map[string][]string{name: out}
}

// Extract decodes the image header to reject malformed payloads, then
// dispatches recognition to the pool and waits for it. Recognition is not
// retried; a hung engine call is bounded by the engine's own limits.
func (e *Extractor) Extract(ctx context.Context, img []byte, hints []string) (Result, error) {
	if len(img) == 0 {
		return Result{}, apperrors.NewDecodeError("image payload is empty", nil)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return Result{}, apperrors.NewDecodeError("image bytes are not a supported format", err)
	}
	logger.WithComponent("ocr").WithField("format", format).Debug("Image decoded")

	if len(hints) == 0 {
		hints = e.defaultLangs
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	e.pool.Submit(func() {
		res, err := e.engine.Recognize(ctx, Input{Image: img, Languages: hints})
		done <- outcome{res: res, err: err}
	})
	o := <-done

	if o.err != nil {
		return Result{}, apperrors.NewOCRError("text recognition failed", o.err)
	}
	if o.res.Engine == "" {
		o.res.Engine = e.engine.Name()
	}
	o.res.Text = strings.TrimRight(o.res.Text, "\n")
	return o.res, nil
}

// Close releases the worker pool
func (e *Extractor) Close() {
	e.pool.Close()
}
