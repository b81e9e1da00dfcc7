package factory

import (
	"fmt"

	"github.com/newslens/news-inspector-go/internal/config"
	"github.com/newslens/news-inspector-go/internal/ocr"
	"github.com/newslens/news-inspector-go/internal/storage"
)

// Engine names accepted by CreateEngine
const (
	TesseractEngine = "tesseract"
)

// Storage backend names accepted by CreateFetcher
const (
	HTTPStorage  = "http"
	AzureStorage = "azure"
)

// CreateEngine builds the OCR engine named in the configuration. Tesseract
// is the only engine shipped today; the switch is the seam for adding more.
func CreateEngine(name string) (ocr.Engine, error) {
	switch name {
	case TesseractEngine, "":
		return ocr.NewTesseractEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", name)
	}
}

// CreateFetcher builds the image fetcher for URL-based prediction from the
// configured storage backend.
func CreateFetcher(cfg *config.Config) (storage.ImageFetcher, error) {
	switch cfg.StorageBackend {
	case HTTPStorage, "":
		return storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize), nil
	case AzureStorage:
		return storage.NewAzureImageFetcher(cfg.AzureAccount, cfg.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
