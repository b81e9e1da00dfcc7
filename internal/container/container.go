package container

import (
	"fmt"
	"net/http"

	"github.com/newslens/news-inspector-go/internal/config"
	"github.com/newslens/news-inspector-go/internal/factory"
	"github.com/newslens/news-inspector-go/internal/logger"
	"github.com/newslens/news-inspector-go/internal/observer"
	"github.com/newslens/news-inspector-go/internal/ocr"
	"github.com/newslens/news-inspector-go/internal/repository"
	"github.com/newslens/news-inspector-go/internal/service"
	"github.com/newslens/news-inspector-go/internal/textproc"
	"github.com/newslens/news-inspector-go/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config    *config.Config
	extractor *ocr.Extractor
	metrics   *observer.MetricsObserver
	service   service.PredictionService
	handler   http.Handler
}

// NewContainer builds the dependency graph for the serving binaries. A
// missing or corrupt model artifact is fatal: the service refuses to start
// rather than serve guesses.
func NewContainer(cfg *config.Config) (*Container, error) {
	rules := textproc.DefaultRules()
	if cfg.RulesPath != "" {
		var err error
		rules, err = textproc.LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load filter rules: %w", err)
		}
	}

	pipeline, err := repository.NewFileModelRepository(cfg.ModelPath).Load()
	if err != nil {
		return nil, fmt.Errorf("load model from %s: %w", cfg.ModelPath, err)
	}
	meta := pipeline.Metadata()
	logger.WithComponent("container").WithField("version", meta.Version).Info("Model loaded")

	engine, err := factory.CreateEngine(cfg.OCREngine)
	if err != nil {
		return nil, err
	}
	extractor := ocr.NewExtractor(engine, cfg.OCRWorkers, cfg.OCRLanguages)

	fetcher, err := factory.CreateFetcher(cfg)
	if err != nil {
		extractor.Close()
		return nil, err
	}

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	svc := service.NewPredictionService(pipeline, extractor, fetcher, rules, cfg.ImageAllowedHosts, events)
	handler := transport.NewHandler(svc, metrics, cfg)

	return &Container{
		config:    cfg,
		extractor: extractor,
		metrics:   metrics,
		service:   svc,
		handler:   handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Service returns the prediction service, used by the interactive binary
func (c *Container) Service() service.PredictionService {
	return c.service
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the OCR worker pool
func (c *Container) Close() {
	c.extractor.Close()
}
