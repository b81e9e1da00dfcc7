package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PredictionEvent represents one step in handling a classification request
type PredictionEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id"`
	InputType      string                 `json:"input_type"` // "text", "image" or "url"
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	Label          string                 `json:"label,omitempty"`
	Confidence     float64                `json:"confidence,omitempty"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of prediction event
type EventType string

const (
	// PredictionStarted when a classification request begins
	PredictionStarted EventType = "prediction_started"
	// PredictionCompleted when a verdict was produced
	PredictionCompleted EventType = "prediction_completed"
	// PredictionFailed when the request ended in an error
	PredictionFailed EventType = "prediction_failed"
	// ImageFetched when a URL-based request retrieved its image
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when the image retrieval failed
	ImageFetchFailed EventType = "image_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event PredictionEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event PredictionEvent)
}

// LoggingObserver logs prediction events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles prediction events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event PredictionEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"request_id":      event.RequestID,
		"input_type":      event.InputType,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.Label != "" {
		fields["label"] = event.Label
		fields["confidence"] = event.Confidence
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case PredictionStarted:
		o.logger.WithFields(fields).Debug("Prediction started")
	case PredictionCompleted:
		o.logger.WithFields(fields).Info("Prediction completed")
	case PredictionFailed:
		o.logger.WithFields(fields).Error("Prediction failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("Image fetched successfully")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("Image fetch failed")
	default:
		o.logger.WithFields(fields).Info("Prediction event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver aggregates counters from prediction events, served by the
// /metrics endpoint
type MetricsObserver struct {
	mu                    sync.RWMutex
	totalPredictions      int64
	successfulPredictions int64
	failedPredictions     int64
	fakeVerdicts          int64
	realVerdicts          int64
	totalProcessingTime   time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles prediction events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event PredictionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case PredictionStarted:
		o.totalPredictions++
	case PredictionCompleted:
		o.successfulPredictions++
		o.totalProcessingTime += event.ProcessingTime
		switch event.Label {
		case "FAKE":
			o.fakeVerdicts++
		case "REAL":
			o.realVerdicts++
		}
	case PredictionFailed:
		o.failedPredictions++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulPredictions > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulPredictions)
	}

	return map[string]interface{}{
		"total_predictions":      o.totalPredictions,
		"successful_predictions": o.successfulPredictions,
		"failed_predictions":     o.failedPredictions,
		"fake_verdicts":          o.fakeVerdicts,
		"real_verdicts":          o.realVerdicts,
		"total_processing_time":  o.totalProcessingTime.String(),
		"avg_processing_time":    avgProcessingTime.String(),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event PredictionEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
