package repository

import (
	"github.com/newslens/news-inspector-go/internal/classifier"
)

// ModelRepository defines the interface for persisting and loading the
// fitted classification pipeline
type ModelRepository interface {
	// Load reads the persisted pipeline artifact. A missing or unreadable
	// artifact is a fatal configuration error for a serving process.
	Load() (*classifier.Pipeline, error)

	// Save persists a fitted pipeline atomically; a failed save never
	// leaves a partial artifact behind.
	Save(pipeline *classifier.Pipeline) error

	// Path returns the artifact location, for logging
	Path() string
}
