package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/newslens/news-inspector-go/internal/classifier"
	apperrors "github.com/newslens/news-inspector-go/internal/errors"
)

// FileModelRepository stores the pipeline artifact on the local filesystem
type FileModelRepository struct {
	path string
}

// NewFileModelRepository creates a repository rooted at the given artifact path
func NewFileModelRepository(path string) *FileModelRepository {
	return &FileModelRepository{path: path}
}

// Path returns the artifact location
func (r *FileModelRepository) Path() string {
	return r.path
}

// Load reads and validates the persisted pipeline. Missing and corrupt
// artifacts both surface as not-fitted errors so startup halts instead of
// serving guesses.
func (r *FileModelRepository) Load() (*classifier.Pipeline, error) {
	if r.path == "" {
		return nil, apperrors.NewNotFittedError("no model artifact path configured", ErrEmptyPath)
	}

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFittedError(
				fmt.Sprintf("model artifact not found at %s; run the trainer first", r.path), err)
		}
		return nil, apperrors.NewNotFittedError(
			fmt.Sprintf("model artifact at %s is unreadable", r.path), err)
	}
	defer f.Close()

	pipeline, err := classifier.Decode(f)
	if err != nil {
		return nil, apperrors.NewNotFittedError(
			fmt.Sprintf("model artifact at %s is corrupt", r.path), err)
	}
	return pipeline, nil
}

// Save writes the pipeline to a temporary file in the target directory and
// renames it into place, so a crash mid-write never corrupts a previously
// good artifact.
func (r *FileModelRepository) Save(pipeline *classifier.Pipeline) error {
	if pipeline == nil {
		return ErrNilPipeline
	}
	if r.path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := pipeline.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("publish model artifact to %s: %w", r.path, err)
	}
	return nil
}
