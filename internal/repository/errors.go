package repository

import "errors"

var (
	// ErrNilPipeline indicates a save was attempted with no pipeline
	ErrNilPipeline = errors.New("nil pipeline")

	// ErrEmptyPath indicates the repository was built without an artifact path
	ErrEmptyPath = errors.New("model artifact path is empty")
)
