package services

import "errors"

// Failure classes the pipelines report. Handlers match with errors.Is
// to pick a user-facing message; everything is caught at the pipeline
// boundary and never reaches the renderer as an uncaught fault.
var (
	// ErrSettingsRead means the settings document could not be read.
	ErrSettingsRead = errors.New("settings read failed")
	// ErrProductRead means the product collection could not be read.
	ErrProductRead = errors.New("product read failed")
	// ErrShapeMismatch means fetched data was not in the expected shape.
	ErrShapeMismatch = errors.New("unexpected catalog data shape")
	// ErrUploadFailure means an image could not be written to object storage.
	ErrUploadFailure = errors.New("image upload failed")
	// ErrPersistenceFailure means the product record could not be persisted.
	ErrPersistenceFailure = errors.New("product write failed")
	// ErrSubmitInFlight means a submission for the same product is already running.
	ErrSubmitInFlight = errors.New("submission already in progress")
)
