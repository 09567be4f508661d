package service

import (
	"errors"
	"fmt"
)

// ErrArtifactsUnavailable matches every ArtifactLoadError
var ErrArtifactsUnavailable = errors.New("model artifacts are unavailable")

// ErrUnknownField is returned for vocabulary lookups on a field the
// transformer does not one-hot encode
var ErrUnknownField = errors.New("unknown categorical field")

// ArtifactLoadError means prediction is disabled for this process
type ArtifactLoadError struct {
	Err error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrArtifactsUnavailable, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrArtifactsUnavailable) match
func (e *ArtifactLoadError) Is(target error) bool {
	return target == ErrArtifactsUnavailable
}

// ValidationError is a submitted value outside its widget's constraints
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransformError means the record did not fit the transformer's fitted
// vocabulary or column types
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed: %v", e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// PredictionError is a failure inside the classifier or regressor after a
// successful transform
type PredictionError struct {
	Stage string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s prediction failed: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }
