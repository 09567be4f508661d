package artifact

import (
	"fmt"
)

// UnknownCategoryError is returned when a categorical value was not part of
// the vocabulary the transformer was fitted on.
type UnknownCategoryError struct {
	Column string
	Value  string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("found unknown category %q in column %s during transform", e.Value, e.Column)
}

// ColumnTypeError is returned when a step reads a column of the wrong kind
type ColumnTypeError struct {
	Column string
	Want   string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %s is not %s", e.Column, e.Want)
}

// ShapeError is returned when a model receives a vector of the wrong width
type ShapeError struct {
	Model string
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s expects %d features, got %d", e.Model, e.Want, e.Got)
}

// LoadError reports which artifact could not be read or decoded
type LoadError struct {
	Artifact string
	Name     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s artifact %q: %v", e.Artifact, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
