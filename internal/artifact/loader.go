package artifact

import (
	"context"
	"log"
	"sync"
)

// Artifact roles
const (
	RoleTransformer = "transformer"
	RoleClassifier  = "classifier"
	RoleRegressor   = "regressor"
)

// Names are the artifact names looked up in a Source
type Names struct {
	Transformer string
	Classifier  string
	Regressor   string
}

// Artifacts holds the three ready-to-use handles. They are read-only after
// loading and safe to share between concurrent requests.
type Artifacts struct {
	Transformer *ColumnTransformer
	Classifier  Classifier
	Regressor   Regressor
}

// Loader reads and decodes all three artifacts from a Source
type Loader struct {
	source Source
	names  Names
}

// NewLoader creates a loader
func NewLoader(source Source, names Names) *Loader {
	return &Loader{source: source, names: names}
}

// Load returns all three handles or none. A failure on any artifact yields a
// *LoadError naming it; partial results are never returned.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	raw, err := l.source.Read(ctx, l.names.Transformer)
	if err != nil {
		return nil, &LoadError{Artifact: RoleTransformer, Name: l.names.Transformer, Err: err}
	}
	transformer, err := DecodeTransformer(raw)
	if err != nil {
		return nil, &LoadError{Artifact: RoleTransformer, Name: l.names.Transformer, Err: err}
	}

	raw, err = l.source.Read(ctx, l.names.Classifier)
	if err != nil {
		return nil, &LoadError{Artifact: RoleClassifier, Name: l.names.Classifier, Err: err}
	}
	classifier, err := DecodeClassifier(raw, transformer.Width())
	if err != nil {
		return nil, &LoadError{Artifact: RoleClassifier, Name: l.names.Classifier, Err: err}
	}

	raw, err = l.source.Read(ctx, l.names.Regressor)
	if err != nil {
		return nil, &LoadError{Artifact: RoleRegressor, Name: l.names.Regressor, Err: err}
	}
	regressor, err := DecodeRegressor(raw, transformer.Width())
	if err != nil {
		return nil, &LoadError{Artifact: RoleRegressor, Name: l.names.Regressor, Err: err}
	}

	return &Artifacts{
		Transformer: transformer,
		Classifier:  classifier,
		Regressor:   regressor,
	}, nil
}

// Store loads artifacts once per process and hands out the same outcome
// forever after: either the shared handles or the same load error.
type Store struct {
	loader *Loader
	once   sync.Once

	artifacts *Artifacts
	err       error
}

// NewStore creates a store around loader. Nothing is read until Get.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// Get returns the cached artifacts, loading them on first use. The load is
// detached from ctx cancellation since its outcome is kept for every caller.
func (s *Store) Get(ctx context.Context) (*Artifacts, error) {
	s.once.Do(func() {
		s.artifacts, s.err = s.loader.Load(context.WithoutCancel(ctx))
		if s.err != nil {
			s.artifacts = nil
			log.Printf("❌ Model artifacts unavailable: %v", s.err)
			log.Printf("   - Source: %s", s.loader.source.Describe())
			if d, ok := s.loader.source.(Diagnoser); ok {
				for _, line := range d.Diagnose() {
					log.Printf("   - %s", line)
				}
			}
			log.Printf("   Prediction is disabled until the artifacts are fixed and the service restarted")
			return
		}
		log.Printf("✅ Model artifacts loaded from %s (%d transformed features)",
			s.loader.source.Describe(), s.artifacts.Transformer.Width())
	})
	return s.artifacts, s.err
}
