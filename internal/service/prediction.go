package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"reiadvisor/internal/artifact"
	"reiadvisor/internal/model"

	"github.com/google/uuid"
)

// Clock returns the current time
type Clock func() time.Time

// ArtifactProvider hands out the process-wide artifacts
type ArtifactProvider interface {
	Get(ctx context.Context) (*artifact.Artifacts, error)
}

// ComparablesFinder looks up reference listings near a transformed vector
type ComparablesFinder interface {
	NearestListings(ctx context.Context, features []float32, k int) ([]model.ReferenceListing, error)
}

// PredictionOptions tune the prediction service
type PredictionOptions struct {
	ReferenceYear   int // 0 = calendar year of Clock at request time
	LakhMultiplier  float64
	ComparablesTopK int
	Ranking         RankingWeights // zero value = DefaultRankingWeights
	Debug           bool
}

// PredictionService runs one submission through transform -> classify and
// transform -> regress. Each submission is a single attempt; failures are
// returned as typed errors and never retried.
type PredictionService struct {
	artifacts   ArtifactProvider
	builder     *RecordBuilder
	comparables ComparablesFinder
	ranker      *Ranker
	opts        PredictionOptions
	now         Clock
}

// NewPredictionService creates a prediction service. comparables may be nil.
func NewPredictionService(
	artifacts ArtifactProvider,
	builder *RecordBuilder,
	comparables ComparablesFinder,
	opts PredictionOptions,
	now Clock,
) *PredictionService {
	if now == nil {
		now = time.Now
	}
	if opts.LakhMultiplier <= 0 {
		opts.LakhMultiplier = 100000
	}
	if opts.Ranking == (RankingWeights{}) {
		opts.Ranking = DefaultRankingWeights
	}
	return &PredictionService{
		artifacts:   artifacts,
		builder:     builder,
		comparables: comparables,
		ranker:      NewRanker(opts.Ranking),
		opts:        opts,
		now:         now,
	}
}

// Builder returns the record builder
func (s *PredictionService) Builder() *RecordBuilder {
	return s.builder
}

// ReferenceYear returns the year ages are computed against
func (s *PredictionService) ReferenceYear() int {
	if s.opts.ReferenceYear > 0 {
		return s.opts.ReferenceYear
	}
	return s.now().Year()
}

// Status returns nil when prediction is possible
func (s *PredictionService) Status(ctx context.Context) error {
	if _, err := s.artifacts.Get(ctx); err != nil {
		return &ArtifactLoadError{Err: err}
	}
	return nil
}

// Predict builds the record for form and runs both models on it
func (s *PredictionService) Predict(ctx context.Context, form *model.PropertyForm) (*model.PredictionResult, error) {
	startTime := time.Now()
	requestID := uuid.NewString()

	// Refuse before touching the form when artifacts are missing
	arts, err := s.artifacts.Get(ctx)
	if err != nil {
		log.Printf("[%s] ❌ prediction refused: artifacts unavailable", requestID)
		return nil, &ArtifactLoadError{Err: err}
	}

	referenceYear := s.ReferenceYear()
	rec, warnings, err := s.builder.Build(form, referenceYear)
	if err != nil {
		log.Printf("[%s] ❌ invalid submission: %v", requestID, err)
		return nil, err
	}

	if s.opts.Debug {
		log.Printf("[DEBUG] [%s] feature record: %+v", requestID, *rec)
	}

	features, price, label, err := invoke(arts, rec)
	if err != nil {
		log.Printf("[%s] ❌ prediction failed: %v", requestID, err)
		return nil, err
	}

	result := &model.PredictionResult{
		RequestID:     requestID,
		Record:        *rec,
		PriceLakhs:    price,
		PricePerSqFt:  model.PricePerSqFt(price, rec.SizeInSqFt, s.opts.LakhMultiplier),
		Category:      label,
		Verdict:       model.VerdictFor(label),
		Warnings:      warnings,
		ReferenceYear: referenceYear,
	}

	if s.comparables != nil && s.opts.ComparablesTopK > 0 {
		listings, err := s.comparables.NearestListings(ctx, toFloat32(features), s.opts.ComparablesTopK)
		if err != nil {
			log.Printf("[%s] ⚠️  comparables lookup failed: %v", requestID, err)
		} else {
			result.Comparables = s.ranker.RankComparables(listings, rec, price)
		}
	}

	result.Took = time.Since(startTime).Milliseconds()
	log.Printf("[%s] ✅ %s, %d BHK, %d sq.ft. -> ₹ %.2f Lakhs, %s (%dms)",
		requestID, rec.City, rec.BHK, rec.SizeInSqFt, price, label, result.Took)

	return result, nil
}

// Vocabulary returns the fitted categories of a one-hot encoded field.
// field may be a form field name (locality) or a column name (Locality).
func (s *PredictionService) Vocabulary(ctx context.Context, field string) ([]string, error) {
	arts, err := s.artifacts.Get(ctx)
	if err != nil {
		return nil, &ArtifactLoadError{Err: err}
	}

	column := field
	schema := s.builder.Schema()
	if f, ok := schema.Selects[field]; ok {
		column = f.Column
	} else if f, ok := schema.Texts[field]; ok {
		column = f.Column
	}

	cats, ok := arts.Transformer.Categories(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return cats, nil
}

// invoke runs transform then both models. Panics inside artifact code are
// turned into a PredictionError so one bad submission cannot take the
// process down.
func invoke(arts *artifact.Artifacts, rec *model.FeatureRecord) (features []float64, price float64, label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PredictionError{Stage: "pipeline", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	features, err = arts.Transformer.Transform(rec)
	if err != nil {
		return nil, 0, "", &TransformError{Err: err}
	}

	label, err = arts.Classifier.Predict(features)
	if err != nil {
		return nil, 0, "", &PredictionError{Stage: artifact.RoleClassifier, Err: err}
	}

	price, err = arts.Regressor.Predict(features)
	if err != nil {
		return nil, 0, "", &PredictionError{Stage: artifact.RoleRegressor, Err: err}
	}

	return features, price, label, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
