package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"reiadvisor/internal/artifact"
	"reiadvisor/internal/artifact/artifacttest"
	"reiadvisor/internal/formschema"
	"reiadvisor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticArtifacts struct {
	arts *artifact.Artifacts
	err  error
}

func (s staticArtifacts) Get(context.Context) (*artifact.Artifacts, error) {
	return s.arts, s.err
}

type fakeComparables struct {
	listings []model.ReferenceListing
	err      error
	gotLen   int
	gotK     int
}

func (f *fakeComparables) NearestListings(_ context.Context, features []float32, k int) ([]model.ReferenceListing, error) {
	f.gotLen, f.gotK = len(features), k
	return f.listings, f.err
}

type panicClassifier struct{}

func (panicClassifier) Predict([]float64) (string, error) { panic("index out of range") }

type failingRegressor struct{}

func (failingRegressor) Predict([]float64) (float64, error) {
	return 0, errors.New("non-finite prediction")
}

func fixedClock(year int) Clock {
	return func() time.Time { return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC) }
}

func newTestService(t *testing.T, provider ArtifactProvider, comparables ComparablesFinder, opts PredictionOptions) *PredictionService {
	t.Helper()
	if opts.LakhMultiplier == 0 {
		opts.LakhMultiplier = 100000
	}
	return NewPredictionService(provider, NewRecordBuilder(formschema.Default()), comparables, opts, fixedClock(2025))
}

func fixtureProvider(t *testing.T, handleUnknown string) staticArtifacts {
	return staticArtifacts{arts: artifacttest.New(handleUnknown).Artifacts(t)}
}

func TestPredict_MumbaiExample(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	res, err := svc.Predict(context.Background(), fullForm())
	require.NoError(t, err)

	assert.InDelta(t, 252.56, res.PriceLakhs, 1e-9)
	assert.Greater(t, res.PriceLakhs, 0.0)
	assert.Equal(t, model.LabelHighPotential, res.Category)
	assert.Equal(t, "HIGH POTENTIAL", res.Verdict.Headline)
	assert.True(t, res.Verdict.Positive)
	assert.Equal(t, 21, res.Record.AgeOfProperty)
	assert.Equal(t, 4, res.Record.AmenityScore)
	assert.Equal(t, 2025, res.ReferenceYear)
	assert.InDelta(t, 252.56*100000/4564, res.PricePerSqFt, 1e-6)
	assert.NotEmpty(t, res.RequestID)
	assert.Empty(t, res.Comparables)
}

func TestPredict_DefaultsOnlyIsLowPotential(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	res, err := svc.Predict(context.Background(), &model.PropertyForm{})
	require.NoError(t, err)
	assert.Equal(t, model.LabelLowPotential, res.Category)
	assert.Equal(t, "LOW POTENTIAL", res.Verdict.Headline)
	assert.False(t, res.Verdict.Positive)
}

func TestPredict_Idempotent(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	first, err := svc.Predict(context.Background(), fullForm())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), fullForm())
	require.NoError(t, err)

	assert.Equal(t, first.PriceLakhs, second.PriceLakhs)
	assert.Equal(t, first.Category, second.Category)
	assert.Equal(t, first.Record, second.Record)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestPredict_SizeAtMinimum(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	form := fullForm()
	form.SizeInSqFt = intPtr(100)
	res, err := svc.Predict(context.Background(), form)
	require.NoError(t, err)

	// 150 + 40 * (100 - 2000) / 1000
	assert.InDelta(t, 74.0, res.PriceLakhs, 1e-9)
	assert.InDelta(t, 74.0*100000/100, res.PricePerSqFt, 1e-6)
}

func TestPredict_ArtifactsUnavailable(t *testing.T) {
	loadErr := &artifact.LoadError{Artifact: artifact.RoleClassifier, Name: artifacttest.ClassifierName, Err: errors.New("no such file")}
	svc := newTestService(t, staticArtifacts{err: loadErr}, nil, PredictionOptions{})

	res, err := svc.Predict(context.Background(), fullForm())
	assert.Nil(t, res)

	var aerr *ArtifactLoadError
	require.ErrorAs(t, err, &aerr)
	assert.ErrorIs(t, err, ErrArtifactsUnavailable)
	assert.Contains(t, err.Error(), artifacttest.ClassifierName)

	assert.ErrorIs(t, svc.Status(context.Background()), ErrArtifactsUnavailable)
}

func TestPredict_ArtifactsCheckedBeforeValidation(t *testing.T) {
	svc := newTestService(t, staticArtifacts{err: errors.New("missing")}, nil, PredictionOptions{})

	_, err := svc.Predict(context.Background(), &model.PropertyForm{SizeInSqFt: intPtr(1)})
	assert.ErrorIs(t, err, ErrArtifactsUnavailable)
}

func TestPredict_UnseenLocality(t *testing.T) {
	form := fullForm()
	form.Locality = strPtr("Nonexistent_Place_999")

	t.Run("error policy", func(t *testing.T) {
		svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

		_, err := svc.Predict(context.Background(), form)
		var terr *TransformError
		require.ErrorAs(t, err, &terr)

		var unknown *artifact.UnknownCategoryError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, model.ColLocality, unknown.Column)
		assert.Equal(t, "Nonexistent_Place_999", unknown.Value)
	})

	t.Run("ignore policy", func(t *testing.T) {
		svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownIgnore), nil, PredictionOptions{})

		res, err := svc.Predict(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, "Nonexistent_Place_999", res.Record.Locality)
		assert.InDelta(t, 252.56, res.PriceLakhs, 1e-9)
	})
}

func TestPredict_ValidationError(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	form := fullForm()
	form.BHK = intPtr(11)
	_, err := svc.Predict(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, formschema.FieldBHK, verr.Field)
}

func TestPredict_PanicBecomesPredictionError(t *testing.T) {
	arts := artifacttest.New(artifact.HandleUnknownError).Artifacts(t)
	arts.Classifier = panicClassifier{}
	svc := newTestService(t, staticArtifacts{arts: arts}, nil, PredictionOptions{})

	_, err := svc.Predict(context.Background(), fullForm())
	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pipeline", perr.Stage)
	assert.Contains(t, err.Error(), "index out of range")
}

func TestPredict_RegressorFailure(t *testing.T) {
	arts := artifacttest.New(artifact.HandleUnknownError).Artifacts(t)
	arts.Regressor = failingRegressor{}
	svc := newTestService(t, staticArtifacts{arts: arts}, nil, PredictionOptions{})

	_, err := svc.Predict(context.Background(), fullForm())
	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, artifact.RoleRegressor, perr.Stage)
}

func TestPredict_Comparables(t *testing.T) {
	provider := fixtureProvider(t, artifact.HandleUnknownError)
	width := provider.arts.Transformer.Width()

	t.Run("attached", func(t *testing.T) {
		finder := &fakeComparables{listings: []model.ReferenceListing{
			{ID: 7, City: "Mumbai", Locality: "Locality_429", BHK: 3, SizeInSqFt: 4200, PriceLakhs: 240},
		}}
		svc := newTestService(t, provider, finder, PredictionOptions{ComparablesTopK: 3})

		res, err := svc.Predict(context.Background(), fullForm())
		require.NoError(t, err)
		require.Len(t, res.Comparables, 1)
		assert.Equal(t, int64(7), res.Comparables[0].ID)
		assert.Equal(t, width, finder.gotLen)
		assert.Equal(t, 3, finder.gotK)
	})

	t.Run("lookup failure does not fail the prediction", func(t *testing.T) {
		finder := &fakeComparables{err: errors.New("connection refused")}
		svc := newTestService(t, provider, finder, PredictionOptions{ComparablesTopK: 3})

		res, err := svc.Predict(context.Background(), fullForm())
		require.NoError(t, err)
		assert.Empty(t, res.Comparables)
	})

	t.Run("disabled when topK is zero", func(t *testing.T) {
		finder := &fakeComparables{}
		svc := newTestService(t, provider, finder, PredictionOptions{})

		_, err := svc.Predict(context.Background(), fullForm())
		require.NoError(t, err)
		assert.Zero(t, finder.gotK)
	})
}

func TestReferenceYear(t *testing.T) {
	svc := newTestService(t, staticArtifacts{}, nil, PredictionOptions{})
	assert.Equal(t, 2025, svc.ReferenceYear())

	svc = newTestService(t, staticArtifacts{}, nil, PredictionOptions{ReferenceYear: 2030})
	assert.Equal(t, 2030, svc.ReferenceYear())
}

func TestPredict_ConfiguredReferenceYear(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{ReferenceYear: 2026})

	res, err := svc.Predict(context.Background(), fullForm())
	require.NoError(t, err)
	assert.Equal(t, 22, res.Record.AgeOfProperty)
	assert.Equal(t, 2026, res.ReferenceYear)
}

func TestVocabulary(t *testing.T) {
	svc := newTestService(t, fixtureProvider(t, artifact.HandleUnknownError), nil, PredictionOptions{})

	cats, err := svc.Vocabulary(context.Background(), formschema.FieldLocality)
	require.NoError(t, err)
	assert.Equal(t, artifacttest.Localities, cats)

	cats, err = svc.Vocabulary(context.Background(), model.ColCity)
	require.NoError(t, err)
	assert.Contains(t, cats, "Mumbai")

	_, err = svc.Vocabulary(context.Background(), formschema.FieldSizeSqFt)
	assert.ErrorIs(t, err, ErrUnknownField)

	down := newTestService(t, staticArtifacts{err: errors.New("missing")}, nil, PredictionOptions{})
	_, err = down.Vocabulary(context.Background(), formschema.FieldLocality)
	assert.ErrorIs(t, err, ErrArtifactsUnavailable)
}
