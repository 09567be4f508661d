package repository

import (
	"context"
	"os"
	"testing"

	"reiadvisor/internal/artifact"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the artifact source diagnoses a failed load by listing the table
var (
	_ artifact.ArtifactReader = (*PostgresRepository)(nil)
	_ artifact.ArtifactLister = (*PostgresRepository)(nil)
)

func TestSchema_Dimension(t *testing.T) {
	ddl := Schema(86)
	assert.Contains(t, ddl, "vector(86)")
	assert.Contains(t, ddl, "model_artifacts")
	assert.Contains(t, ddl, "CREATE EXTENSION IF NOT EXISTS vector")
}

// The remaining tests need a Postgres with the pgvector extension.
func testRepository(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	repo, err := NewPostgresRepository(dsn, 2, 1)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = repo.db.Exec(`DROP TABLE IF EXISTS model_artifacts, reference_listings`)
	require.NoError(t, err)
	_, err = repo.db.Exec(Schema(3))
	require.NoError(t, err)
	return repo
}

func TestGetArtifact(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	_, err := repo.db.Exec(`INSERT INTO model_artifacts (name, payload) VALUES ($1, $2)`, "rei_preprocessor.json", []byte(`{"steps":[]}`))
	require.NoError(t, err)

	payload, err := repo.GetArtifact(ctx, "rei_preprocessor.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"steps":[]}`, string(payload))

	_, err = repo.GetArtifact(ctx, "rei_classifier_model.json")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	names, err := repo.ListArtifacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rei_preprocessor.json"}, names)
}

func TestNearestListings(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	rows := []struct {
		locality string
		vec      []float32
	}{
		{"Locality_1", []float32{0, 0, 0}},
		{"Locality_84", []float32{1, 1, 1}},
		{"Locality_429", []float32{5, 5, 5}},
	}
	for _, row := range rows {
		_, err := repo.db.Exec(`
			INSERT INTO reference_listings (city, locality, property_type, bhk, size_sqft, price_lakhs, features)
			VALUES ('Mumbai', $1, 'Apartment', 2, 1000, 100, $2)`,
			row.locality, pgvector.NewVector(row.vec))
		require.NoError(t, err)
	}

	listings, err := repo.NearestListings(ctx, []float32{0.9, 0.9, 0.9}, 2)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Locality_84", listings[0].Locality)
	assert.Equal(t, "Locality_1", listings[1].Locality)
	assert.LessOrEqual(t, listings[0].Distance, listings[1].Distance)

	none, err := repo.NearestListings(ctx, []float32{0, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
