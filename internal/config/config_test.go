package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ARTIFACT_SOURCE", "ARTIFACT_DIR", "DATABASE_URL", "PG_DSN", "PG_HOST",
		"REFERENCE_YEAR", "LAKH_MULTIPLIER", "COMPARABLES_TOP_K", "LOG_LEVEL",
		"RANKING_WEIGHT_VECTOR", "RANKING_WEIGHT_PRICE", "RANKING_WEIGHT_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ArtifactSourceFile, cfg.Artifacts.Source)
	assert.Equal(t, "rei_preprocessor.json", cfg.Artifacts.TransformerFile)
	assert.Equal(t, "rei_classifier_model.json", cfg.Artifacts.ClassifierFile)
	assert.Equal(t, "rei_regressor_model.json", cfg.Artifacts.RegressorFile)
	assert.Equal(t, 0, cfg.Prediction.ReferenceYear)
	assert.Equal(t, 100000.0, cfg.Prediction.LakhMultiplier)
	assert.Equal(t, 5, cfg.Prediction.ComparablesTopK)
	assert.Equal(t, RankingConfig{WeightVector: 0.6, WeightPrice: 0.2, WeightSize: 0.2}, cfg.Ranking)
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.Debug())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown artifact source", env: map[string]string{"ARTIFACT_SOURCE": "s3"}},
		{name: "postgres source without database", env: map[string]string{"ARTIFACT_SOURCE": "postgres", "DATABASE_URL": "", "PG_DSN": "", "PG_HOST": ""}},
		{name: "zero lakh multiplier", env: map[string]string{"ARTIFACT_SOURCE": "", "LAKH_MULTIPLIER": "0"}},
		{name: "negative ranking weight", env: map[string]string{"ARTIFACT_SOURCE": "", "LAKH_MULTIPLIER": "", "RANKING_WEIGHT_PRICE": "-0.5"}},
		{name: "negative comparables", env: map[string]string{"ARTIFACT_SOURCE": "", "LAKH_MULTIPLIER": "", "COMPARABLES_TOP_K": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("REFERENCE_YEAR", "twenty")
	assert.Equal(t, 2025, getEnvAsInt("REFERENCE_YEAR", 2025))
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.GetPostgreSQLDSN())
}
