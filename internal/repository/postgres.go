package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"reiadvisor/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ErrArtifactNotFound is returned when no row exists for an artifact name
var ErrArtifactNotFound = errors.New("artifact not found")

// PostgresRepository handles database operations. It only reads: artifacts
// and reference listings are loaded by an operator, submissions are never
// stored.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// GetArtifact returns the stored payload of a named artifact
func (r *PostgresRepository) GetArtifact(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	query := `SELECT payload FROM model_artifacts WHERE name = $1`
	err := r.db.GetContext(ctx, &payload, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", name, err)
	}
	return payload, nil
}

// ListArtifacts returns the names stored in model_artifacts
func (r *PostgresRepository) ListArtifacts(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names, `SELECT name FROM model_artifacts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	return names, nil
}

// NearestListings returns the k reference listings whose transformed feature
// vectors are closest (L2) to features
func (r *PostgresRepository) NearestListings(ctx context.Context, features []float32, k int) ([]model.ReferenceListing, error) {
	if k <= 0 {
		return nil, nil
	}

	vec := pgvector.NewVector(features)
	query := `
		SELECT
			id, city, locality, property_type, bhk, size_sqft, price_lakhs, features,
			features <-> $1 AS distance
		FROM reference_listings
		ORDER BY features <-> $1
		LIMIT $2
	`

	var listings []model.ReferenceListing
	if err := r.db.SelectContext(ctx, &listings, query, vec, k); err != nil {
		return nil, fmt.Errorf("failed to fetch comparable listings: %w", err)
	}
	return listings, nil
}

// Schema is the DDL for the tables this repository reads. The vector
// dimension must equal the transformer's output width.
func Schema(dimension int) string {
	var b strings.Builder
	b.WriteString("CREATE EXTENSION IF NOT EXISTS vector;\n")
	b.WriteString(`CREATE TABLE IF NOT EXISTS model_artifacts (
	name       TEXT PRIMARY KEY,
	payload    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
	fmt.Fprintf(&b, `CREATE TABLE IF NOT EXISTS reference_listings (
	id            BIGSERIAL PRIMARY KEY,
	city          TEXT NOT NULL,
	locality      TEXT NOT NULL,
	property_type TEXT NOT NULL,
	bhk           INTEGER NOT NULL,
	size_sqft     INTEGER NOT NULL,
	price_lakhs   DOUBLE PRECISION NOT NULL,
	features      vector(%d) NOT NULL
);
`, dimension)
	return b.String()
}
