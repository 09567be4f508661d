package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Artifact sources
const (
	ArtifactSourceFile     = "file"
	ArtifactSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Artifacts  ArtifactConfig
	PostgreSQL PostgreSQLConfig
	Prediction PredictionConfig
	Ranking    RankingConfig
	Form       FormConfig
	Logging    LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// ArtifactConfig describes where the three pre-trained artifacts live
type ArtifactConfig struct {
	Source          string // "file" or "postgres"
	Dir             string
	TransformerFile string
	ClassifierFile  string
	RegressorFile   string
}

// PostgreSQLConfig holds PostgreSQL database configuration.
// The database is optional: it backs the postgres artifact source and the
// comparable-listings panel.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// PredictionConfig holds prediction-time settings
type PredictionConfig struct {
	ReferenceYear   int     // 0 means the current calendar year at request time
	LakhMultiplier  float64 // rupees per lakh, used for the per-area rate
	ComparablesTopK int     // 0 disables the comparables lookup
}

// RankingConfig weights the comparable-listings score
type RankingConfig struct {
	WeightVector float64
	WeightPrice  float64
	WeightSize   float64
}

// FormConfig holds form schema settings
type FormConfig struct {
	SchemaPath string // empty means the embedded schema
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Artifacts: ArtifactConfig{
			Source:          strings.ToLower(getEnv("ARTIFACT_SOURCE", ArtifactSourceFile)),
			Dir:             getEnv("ARTIFACT_DIR", "."),
			TransformerFile: getEnv("ARTIFACT_TRANSFORMER", "rei_preprocessor.json"),
			ClassifierFile:  getEnv("ARTIFACT_CLASSIFIER", "rei_classifier_model.json"),
			RegressorFile:   getEnv("ARTIFACT_REGRESSOR", "rei_regressor_model.json"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", ""),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "rei_advisor"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Prediction: PredictionConfig{
			ReferenceYear:   getEnvAsInt("REFERENCE_YEAR", 0),
			LakhMultiplier:  getEnvAsFloat("LAKH_MULTIPLIER", 100000),
			ComparablesTopK: getEnvAsInt("COMPARABLES_TOP_K", 5),
		},
		Ranking: RankingConfig{
			WeightVector: getEnvAsFloat("RANKING_WEIGHT_VECTOR", 0.6),
			WeightPrice:  getEnvAsFloat("RANKING_WEIGHT_PRICE", 0.2),
			WeightSize:   getEnvAsFloat("RANKING_WEIGHT_SIZE", 0.2),
		},
		Form: FormConfig{
			SchemaPath: getEnv("FORM_SCHEMA_PATH", ""),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Artifacts.Source {
	case ArtifactSourceFile, ArtifactSourcePostgres:
	default:
		return fmt.Errorf("invalid ARTIFACT_SOURCE %q (want %q or %q)", c.Artifacts.Source, ArtifactSourceFile, ArtifactSourcePostgres)
	}
	if c.Artifacts.Source == ArtifactSourcePostgres && !c.DatabaseEnabled() {
		return fmt.Errorf("ARTIFACT_SOURCE=postgres requires DATABASE_URL or PG_HOST")
	}
	if c.Prediction.LakhMultiplier <= 0 {
		return fmt.Errorf("LAKH_MULTIPLIER must be positive, got %v", c.Prediction.LakhMultiplier)
	}
	if c.Ranking.WeightVector < 0 || c.Ranking.WeightPrice < 0 || c.Ranking.WeightSize < 0 {
		return fmt.Errorf("RANKING_WEIGHT_* must not be negative")
	}
	if c.Prediction.ComparablesTopK < 0 {
		return fmt.Errorf("COMPARABLES_TOP_K must not be negative, got %d", c.Prediction.ComparablesTopK)
	}
	return nil
}

// DatabaseEnabled reports whether a PostgreSQL connection is configured
func (c *Config) DatabaseEnabled() bool {
	return c.PostgreSQL.DSN != "" || c.PostgreSQL.Host != ""
}

// Debug reports whether debug logging is on
func (c *Config) Debug() bool {
	return c.Logging.Level == "debug"
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
