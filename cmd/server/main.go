package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reiadvisor/internal/artifact"
	"reiadvisor/internal/config"
	"reiadvisor/internal/formschema"
	"reiadvisor/internal/handler"
	"reiadvisor/internal/repository"
	"reiadvisor/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("REI-Advisor Valuation Engine")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	schema, err := formschema.Load(cfg.Form.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load form schema: %v", err)
	}
	if cfg.Form.SchemaPath != "" {
		log.Printf("✅ Form schema loaded from %s", cfg.Form.SchemaPath)
	}

	// The database is optional: artifacts may live on disk and the
	// comparables panel is skipped without it
	var repo *repository.PostgresRepository
	var dbErr error
	if cfg.DatabaseEnabled() {
		repo, dbErr = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if dbErr != nil {
			log.Printf("⚠️  Database unavailable, comparable listings disabled: %v", dbErr)
			repo = nil
		} else {
			defer repo.Close()
			log.Println("✅ Connected to PostgreSQL database")
		}
	}

	// An unreachable artifact database disables prediction instead of
	// stopping the process
	var source artifact.Source
	switch {
	case cfg.Artifacts.Source != config.ArtifactSourcePostgres:
		source = artifact.NewFileSource(cfg.Artifacts.Dir)
	case repo == nil:
		source = artifact.NewUnavailableSource("table model_artifacts", dbErr)
	default:
		source = artifact.NewRepositorySource(repo)
	}

	loader := artifact.NewLoader(source, artifact.Names{
		Transformer: cfg.Artifacts.TransformerFile,
		Classifier:  cfg.Artifacts.ClassifierFile,
		Regressor:   cfg.Artifacts.RegressorFile,
	})
	store := artifact.NewStore(loader)

	// Load eagerly so a missing file is reported at startup. The server keeps
	// running either way and refuses predictions until restarted.
	_, _ = store.Get(context.Background())

	var comparables service.ComparablesFinder
	if repo != nil && cfg.Prediction.ComparablesTopK > 0 {
		comparables = repo
	}

	predictionService := service.NewPredictionService(
		store,
		service.NewRecordBuilder(schema),
		comparables,
		service.PredictionOptions{
			ReferenceYear:   cfg.Prediction.ReferenceYear,
			LakhMultiplier:  cfg.Prediction.LakhMultiplier,
			ComparablesTopK: cfg.Prediction.ComparablesTopK,
			Ranking: service.RankingWeights{
				Vector: cfg.Ranking.WeightVector,
				Price:  cfg.Ranking.WeightPrice,
				Size:   cfg.Ranking.WeightSize,
			},
			Debug: cfg.Debug(),
		},
		time.Now,
	)

	log.Println("✅ Services initialized")

	build := handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	predictHandler := handler.NewPredictHandler(predictionService)
	pageHandler := handler.NewPageHandler(predictionService, build)
	healthHandler := handler.NewHealthHandler(predictionService, build)

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthHandler.Health)
	router.GET("/version", healthHandler.Version)

	// Templates and static files, see embed.go (production) or static_dev.go (development)
	setupWeb(router)

	router.GET("/", pageHandler.Index)
	router.POST("/predict", pageHandler.Submit)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/predict", predictHandler.Predict)
		apiV1.GET("/form", predictHandler.Form)
		apiV1.GET("/vocabulary/:field", predictHandler.Vocabulary)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1/predict", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shut down: %v", err)
	}

	log.Println("✅ Server stopped")
}
