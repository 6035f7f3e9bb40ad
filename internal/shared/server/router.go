package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/cropdata"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/crops"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml/mlservice"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/config"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/metrics"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/server/middleware"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/server/respond"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn.Close()
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var cropRepo crops.Repo
	if sqlDB != nil {
		cropRepo = &crops.PGRepo{DB: sqlDB}
	} else {
		cropRepo = crops.NewMemoryRepo()
	}

	var predictor ml.Predictor = ml.PlaceholderPredictor{}
	if cfg.MLServiceURL != "" {
		client, err := mlservice.NewClient(cfg.MLServiceURL, time.Duration(cfg.MLTimeoutSeconds)*time.Second)
		if err != nil {
			log.Printf("invalid ml service config, using placeholder predictor: %v", err)
		} else {
			predictor = client
		}
	}

	cropSvc := &crops.Service{
		Repo:           cropRepo,
		Predictor:      predictor,
		Catalog:        cropdata.New(),
		PredictTimeout: time.Duration(cfg.MLTimeoutSeconds) * time.Second,
	}
	cropHandler := crops.NewHandler(cropSvc)

	// Health and metrics stay reachable without identity so probes and
	// scrapers work; everything else requires a user or guest.
	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	protected := api.Group("", middleware.Auth(cfg.Env), middleware.RateLimit(recommendRateLimit(cfg)))
	cropHandler.RegisterRoutes(protected)

	return r
}

func recommendRateLimit(cfg config.Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"RECOMMEND": {Rate: cfg.RecommendRate, Burst: cfg.RecommendBurst},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/crops/recommend" {
				return "RECOMMEND"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
