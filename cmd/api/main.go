package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ahwlsqja/typed-data-verifier/docs"
	"github.com/ahwlsqja/typed-data-verifier/internal/audit"
	"github.com/ahwlsqja/typed-data-verifier/internal/common/handler"
	"github.com/ahwlsqja/typed-data-verifier/internal/common/middleware"
	"github.com/ahwlsqja/typed-data-verifier/internal/config"
	"github.com/ahwlsqja/typed-data-verifier/internal/metrics"
	"github.com/ahwlsqja/typed-data-verifier/internal/typeddata"
	"github.com/ahwlsqja/typed-data-verifier/pkg/chain"
	pkgdb "github.com/ahwlsqja/typed-data-verifier/pkg/db"
	"github.com/ahwlsqja/typed-data-verifier/pkg/eip712"
	"github.com/ahwlsqja/typed-data-verifier/pkg/nonce"
	pkgredis "github.com/ahwlsqja/typed-data-verifier/pkg/redis"
)

// @title Typed Data Verifier API
// @version 1.0
// @description EIP-712 typed data validation, hashing, signer recovery and verification
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// 1) Logger
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 2) Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()),
		zap.Int64("chain_id", cfg.EIP712.ChainID),
		zap.Bool("enforce_chain_id", cfg.EIP712.EnforceChainID),
	)

	// 3) Chain registry
	chains, err := chain.LoadRegistry(cfg.EIP712.ChainRegistryFile)
	if err != nil {
		logger.Fatal("failed to load chain registry", zap.Error(err))
	}

	// 4) Optional backends (fail-fast when enabled)
	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := initRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 5) Router
	router := setupRouter(cfg, logger, chains, db, rdb)

	// 6) HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
	)

	// 7) Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initLogger() (*zap.Logger, error) {
	if os.Getenv("ENVIRONMENT") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// initDB returns nil when the database is disabled.
func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	db, err := pkgdb.New(cfg.DB())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pkgdb.Ping(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initRedis returns nil when redis is disabled.
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rdb := pkgredis.New(cfg.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pkgredis.Ping(ctx, rdb); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func setupRouter(cfg *config.Config, logger *zap.Logger, chains *chain.Registry, db *sql.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	// uint256 message values must not pass through float64
	binding.EnableDecoderUseNumber = true

	m := metrics.New(nil)

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(m.Middleware())

	// Swagger
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health & metrics
	healthHandler := handler.NewHealthHandler(db, rdb)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============================================================================
	// Dependencies Setup
	// ============================================================================

	// Replay protection: shared in redis, process-local otherwise
	var replay nonce.Store
	if rdb != nil {
		replay = nonce.NewRedisStoreWithTTL(rdb, cfg.EIP712.ReplayTTL, logger)
	} else {
		logger.Warn("redis disabled, replay protection is process-local")
		replay = nonce.NewMemoryStore(cfg.EIP712.ReplayTTL)
	}

	// Audit trail
	var repo audit.Repository
	if db != nil {
		repo = audit.NewMySQLRepository(pkgdb.NewTxRunner(db), logger)
	}

	// ============================================================================
	// Service & Handler Setup
	// ============================================================================

	typedDataService := typeddata.NewService(
		eip712.NewVerifier(nil),
		chains,
		replay,
		repo,
		m,
		typeddata.Options{
			ChainID:        cfg.EIP712.ChainID,
			EnforceChainID: cfg.EIP712.EnforceChainID,
			AuditLimit:     cfg.EIP712.AuditLimit,
		},
		logger,
	)
	typedDataHandler := typeddata.NewHandler(typedDataService)

	// ============================================================================
	// Route Registration
	// ============================================================================

	v1 := router.Group("/api/v1")
	{
		typedDataHandler.RegisterRoutes(v1)
	}

	return router
}
