package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"btrscout/internal/config"
	cronrunner "btrscout/internal/cron"
	"btrscout/internal/dataset"
	"btrscout/internal/db"
	"btrscout/internal/handler"
	"btrscout/internal/logger"
	"btrscout/internal/recommend"
	gormrepository "btrscout/internal/repository/gorm"
	"btrscout/internal/service"
	"btrscout/internal/strategy"
)

func main() {
	cfgPath := os.Getenv("BTR_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BTR_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := dbConn.AutoMigrate(); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	snapshots := dataset.NewStore(store, logger)
	analysisSvc := service.NewAnalysisService(store, snapshots, logger)
	recommendEngine := &recommend.Engine{
		Snapshots:  snapshots,
		Logger:     logger,
		SampleSize: cfg.Engine.SampleSize,
		SampleSeed: cfg.Engine.SampleSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Snapshot.RefreshOnStart {
		if err := snapshots.Refresh(ctx); err != nil {
			logger.Warn("initial snapshot refresh failed", zap.Error(err))
		}
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn, Snapshots: snapshots}
	healthHandler.Register(engine)
	scoreHandler := &handler.ScoreHandler{Snapshots: snapshots}
	scoreHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{}
	strategyHandler.Register(engine)
	recHandler := &handler.RecommendationHandler{
		Engine:  recommendEngine,
		MaxTopN: cfg.Engine.MaxTopN,
	}
	recHandler.Register(engine)
	analysisHandler := &handler.AnalysisHandler{Service: analysisSvc}
	analysisHandler.Register(engine)
	datasetHandler := &handler.DatasetHandler{Repo: store, Snapshots: snapshots}
	datasetHandler.Register(engine)
	streamStrategy := cfg.Stream.Strategy
	if _, err := strategy.Get(streamStrategy); err != nil {
		logger.Warn("unknown stream strategy, using balanced",
			zap.String("strategy", streamStrategy), zap.Error(err))
		streamStrategy = strategy.Balanced
	}
	streamHandler := &handler.StreamHandler{
		Snapshots: snapshots,
		Engine:    recommendEngine,
		Logger:    logger,
		Strategy:  streamStrategy,
		TopN:      cfg.Stream.TopN,
	}
	streamHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		err = cronRunner.Add("snapshot_refresh", cfg.Cron.SnapshotRefresh, func(ctx context.Context) {
			if err := snapshots.Refresh(ctx); err != nil {
				logger.Warn("cron snapshot refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register snapshot refresh failed", zap.Error(err))
		}
		err = cronRunner.Add("report_prune", cfg.Cron.ReportPrune, func(ctx context.Context) {
			if _, err := analysisSvc.PruneReports(ctx, cfg.Analysis.RetentionDays); err != nil {
				logger.Warn("cron report prune failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register report prune failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
