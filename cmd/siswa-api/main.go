package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/siswa-api/api/swagger"
	"github.com/noah-isme/siswa-api/internal/handler"
	"github.com/noah-isme/siswa-api/internal/middleware"
	"github.com/noah-isme/siswa-api/internal/repository"
	"github.com/noah-isme/siswa-api/internal/service"
	"github.com/noah-isme/siswa-api/pkg/cache"
	"github.com/noah-isme/siswa-api/pkg/config"
	"github.com/noah-isme/siswa-api/pkg/database"
	"github.com/noah-isme/siswa-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/siswa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/siswa-api/pkg/middleware/requestid"
	"github.com/noah-isme/siswa-api/pkg/storage"
)

// @title Siswa API
// @version 1.0.0
// @description Student profile record-keeper for the administration office
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, roster cache disabled", "error", err)
			redisClient = nil
		}
	}

	photos, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init uploads storage", "error", err)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)

	var listCache *repository.CacheRepository
	if redisClient != nil {
		listCache = repository.NewCacheRepository(redisClient, logr)
	}

	metricsSvc := service.NewMetricsService()
	studentSvc := newStudentService(studentRepo, photos, listCache, cfg, metricsSvc, validate, logr)

	routes := handler.Routes{
		Students: handler.NewStudentHandler(studentSvc),
		Metrics:  handler.NewMetricsHandler(metricsSvc),
	}

	if cfg.Exports.Enabled {
		exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init exports storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc := service.NewExportService(studentRepo, exportStore, signer,
			service.ExportConfig{APIPrefix: cfg.APIPrefix}, validate, logr)
		routes.Exports = handler.NewExportHandler(exportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	routes.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newStudentService(repo *repository.StudentRepository, photos *storage.LocalStorage, listCache *repository.CacheRepository, cfg *config.Config, metricsSvc *service.MetricsService, validate *validator.Validate, logr *zap.Logger) *service.StudentService {
	// A typed-nil *CacheRepository must not reach the service's interface
	// field, otherwise the nil check there passes and calls panic.
	if listCache == nil {
		return service.NewStudentService(repo, photos, nil, 0, metricsSvc, validate, logr)
	}
	return service.NewStudentService(repo, photos, listCache, cfg.Cache.ListTTL, metricsSvc, validate, logr)
}
