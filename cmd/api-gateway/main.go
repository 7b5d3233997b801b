package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/uni-timetable-api/api/swagger"
	"github.com/noah-isme/uni-timetable-api/internal/handler"
	internalmiddleware "github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/cache"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
)

// @title University Timetable API
// @version 1.0.0
// @description Timetable generation and versioning service for university departments
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	subjectRepo := repository.NewSubjectRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	assignmentRepo := repository.NewTimetableAssignmentRepository(db)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		OperatorUsername:     cfg.Auth.OperatorUsername,
		OperatorPasswordHash: cfg.Auth.OperatorPasswordHash,
		TokenSecret:          cfg.JWT.Secret,
		TokenExpiry:          cfg.JWT.Expiration,
	})
	catalogSvc := service.NewCatalogService(subjectRepo, facultyRepo, roomRepo, batchRepo, validate, logr)
	timetableSvc := service.NewTimetableService(
		subjectRepo, facultyRepo, roomRepo, batchRepo,
		timetableRepo, assignmentRepo, db,
		cacheSvc, metricsSvc, validate, logr,
		service.TimetableServiceConfig{
			Engine:      cfg.Engine,
			Institution: cfg.Export.InstitutionName,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue("timetable.generate", timetableSvc.HandleGenerationJob, jobs.QueueConfig{
		Workers:    cfg.Jobs.WorkerConcurrency,
		BufferSize: cfg.Jobs.QueueSize,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()
	timetableSvc.AttachQueue(queue)

	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := internalmiddleware.JWT(authSvc)

	api.GET("/subjects", catalogHandler.ListSubjects)
	api.GET("/subjects/:id", catalogHandler.GetSubject)
	api.POST("/subjects", protected, catalogHandler.CreateSubject)
	api.DELETE("/subjects/:id", protected, catalogHandler.DeleteSubject)

	api.GET("/faculty", catalogHandler.ListFaculty)
	api.POST("/faculty", protected, catalogHandler.CreateFaculty)
	api.DELETE("/faculty/:id", protected, catalogHandler.DeactivateFaculty)

	api.GET("/rooms", catalogHandler.ListRooms)
	api.POST("/rooms", protected, catalogHandler.CreateRoom)
	api.DELETE("/rooms/:id", protected, catalogHandler.DeactivateRoom)

	api.GET("/batches", catalogHandler.ListBatches)
	api.GET("/batches/:id", catalogHandler.GetBatch)
	api.POST("/batches", protected, catalogHandler.CreateBatch)

	api.GET("/timetables", timetableHandler.List)
	api.GET("/timetables/:id", timetableHandler.Get)
	api.GET("/timetables/:id/export", timetableHandler.Export)
	api.POST("/timetables/generate", protected, timetableHandler.Generate)
	api.POST("/timetables/save", protected, timetableHandler.Save)
	api.POST("/timetables/bulk-generate", protected, timetableHandler.BulkGenerate)
	api.PATCH("/timetables/:id/status", protected, timetableHandler.UpdateStatus)
	api.DELETE("/timetables/:id", protected, timetableHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown error", "error", err)
	}
}
