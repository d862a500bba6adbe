package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newcourse/newcourse/backend/course-service/handlers"
	"github.com/newcourse/newcourse/backend/course-service/internal/config"
	"github.com/newcourse/newcourse/backend/course-service/internal/course/handler"
	"github.com/newcourse/newcourse/backend/course-service/internal/course/repository"
	"github.com/newcourse/newcourse/backend/course-service/internal/course/service"
	"github.com/newcourse/newcourse/backend/course-service/internal/database"
	"github.com/newcourse/newcourse/backend/course-service/internal/storage"
	"github.com/newcourse/newcourse/backend/course-service/pkg/logger"
	"github.com/newcourse/newcourse/backend/course-service/pkg/metrics"
	"github.com/newcourse/newcourse/backend/course-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is read again from config below; this covers config errors.
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Debugf("log level %s", logger.LevelString())
	logger.Infof("config loaded: mongo=%v redis=%v upload=%s ratelimit=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Upload.Backend, cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))

	ctx := context.Background()

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer func() { _ = rdb.Close() }()
	}

	if cfg.RateLimit.Enabled {
		var lim middleware.Limiter
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			lim = middleware.NewRedisLimiter(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			lim = middleware.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
		logger.Infof("rate limiter enabled (%s)", lim.Name())
		r.Use(middleware.RateLimitMiddleware(lim))
	}

	var (
		repo        repository.Repository
		mongoClient *mongo.Client
	)
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		mongoClient = client
		defer func() { _ = client.Disconnect(context.Background()) }()
		coll := cfg.MongoDB.Collection
		if coll == "" {
			coll = repository.CollectionName
		}
		repo = repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection(coll))
		logger.Infof("using MongoDB course store %s.%s", cfg.MongoDB.Database, coll)
	} else {
		repo = repository.NewMemoryRepo()
		logger.Warnf("MONGODB_URI not set: courses are kept in memory only")
	}

	var (
		store      storage.ObjectStore
		minioStore *storage.MinIOStore
	)
	switch cfg.Upload.Backend {
	case storage.BackendMinIO:
		ms, err := storage.NewMinIOStore(&cfg.MinIO)
		if err != nil {
			logger.Fatalf("failed to initialize MinIO store: %v", err)
		}
		minioStore, store = ms, ms
		logger.Infof("uploads stored in MinIO bucket %s", cfg.MinIO.Bucket)
	default:
		ls, err := storage.NewLocalStore(cfg.Upload.Dir)
		if err != nil {
			logger.Fatalf("failed to initialize local upload store: %v", err)
		}
		store = ls
		logger.Infof("uploads stored under %s", cfg.Upload.Dir)
	}

	svc := service.New(repo, store)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when every configured dependency answers
	r.GET("/ready", func(c *gin.Context) {
		rctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{}
		ready := true
		if mongoClient != nil {
			deps["mongo"] = mongoClient.Ping(rctx, nil) == nil
			ready = ready && deps["mongo"]
		}
		if rdb != nil {
			deps["redis"] = rdb.Ping(rctx).Err() == nil
			// only the limiter depends on Redis
			if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
				ready = ready && deps["redis"]
			}
		}
		if minioStore != nil {
			deps["storage"] = minioStore.Ping(rctx) == nil
			ready = ready && deps["storage"]
		}
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	handler.RegisterCourseRoutes(r, svc, cfg.Upload.MaxBytes)
	handler.RegisterUploadRoutes(r, store)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting course service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
