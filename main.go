package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tiernote/tiernote/handlers"
	"github.com/tiernote/tiernote/internal/config"
	"github.com/tiernote/tiernote/internal/database"
	"github.com/tiernote/tiernote/internal/document/repository"
	"github.com/tiernote/tiernote/internal/generator"
	"github.com/tiernote/tiernote/internal/render"
	"github.com/tiernote/tiernote/internal/storage"
	"github.com/tiernote/tiernote/internal/upload"
	"github.com/tiernote/tiernote/pkg/logger"
	"github.com/tiernote/tiernote/pkg/metrics"
	"github.com/tiernote/tiernote/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v generator=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Generator.Backend)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and render cache can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Document repository: Mongo when configured (with startup retry), else in-memory.
	ctx := context.Background()
	var repo repository.Repository
	var mongoOK bool
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts, using in-memory repository: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("documents")
			repo = repository.NewMongoRepo(col)
			mongoOK = true
		}
	}
	if repo == nil {
		repo = repository.NewMemoryRepo()
		logger.Warnf("using in-memory document repository; documents will not survive restarts")
	}

	// Tier-generation strategy
	var gen generator.Strategy
	if cfg.Generator.Backend == "remote" && cfg.Generator.Endpoint != "" {
		gen = generator.NewRemote(cfg.Generator.Endpoint, cfg.Generator.APIKey, cfg.Generator.Timeout)
		logger.Infof("using remote tier generator at %s", cfg.Generator.Endpoint)
	} else {
		gen = generator.NewStub()
		logger.Infof("using deterministic stub tier generator")
	}

	uploadSvc := upload.NewService(repo, gen, upload.Options{
		GenerateRetries: cfg.Generator.Retries,
		GenerateBackoff: cfg.Generator.Backoff,
	})

	// Optional raw-note archive (MinIO)
	var archiveOK bool
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		archive, err := storage.NewNoteArchive(mcfg)
		if err != nil {
			logger.Warnf("raw-note archive disabled: %v", err)
		} else {
			uploadSvc.WithArchiver(archive)
			archiveOK = true
		}
	}

	// Render cache: shared via Redis when available, per-process otherwise
	var renderCache render.Cache
	if redisClient != nil {
		renderCache = render.NewRedisCache(redisClient, cfg.Redis.RenderTTL)
	} else {
		renderCache = render.NewMemoryCache(256)
	}
	renderer := render.NewRenderer(renderCache)

	// Readiness reports dependency availability without failing /health.
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"storage": true, // memory fallback keeps the service usable
			"mongo":   mongoOK,
			"redis":   redisClient != nil,
			"archive": archiveOK,
		}
		ready := true
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis && redisClient == nil {
			ready = false
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	handlers.NewUploadHandler(uploadSvc, cfg.Upload.MaxContentBytes).Register(r)
	handlers.NewDocumentHandler(repo, renderer).Register(r)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting tiernote service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
