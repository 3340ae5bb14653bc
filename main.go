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

	"github.com/Kerem-Yavuz/Bitirme-Backend/handlers"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/catalog"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/config"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/database"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/privileges"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/sessions"
	"github.com/Kerem-Yavuz/Bitirme-Backend/internal/users"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/logger"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/metrics"
	"github.com/Kerem-Yavuz/Bitirme-Backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// shared runtime vars used by handlers/readiness
	var userSvc *users.Service
	var sessionsSvc *sessions.Service
	var privsSvc *privileges.Service
	var catalogSvc *catalog.Service

	// Connect to Redis early so the rate limiter and the revocation store can
	// use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the stores the core flows depend on are wired
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["sessions"] = sessionsSvc != nil
		deps["users"] = userSvc != nil
		deps["privileges"] = privsSvc != nil
		if sessionsSvc == nil || userSvc == nil || privsSvc == nil {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil
			if rdb == nil {
				ready = false
			}
		}

		code := http.StatusOK
		status := "ready"
		if !ready {
			code = http.StatusServiceUnavailable
			status = "not_ready"
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Prefer Redis for the refresh-token revocation store when available
	if rdb != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(rdb, ""), cfg.JWT.StoreTimeout)
		logger.Infof("Using Redis for the refresh-token store")
	}

	// MongoDB-backed stores: users, privileges, catalog, and the refresh-token
	// fallback when Redis is not available
	ctx := context.Background()
	if cfg.MongoDB.URI != "" {
		// retry with backoff to tolerate startup races
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
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			db := client.Database(cfg.MongoDB.Database)
			counters := db.Collection("counters")

			userSvc = users.NewService(users.NewMongoRepository(db.Collection("users"), counters), cfg.JWT.StoreTimeout)
			privsSvc = privileges.NewService(privileges.NewMongoRepository(db.Collection("user_privileges"), db.Collection("privileges")), cfg.JWT.StoreTimeout)
			catalogSvc = catalog.NewService(catalog.NewMongoRepository(db), cfg.JWT.StoreTimeout)

			if sessionsSvc == nil {
				sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("refresh_tokens")), cfg.JWT.StoreTimeout)
				logger.Infof("Using MongoDB for the refresh-token store")
			}
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the application."})
	})

	if userSvc != nil && sessionsSvc != nil && privsSvc != nil {
		auth := middleware.NewAuthenticator(cfg, userSvc, sessionsSvc, privsSvc)
		root := r.Group("/api")
		handlers.NewAuthHandler(cfg, userSvc, sessionsSvc, auth).Register(root)
		handlers.NewUsersHandler(userSvc, auth).Register(root)
		if catalogSvc != nil {
			handlers.NewCatalogHandler(catalogSvc, userSvc, auth).Register(root)
		}
	} else {
		logger.Warnf("auth handlers not registered because user/session/privilege stores are unavailable")
	}

	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Debugf("services: users=%v sessions=%v privileges=%v catalog=%v", userSvc != nil, sessionsSvc != nil, privsSvc != nil, catalogSvc != nil)
	logger.Infof("Starting bitirme-backend on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
