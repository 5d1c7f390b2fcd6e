package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"dream-match/internal/config"
	"dream-match/internal/db"
	"dream-match/internal/events"
	apihttp "dream-match/internal/http"
	"dream-match/internal/repository"
	"dream-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Sin DATABASE_URL el servicio corre con repositorios null-object: el
	// camino sin persistencia es una rama de primera clase.
	var (
		dnaRepo         repository.DNARepository         = repository.NewNullDNARepository()
		interactionRepo repository.InteractionRepository = repository.NewNullInteractionRepository()
		patternRepo     repository.PatternRepository     = repository.NewNullPatternRepository()
		matchRepo       repository.MatchRepository       = repository.NewNullMatchRepository()
		trustRepo       repository.TrustSignalRepository = repository.NewNullTrustSignalRepository()
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()

		dnaRepo = repository.NewPgDNARepository(pool)
		interactionRepo = repository.NewPgInteractionRepository(pool)
		patternRepo = repository.NewPgPatternRepository(pool)
		matchRepo = repository.NewPgMatchRepository(pool)
		trustRepo = repository.NewPgTrustSignalRepository(pool)
	} else {
		logger.Warn("database not configured, using null repositories")
	}

	cooldownWindow := time.Duration(cfg.BatchCooldownHours) * time.Hour
	cooldown := service.NewMemoryBatchCooldown(cooldownWindow)
	publisher := events.NewDisabledPublisher("event bus not configured")
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cooldown", zap.Error(err))
		} else {
			cooldown = service.NewRedisBatchCooldown(redisClient, cooldownWindow)
			publisher = events.NewRedisPublisher(redisClient, cfg.MatchEventChannel, logger)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured, match routes are open")
	}

	matchSvc := service.NewMatchService(
		logger,
		dnaRepo,
		interactionRepo,
		patternRepo,
		matchRepo,
		trustRepo,
		cooldown,
		publisher,
	)

	matchHandler := apihttp.NewMatchHandler(logger, matchSvc)
	trustHandler := apihttp.NewTrustHandler(logger, matchSvc)
	router := apihttp.NewRouter(logger, matchHandler, trustHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
