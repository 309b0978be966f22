package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swapwise/internal/config"
	"swapwise/internal/db"
	"swapwise/internal/geo"
	apihttp "swapwise/internal/http"
	"swapwise/internal/matching"
	"swapwise/internal/messaging"
	"swapwise/internal/repository"
	"swapwise/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	swipeRepo := repository.NewPgSwipeRepository(pool)
	ratingRepo := repository.NewPgRatingRepository(pool)
	meetingRepo := repository.NewPgMeetingRepository(pool)

	resolverOpts := []geo.Option{
		geo.WithTTL(cfg.GeocacheTTL),
		geo.WithFetchTimeout(cfg.GeocodingTimeout),
		geo.WithLogger(logger),
	}
	likeLimiter := service.NewLikeRateLimiter(cfg.LikeRateWindow, cfg.LikeRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache and rate limiter", zap.Error(err))
		} else {
			resolverOpts = append(resolverOpts, geo.WithStore(geo.NewRedisStore(redisClient, logger)))
			likeLimiter = service.NewRedisLikeRateLimiter(redisClient, cfg.LikeRateWindow, cfg.LikeRateLimit)
		}
		cancel()
	}

	geocoder := geo.NewGoogleClient(cfg.GeocodingBaseURL, cfg.GeocodingAPIKey, cfg.GeocodingTimeout, logger)
	resolver := geo.NewResolver(geocoder, resolverOpts...)
	scorer := matching.NewScorer(resolver)
	scorer.MaxDistanceKm = cfg.MatchMaxDistanceKm
	scorer.MaxRating = cfg.MatchMaxRating
	recommender := matching.NewRecommender(scorer, cfg.MatchWorkers, logger)

	var publisher service.MatchPublisher = messaging.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsClient, err := messaging.NewNATSClient(messaging.DefaultNATSConfig(cfg.NATSURL), logger)
		if err != nil {
			logger.Warn("nats connect failed, match events disabled", zap.Error(err))
		} else {
			defer natsClient.Close()
			publisher = natsClient
		}
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, 15*time.Minute)

	profileSvc := service.NewProfileService(logger, profileRepo)
	recSvc := service.NewRecommendationService(logger, profileRepo, swipeRepo, recommender)
	swipeSvc := service.NewSwipeService(logger, profileRepo, swipeRepo, publisher, likeLimiter)
	ratingSvc := service.NewRatingService(logger, profileRepo, swipeRepo, ratingRepo, cfg.MatchMaxRating)
	meetingSvc := service.NewMeetingService(logger, meetingRepo, swipeRepo)

	router := apihttp.NewRouter(logger, jwtSvc,
		apihttp.NewProfileHandler(logger, profileSvc),
		apihttp.NewRecommendationHandler(logger, recSvc),
		apihttp.NewSwipeHandler(logger, swipeSvc),
		apihttp.NewRatingHandler(logger, ratingSvc),
		apihttp.NewMeetingHandler(logger, meetingSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
