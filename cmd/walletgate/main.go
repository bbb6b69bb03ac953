package main

import (
	"log"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/propstack/walletgate/adapters/events"
	"github.com/propstack/walletgate/adapters/store"
	"github.com/propstack/walletgate/adapters/tokenizer"
	"github.com/propstack/walletgate/config"
	"github.com/propstack/walletgate/ports"
	"github.com/propstack/walletgate/service"
	"github.com/propstack/walletgate/transport/http"
)

func main() {
	// .env is optional; in container deployments env vars are injected
	// directly.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load .env file: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	tok, err := tokenizer.NewJWTTokenizer([]byte(cfg.SecretKey), cfg.Algorithm)
	if err != nil {
		log.Fatalf("Failed to create tokenizer: %v", err)
	}

	logger := watermill.NewStdLogger(false, false)

	var challengeStore ports.ChallengeStore
	var publisher message.Publisher

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)

		challengeStore = store.NewRedisStore(redisClient, cfg.ChallengeTTL)

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
	} else {
		challengeStore = store.NewMemoryStore(cfg.ChallengeTTL)
		publisher = gochannel.NewGoChannel(gochannel.Config{}, logger)
	}

	eventPub := events.NewWatermillPublisher(publisher)

	authService := service.NewAuthService(
		challengeStore,
		tok,
		eventPub,
		service.MessageConfig{
			Domain:    cfg.Domain,
			Statement: cfg.Statement,
			URI:       cfg.URI,
			ChainID:   cfg.ChainID,
		},
		cfg.ChallengeTTL,
		cfg.SessionTTL,
	)

	router := http.SetupRouter(authService)

	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
