package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/skinbox/boxes"
	"github.com/raushankrgupta/skinbox/config"
	"github.com/raushankrgupta/skinbox/orders"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/raushankrgupta/skinbox/scrapers"
	"github.com/raushankrgupta/skinbox/service"
	"github.com/raushankrgupta/skinbox/session"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App holds every long-lived component built from Config
type App struct {
	Gateway   storage.Gateway
	Assembler *boxes.Assembler
	Boxes     *service.BoxService
	Orders    *orders.Handoff
	Sessions  *session.Manager
	Auth      session.Authenticator
	Importer  *scrapers.Importer
	// Photos is nil when no bucket is configured
	Photos *utils.S3Store

	closers []func(context.Context) error
}

// Build connects the configured backends. Close must be called on every returned App.
func Build(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{}

	gateway, err := a.openStorage(ctx, cfg, logger)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Gateway = gateway

	if cfg.S3Bucket != "" {
		photos, err := utils.NewS3Store(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("s3: %w", err)
		}
		a.Photos = photos
	}

	var model recommender.Model = unconfiguredModel{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := utils.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("gemini: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return gemini.Close() })
		model = gemini
	} else {
		logger.Warn().Msg("GEMINI_API_KEY is not set, recommendations will fail")
	}

	requester := recommender.NewRequester(model, recommender.RetryPolicy{
		MaxAttempts: cfg.RetryAttempts,
		Backoff:     cfg.RetryBackoff,
	}, logger)

	a.Assembler = boxes.NewAssembler(gateway, logger)
	a.Boxes = service.NewBoxService(gateway, requester, a.Assembler, a.photoStore(), logger)

	var notifier orders.Notifier
	if cfg.SendGridAPIKey != "" {
		sg, err := utils.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.FromEmail, cfg.ManagerEmail, logger)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("sendgrid: %w", err)
		}
		notifier = sg
	}
	a.Orders = orders.NewHandoff(orders.Config{
		ManagerPhone: cfg.ManagerPhone,
		MarkOrdered:  cfg.MarkOrdered,
	}, notifier, a.Assembler, logger)

	a.Auth = session.EmailConvention{Marker: cfg.AdminMark}
	a.Sessions = session.NewManager(a.Auth, gateway)
	a.Importer = scrapers.NewImporter(cfg.ImportBrowserFallback, a.uploader(), logger)

	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg config.Config, logger zerolog.Logger) (storage.Gateway, error) {
	switch cfg.Storage {
	case config.StorageMongo:
		client, err := utils.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)
		logger.Info().Str("db", cfg.MongoDB).Msg("using mongo storage")
		return storage.NewMongoGateway(client.Database(cfg.MongoDB)), nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis storage")
		return storage.NewKVGateway(storage.NewRedisKV(client, cfg.RedisPrefix)), nil
	default:
		logger.Info().Msg("using in-memory storage")
		return storage.NewKVGateway(storage.NewMemoryKV()), nil
	}
}

// photoStore and uploader return an untyped nil when no bucket is configured
func (a *App) photoStore() service.PhotoStore {
	if a.Photos == nil {
		return nil
	}
	return a.Photos
}

func (a *App) uploader() utils.Uploader {
	if a.Photos == nil {
		return nil
	}
	return a.Photos
}

// Presigner returns the photo store as a presigner, or nil
func (a *App) Presigner() utils.Presigner {
	if a.Photos == nil {
		return nil
	}
	return a.Photos
}

// Close releases connections in reverse order of opening
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

type unconfiguredModel struct{}

func (unconfiguredModel) Generate(context.Context, recommender.ModelRequest) (string, error) {
	return "", errors.New("no model configured")
}
