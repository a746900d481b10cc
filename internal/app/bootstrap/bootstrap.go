package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	catalogservice "github.com/00kaito/DevBytes/contexts/catalog/catalog-service"
	catalogpostgres "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/adapters/postgres"
	catalogerrors "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/domain/errors"
	catalogports "github.com/00kaito/DevBytes/contexts/catalog/catalog-service/ports"
	checkoutservice "github.com/00kaito/DevBytes/contexts/commerce/checkout-service"
	checkoutpostgres "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/postgres"
	stripeadapter "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/adapters/stripe"
	checkoutworkers "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/application/workers"
	checkouterrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	checkoutports "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
	accountservice "github.com/00kaito/DevBytes/contexts/identity-access/account-service"
	accountpostgres "github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/postgres"
	"github.com/00kaito/DevBytes/contexts/identity-access/account-service/adapters/security"
	accountworkers "github.com/00kaito/DevBytes/contexts/identity-access/account-service/application/workers"
	accountports "github.com/00kaito/DevBytes/contexts/identity-access/account-service/ports"
	entitlementservice "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service"
	entitlementpostgres "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/adapters/postgres"
	s3adapter "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/adapters/s3"
	entitlementports "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/ports"
	"github.com/00kaito/DevBytes/internal/platform/config"
	"github.com/00kaito/DevBytes/internal/platform/db"
	"github.com/00kaito/DevBytes/internal/platform/httpserver"
	"github.com/00kaito/DevBytes/internal/platform/mail"
	"github.com/00kaito/DevBytes/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const purchaseCompletedTopic = "purchase.completed"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres          *db.Postgres
	bus               *messaging.Bus
	sweeper           accountworkers.SessionSweeper
	relay             checkoutworkers.OutboxRelay
	reconciler        checkoutworkers.SettlementReconciler
	receipts          checkoutworkers.ReceiptConsumer
	receiptsEnabled   bool
	reconcilerEnabled bool
	pollInterval      time.Duration
	logger            *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, errors.New("S3_BUCKET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	mailer := mail.NewSender(
		cfg.EmailLabsAppKey,
		cfg.EmailLabsSecretKey,
		cfg.EmailLabsFromEmail,
		cfg.EmailLabsSMTPAccount,
		cfg.BaseURL,
		logger,
	)

	accountRepo := accountpostgres.NewRepository(pg.DB, logger)
	accounts := accountservice.NewModule(accountservice.Dependencies{
		Users:       accountRepo,
		Sessions:    accountRepo,
		Hasher:      security.BcryptHasher{},
		Tokens:      security.HexTokenSource{},
		Mailer:      mailer,
		Clock:       accountpostgres.SystemClock{},
		IDGenerator: accountpostgres.UUIDGenerator{},
		SessionTTL:  cfg.SessionTTL,
		Logger:      logger,
	})

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalog := catalogservice.NewModule(catalogservice.Dependencies{
		Categories:  catalogRepo,
		Podcasts:    catalogRepo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	checkoutRepo := checkoutpostgres.NewRepository(pg.DB, logger)
	checkout := checkoutservice.NewModule(checkoutservice.Dependencies{
		Purchases:        checkoutRepo,
		Outbox:           checkoutRepo,
		Catalog:          catalogReader{categories: catalogRepo, podcasts: catalogRepo},
		Users:            userReader{users: accountRepo},
		Gateway:          stripeadapter.NewGateway(cfg.StripeSecretKey, logger),
		Mailer:           mailer,
		Clock:            checkoutpostgres.SystemClock{},
		IDGenerator:      checkoutpostgres.UUIDGenerator{},
		Currency:         cfg.Currency,
		PendingOlderThan: cfg.ReconcilerPendingOlderThan,
		Logger:           logger,
	})

	objects, err := s3adapter.NewStore(context.Background(), s3adapter.Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3Endpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		UsePathStyle: cfg.S3Endpoint != "",
	}, logger)
	if err != nil {
		return nil, err
	}
	entitlement := entitlementservice.NewModule(entitlementservice.Dependencies{
		Objects: objects,
		Auditor: entitlementpostgres.NewAuditor(pg.DB, logger),
		Podcasts: entitlementports.PodcastResolverFunc(func(ctx context.Context, path string) (string, error) {
			podcast, err := catalogRepo.GetPodcastByAudioPath(ctx, path)
			if err != nil {
				return "", err
			}
			return podcast.PodcastID, nil
		}),
		Purchases:   checkoutRepo,
		Clock:       entitlementpostgres.SystemClock{},
		IDGenerator: entitlementpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(accounts, catalog, checkout, entitlement, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	bus := messaging.NewBus(logger)

	mailer := mail.NewSender(
		cfg.EmailLabsAppKey,
		cfg.EmailLabsSecretKey,
		cfg.EmailLabsFromEmail,
		cfg.EmailLabsSMTPAccount,
		cfg.BaseURL,
		logger,
	)

	accountRepo := accountpostgres.NewRepository(pg.DB, logger)
	accounts := accountservice.NewModule(accountservice.Dependencies{
		Users:       accountRepo,
		Sessions:    accountRepo,
		Hasher:      security.BcryptHasher{},
		Tokens:      security.HexTokenSource{},
		Mailer:      mailer,
		Clock:       accountpostgres.SystemClock{},
		IDGenerator: accountpostgres.UUIDGenerator{},
		SessionTTL:  cfg.SessionTTL,
		Logger:      logger,
	})

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	checkoutRepo := checkoutpostgres.NewRepository(pg.DB, logger)
	checkout := checkoutservice.NewModule(checkoutservice.Dependencies{
		Purchases:        checkoutRepo,
		Outbox:           checkoutRepo,
		Catalog:          catalogReader{categories: catalogRepo, podcasts: catalogRepo},
		Users:            userReader{users: accountRepo},
		Gateway:          stripeadapter.NewGateway(cfg.StripeSecretKey, logger),
		Publisher:        bus,
		Mailer:           mailer,
		Clock:            checkoutpostgres.SystemClock{},
		IDGenerator:      checkoutpostgres.UUIDGenerator{},
		Currency:         cfg.Currency,
		PendingOlderThan: cfg.ReconcilerPendingOlderThan,
		Logger:           logger,
	})

	return &WorkerApp{
		postgres:          pg,
		bus:               bus,
		sweeper:           accounts.Sweeper,
		relay:             checkout.Relay,
		reconciler:        checkout.Reconciler,
		receipts:          checkout.Receipts,
		receiptsEnabled:   cfg.EnableReceiptEmails,
		reconcilerEnabled: cfg.EnableSettlementReconciler,
		pollInterval:      cfg.WorkerPollInterval,
		logger:            logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.receiptsEnabled {
		if err := w.bus.Subscribe(ctx, purchaseCompletedTopic, "checkout-receipts-cg", w.receipts.Handle); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		if w.reconcilerEnabled {
			if err := w.reconciler.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// catalogReader exposes catalog pricing to checkout under checkout's own
// error vocabulary.
type catalogReader struct {
	categories catalogports.CategoryRepository
	podcasts   catalogports.PodcastRepository
}

func (r catalogReader) GetPodcast(ctx context.Context, podcastID string) (checkoutports.PodcastInfo, error) {
	podcast, err := r.podcasts.GetPodcast(ctx, podcastID)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrPodcastNotFound) {
			return checkoutports.PodcastInfo{}, checkouterrors.ErrPodcastNotFound
		}
		return checkoutports.PodcastInfo{}, err
	}
	if !podcast.Active {
		return checkoutports.PodcastInfo{}, checkouterrors.ErrPodcastNotFound
	}

	categoryName := ""
	if category, err := r.categories.GetCategory(ctx, podcast.CategoryID); err == nil {
		categoryName = category.Name
	}
	return checkoutports.PodcastInfo{
		PodcastID:    podcast.PodcastID,
		Title:        podcast.Title,
		Slug:         podcast.Slug,
		PriceCents:   podcast.PriceCents,
		CategoryName: categoryName,
	}, nil
}

type userReader struct {
	users accountports.UserRepository
}

func (r userReader) GetUser(ctx context.Context, userID string) (checkoutports.UserInfo, error) {
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return checkoutports.UserInfo{}, err
	}
	return checkoutports.UserInfo{
		UserID:    user.UserID,
		Email:     user.Email,
		FirstName: user.FirstName,
	}, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
