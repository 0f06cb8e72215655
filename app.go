package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/rental-backoffice/config"
	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/Eursukkul/rental-backoffice/internal/storage"
	"github.com/Eursukkul/rental-backoffice/pkg/cache"
	"github.com/Eursukkul/rental-backoffice/pkg/database"
	"github.com/Eursukkul/rental-backoffice/pkg/rabbitmq"
	"gorm.io/gorm"
)

// app holds the wired services shared by every command.
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	store     storage.ArtifactStore
	publisher *rabbitmq.Publisher
	cache     *cache.RedisCache

	payments      service.PaymentService
	contracts     service.ContractService
	documents     service.DocumentService
	settings      service.SettingsService
	signatures    service.SignatureService
	notifications service.NotificationService
}

// newApp opens the database and optional infrastructure. RabbitMQ and Redis
// are skipped with a log line when not configured or unreachable.
func newApp(ctx context.Context, withMessaging bool) (*app, error) {
	cfg := config.Load()

	driver, dsn := cfg.DatabaseTarget()
	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] database: %s", driver)

	store, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: db, store: store}

	var publisher service.Publisher
	if withMessaging && cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("[App] RabbitMQ unavailable, events disabled: %v", err)
		} else {
			a.publisher = p
			publisher = p
		}
	}

	var settingsCache cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(ctx, cfg.RedisURL, "rental:settings:")
		if err != nil {
			log.Printf("[App] Redis unavailable, settings cache disabled: %v", err)
		} else {
			a.cache = c
			settingsCache = c
		}
	}

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	resolver := contract.NewResolver(cfg.Property)
	a.settings = service.NewSettingsService(settingRepo, settingsCache)
	a.payments = service.NewPaymentService(bookingRepo, paymentRepo, publisher)
	a.contracts = service.NewContractService(bookingRepo, paymentRepo, a.settings, contract.NewRenderer(resolver), store, cfg.RulesMarker, publisher)
	a.documents = service.NewDocumentService(bookingRepo, paymentRepo, store, cfg.Property)
	a.signatures = service.NewSignatureService(bookingRepo, store)
	a.notifications = service.NewNotificationService(bookingRepo, paymentRepo, a.settings, resolver, publisher)
	return a, nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := database.Migrate(a.db); err != nil {
		return err
	}
	if err := database.SeedSettings(ctx, a.db, service.DefaultSettings()); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (a *app) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.cache != nil {
		a.cache.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
