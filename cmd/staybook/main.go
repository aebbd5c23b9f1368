package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybook/internal/app/commands"
	catalogapp "staybook/internal/app/handlers/catalog"
	invoiceapp "staybook/internal/app/handlers/invoice"
	reservationapp "staybook/internal/app/handlers/reservation"
	servicereqapp "staybook/internal/app/handlers/servicereq"
	"staybook/internal/app/middleware"
	appoutbox "staybook/internal/app/outbox"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
	domaincatalog "staybook/internal/domain/catalog"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongodb "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	infraoutbox "staybook/internal/infra/outbox"
	paymemory "staybook/internal/infra/payments/memory"
	paystripe "staybook/internal/infra/payments/stripe"
	"staybook/internal/infra/storage/memory"
	redisstore "staybook/internal/infra/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks: app.readiness,
	}, app.handlers)

	if cfg.StorageMode == "memory" {
		fixturesPath := getenv("PROPERTY_FIXTURES", "")
		if fixturesPath != "" {
			if err := app.loadPropertyFixtures(ctx, fixturesPath, logger); err != nil {
				logger.Warn("property fixtures load failed", "error", err, "path", fixturesPath)
			}
		}
	}

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	readiness    map[string]func() error
	outboxWorker *infraoutbox.Worker
	catalogSeed  *memory.CatalogRepository
	closers      []func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		app        application
		uowFactory uow.UoWFactory
		catalog    domaincatalog.Repository
		drafts     domainreservation.DraftStore
		idStore    middleware.IdempotencyStore
		box        appoutbox.Outbox
	)
	app.readiness = map[string]func() error{}

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		app.readiness["mongo"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		redisClient, err := redisstore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return application{}, fmt.Errorf("redis connect: %w", err)
		}
		app.closers = append(app.closers, redisClient.Close)
		app.readiness["redis"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx).Err()
		}

		drafts = redisstore.NewDraftStore(redisClient, cfg.DraftTTL)
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		outboxStore := infraoutbox.NewStore(client.DB)
		box = outboxStore
		catalog = mongodb.NewCatalogRepository(client.DB)
		uowFactory = mongodb.Factory{
			DB:             client.DB,
			CatalogRepo:    catalog,
			OrderRepo:      mongodb.NewOrderRepository(client.DB),
			ServiceReqRepo: mongodb.NewServiceRequestRepository(client.DB),
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka connect: %w", err)
			}
			app.closers = append(app.closers, producer.Close)
			app.outboxWorker = &infraoutbox.Worker{
				Store:       outboxStore,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
				Logger:      logger.With("component", "outbox-worker"),
			}
		}
	case "memory":
		catalogRepo := memory.NewCatalogRepository()
		app.catalogSeed = catalogRepo
		catalog = catalogRepo
		drafts = memory.NewDraftStore(cfg.DraftTTL)
		idStore = memory.NewIdempotencyStore()
		box = memory.NewOutbox()
		uowFactory = memory.Factory{
			CatalogRepo:    catalogRepo,
			OrderRepo:      memory.NewOrderRepository(),
			ServiceReqRepo: memory.NewServiceRequestRepository(),
		}
	default:
		return application{}, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}

	var payments policies.PaymentsPort
	if cfg.StripeKey != "" {
		payments = paystripe.New(cfg.StripeKey)
	} else {
		logger.Warn("stripe key not configured, using in-memory payments")
		payments = paymemory.New()
	}

	encoder := appoutbox.JSONEventEncoder{}
	fees := reservationapp.FeeSchedule{
		CleaningCents: cfg.FeeCleaningCents,
		ServiceCents:  cfg.FeeServiceCents,
		TaxCents:      cfg.FeeTaxCents,
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.StartDraftCommand{}.Key(), &reservationapp.StartDraftHandler{
		UoWFactory: uowFactory,
		Drafts:     drafts,
		Fees:       fees,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.AddLineItemCommand{}.Key(), &reservationapp.AddLineItemHandler{
		Catalog: catalog,
		Drafts:  drafts,
	})
	commands.RegisterHandler(commandBus, reservationapp.RemoveLineItemCommand{}.Key(), &reservationapp.RemoveLineItemHandler{
		Drafts: drafts,
	})
	commands.RegisterHandler(commandBus, reservationapp.AdvanceDraftCommand{}.Key(), &reservationapp.AdvanceDraftHandler{
		UoWFactory: uowFactory,
		Drafts:     drafts,
		Payments:   payments,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.AbandonDraftCommand{}.Key(), &reservationapp.AbandonDraftHandler{
		Drafts: drafts,
	})
	commands.RegisterHandler(commandBus, servicereqapp.CreateCommand{}.Key(), &servicereqapp.CreateHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, servicereqapp.UpdateCommand{}.Key(), &servicereqapp.UpdateHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, servicereqapp.DeleteCommand{}.Key(), &servicereqapp.DeleteHandler{
		UoWFactory: uowFactory,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, reservationapp.GetDraftQuery{}.Key(), &reservationapp.GetDraftHandler{
		Drafts: drafts,
	})
	queries.RegisterHandler(queryBus, catalogapp.GetPropertyQuery{}.Key(), &catalogapp.GetPropertyHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, catalogapp.ListFacilitiesQuery{}.Key(), &catalogapp.ListFacilitiesHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, servicereqapp.ListByBookingQuery{}.Key(), &servicereqapp.ListByBookingHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, invoiceapp.PriceInvoiceQuery{}.Key(), &invoiceapp.PriceInvoiceHandler{})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(middleware.SelfValidator{}),
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		Catalog: ginserver.CatalogHandler{
			Queries: queryBusWithMiddleware,
		},
		ServiceRequest: ginserver.ServiceRequestHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
		Invoice: ginserver.InvoiceHandler{
			Queries: queryBusWithMiddleware,
		},
	}
	return app, nil
}

func (a application) close(logger *slog.Logger) {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

func (a application) loadPropertyFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	if a.catalogSeed == nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	var facilities []domaincatalog.Facility
	for _, fx := range fixtures {
		property := &domaincatalog.Property{
			ID:          domaincatalog.PropertyID(fx.ID),
			Title:       fx.Title,
			Description: fx.Description,
			City:        fx.City,
			Country:     fx.Country,
			NightlyRate: money.Money{Amount: fx.NightlyRateCents, Currency: fx.Currency},
			GuestsLimit: fx.GuestsLimit,
		}
		for _, f := range fx.Facilities {
			facility := domaincatalog.Facility{
				ID:    domaincatalog.FacilityID(f.ID),
				Name:  f.Name,
				Price: money.Money{Amount: f.PriceCents, Currency: fx.Currency},
			}
			property.Facilities = append(property.Facilities, facility)
			facilities = append(facilities, facility)
		}
		if err := property.Validate(); err != nil {
			logger.Error("fixture invalid", "property_id", fx.ID, "error", err)
			continue
		}
		if err := a.catalogSeed.Save(ctx, property); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		logger.Info("property fixture imported", "property_id", fx.ID)
	}
	a.catalogSeed.SetFacilities(facilities)
	return nil
}

type propertyFixture struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	City             string            `json:"city"`
	Country          string            `json:"country"`
	NightlyRateCents int64             `json:"nightly_rate_cents"`
	Currency         string            `json:"currency"`
	GuestsLimit      int               `json:"guests_limit"`
	Facilities       []facilityFixture `json:"facilities"`
}

type facilityFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
