package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	adminapp "github.com/hostlink-ma/hostlink-services/api/internal/admin/application"
	calcapp "github.com/hostlink-ma/hostlink-services/api/internal/calculator/application"
	"github.com/hostlink-ma/hostlink-services/api/internal/config"
	"github.com/hostlink-ma/hostlink-services/api/internal/events"
	"github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/messenger"
	mongorepo "github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/mongo"
	"github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/objectstore"
	"github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/payment"
	"github.com/hostlink-ma/hostlink-services/api/internal/infrastructure/rabbitmq"
	adminhttp "github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/admin"
	"github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/common"
	ownerhttp "github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/owner"
	publichttp "github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/public"
	shophttp "github.com/hostlink-ma/hostlink-services/api/internal/interfaces/http/shop"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
	ownerapp "github.com/hostlink-ma/hostlink-services/api/internal/owner/application"
	publicapp "github.com/hostlink-ma/hostlink-services/api/internal/public/application"
	shopapp "github.com/hostlink-ma/hostlink-services/api/internal/shop/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server is the composition root: it owns the process-wide clients and mounts
// every HTTP handler set on one router.
type Server struct {
	logger    *slog.Logger
	cfg       config.Config
	client    *mongo.Client
	database  *mongo.Database
	auth      *authenticator
	notifier  *messenger.Notifier
	publisher events.Publisher
	broker    *rabbitmq.Publisher

	admin  *adminhttp.Handler
	public *publichttp.Handler
	owner  *ownerhttp.Handler
	shop   *shophttp.Handler
}

// New connects the optional infrastructure and builds the services. Object
// storage, the payment gateway and the broker are only wired when configured.
func New(cfg config.Config, client *mongo.Client, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db := client.Database(cfg.MongoDatabase)
	cols := cfg.Collections

	s := &Server{
		logger:    logger,
		cfg:       cfg,
		client:    client,
		database:  db,
		auth:      newAuthenticator(logger, cfg.JWTConfigs, cfg.JWTAudience),
		publisher: events.NopPublisher{},
	}

	if cfg.RabbitMQURL != "" {
		broker, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err != nil {
			return nil, err
		}
		s.broker = broker
		s.publisher = broker
	} else {
		logger.Info("RABBITMQ_URL not set, domain events are dropped")
	}

	s.notifier = messenger.NewNotifier(messenger.Config{
		Logger:       logger,
		HTTPClient:   &http.Client{Timeout: cfg.MessengerTimeout},
		Endpoint:     cfg.MessengerEndpoint,
		Destinations: cfg.MessengerDestinations,
		AdminBaseURL: cfg.AdminConsoleURL,
		Attempts:     cfg.MessengerAttempts,
		Delay:        cfg.MessengerRetryDelay,
		Failures:     mongorepo.NewFailedNotificationRepository(db, cols.FailedNotifications),
	})
	if !s.notifier.Enabled() {
		logger.Info("messenger gateway not configured, admin alerts are disabled")
	}

	listings := mongorepo.NewListingRepository(db, mongorepo.ListingCollections{
		Concierges: cols.Concierges,
		Cleanings:  cols.Cleanings,
		Designers:  cols.Designers,
	})
	reviews := mongorepo.NewReviewRepository(db, cols.Reviews)
	leads := mongorepo.NewLeadRepository(db, cols.Leads)

	var uploads ownerhttp.Uploader
	if cfg.Media.Enabled() {
		media, err := objectstore.NewStorage(storageConfig(cfg.Media))
		if err != nil {
			return nil, fmt.Errorf("media storage: %w", err)
		}
		uploads = ownerapp.NewUploadService(media)
	} else {
		logger.Warn("media bucket not configured, uploads are disabled")
	}

	var files *objectstore.Storage
	if cfg.Files.Enabled() {
		var err error
		files, err = objectstore.NewStorage(storageConfig(cfg.Files))
		if err != nil {
			return nil, fmt.Errorf("files storage: %w", err)
		}
	}

	leadConfig := calcapp.LeadServiceConfig{
		Repo:      leads,
		Publisher: s.publisher,
		ReportKey: cfg.ReportKey,
		ReportTTL: cfg.ReportTTL,
	}
	if files != nil {
		leadConfig.Reports = files
	}
	leadService := calcapp.NewLeadService(leadConfig)

	validator := common.NewValidator()
	s.admin = adminhttp.NewHandler(adminhttp.Config{
		Logger:     logger,
		Moderation: adminapp.NewModerationService(listings, reviews, s.publisher),
		Leads:      leadService,
		Validator:  validator,
	})
	s.public = publichttp.NewHandler(publichttp.Config{
		Logger:     logger,
		Directory:  publicapp.NewDirectoryService(listings, reviews),
		Reviews:    publicapp.NewReviewService(listings, reviews, s.notifier, s.publisher),
		Calculator: leadService,
		Validator:  validator,
	})
	s.owner = ownerhttp.NewHandler(ownerhttp.Config{
		Logger:    logger,
		Listings:  ownerapp.NewListingService(listings, s.notifier, s.publisher),
		Uploads:   uploads,
		Validator: validator,
	})

	if cfg.PaymentBaseURL != "" && files != nil {
		store := shopapp.NewStoreService(shopapp.StoreConfig{
			Products:  mongorepo.NewProductRepository(db, cols.Products),
			Purchases: mongorepo.NewPurchaseRepository(db, cols.Purchases),
			Gateway: payment.NewClient(payment.Config{
				BaseURL:       cfg.PaymentBaseURL,
				APIKey:        cfg.PaymentAPIKey,
				WebhookSecret: cfg.PaymentWebhookSecret,
				SuccessURL:    cfg.PaymentSuccessURL,
				CancelURL:     cfg.PaymentCancelURL,
			}),
			Files:           files,
			Publisher:       s.publisher,
			ConfirmAttempts: cfg.ConfirmAttempts,
			ConfirmInterval: cfg.ConfirmInterval,
			DownloadTTL:     cfg.DownloadTTL,
		})
		s.shop = shophttp.NewHandler(shophttp.Config{
			Logger:          logger,
			Store:           store,
			Validator:       validator,
			SignatureHeader: payment.SignatureHeader,
			ConfirmTimeout:  time.Duration(cfg.ConfirmAttempts)*cfg.ConfirmInterval + 5*time.Second,
		})
	} else {
		logger.Warn("payment gateway or files bucket not configured, shop is disabled")
	}

	return s, nil
}

func storageConfig(sc config.StorageConfig) objectstore.Config {
	return objectstore.Config{
		Endpoint:  sc.Endpoint,
		Region:    sc.Region,
		AccessKey: sc.AccessKey,
		SecretKey: sc.SecretKey,
		Bucket:    sc.Bucket,
		BaseURL:   sc.BaseURL,
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", logging.TraceHeader, payment.SignatureHeader},
		ExposedHeaders: []string{logging.TraceHeader},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthHandler())

	s.public.Register(router, s.auth.middleware)
	s.owner.Register(router, s.auth.middleware)
	if s.shop != nil {
		s.shop.Register(router)
	}
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.auth.middleware, s.auth.requireAdmin)
		s.admin.Register(r)
	})
	return router
}

// Run ensures indexes, serves until SIGINT/SIGTERM and then drains.
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ConnectTimeout)
	err := mongorepo.EnsureIndexes(ctx, s.database, mongorepo.IndexNames{
		Listings: mongorepo.ListingCollections{
			Concierges: s.cfg.Collections.Concierges,
			Cleanings:  s.cfg.Collections.Cleanings,
			Designers:  s.cfg.Collections.Designers,
		},
		Reviews:  s.cfg.Collections.Reviews,
		Leads:    s.cfg.Collections.Leads,
		Products: s.cfg.Collections.Products,
	})
	cancel()
	if err != nil {
		s.logger.Warn("failed to ensure indexes", "error", err)
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	err = s.waitForShutdown(httpServer, errChan)
	s.shutdown()
	return err
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		s.logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("http shutdown failed", "error", err)
		}
	}
	return nil
}

// shutdown lets pending alerts finish before closing the broker and Mongo.
func (s *Server) shutdown() {
	s.notifier.Wait()
	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			s.logger.Error("failed to close rabbitmq publisher", "error", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Error("failed to disconnect MongoDB", "error", err)
	}
}
