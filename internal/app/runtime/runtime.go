package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loanservicing/internal/app/handlers"
	"loanservicing/internal/app/router"
	"loanservicing/internal/pkg/cleanup"
	"loanservicing/internal/pkg/config"
	mongodb "loanservicing/internal/pkg/db/mongo"
	redisdb "loanservicing/internal/pkg/db/redis"
	"loanservicing/internal/pkg/downstreams"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/notification"
	"loanservicing/internal/pkg/pubsub"
	"loanservicing/internal/pkg/store/impl/collection_rules"
	"loanservicing/internal/pkg/store/impl/customers"
	"loanservicing/internal/pkg/store/impl/dispatches"
	"loanservicing/internal/pkg/store/impl/interactions"
	"loanservicing/internal/pkg/store/impl/loan_requests"
	"loanservicing/internal/pkg/store/impl/loans"
	"loanservicing/internal/pkg/store/impl/proposals"
	"loanservicing/internal/pkg/store/repository"
	"loanservicing/internal/service/collection"
	"loanservicing/internal/service/interfaces"
	"loanservicing/internal/service/ledger"
	"loanservicing/internal/service/origination"
	"loanservicing/internal/service/renegotiation"
	"loanservicing/internal/service/score"

	gcppubsub "cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var (
	connectMongoDB = mongodb.ConnectToMongoDB
	connectRedisDB = func(ctx context.Context, cfg config.RedisConfig) (*redisdb.RedisClient, error) {
		return redisdb.ConnectToRedis(ctx, cfg, nil)
	}
)

// App encapsulates application resources and lifecycle.
type App struct {
	Cfg         *config.AppConfig
	MongoClient *mongodb.MongoClient
	RedisClient *redisdb.RedisClient
	Publisher   interfaces.PubSubPublisherInterface
	HTTPServer  *http.Server
	Scheduler   *cron.Cron

	collectionService    *collection.CollectionService
	renegotiationService *renegotiation.RenegotiationService
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedLoadingConfiguration, err)
		return nil, err
	}
	logger.Init(cfg.Logging.LogLevel)

	mClient, err := connectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err)
		return nil, err
	}

	rClient, err := connectRedisDB(ctx, cfg.Redis)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to Redis", err)
		return nil, err
	}

	app := &App{
		Cfg:         cfg,
		MongoClient: mClient,
		RedisClient: rClient,
	}

	if cfg.PubSub.Enabled {
		publisher, err := pubsub.NewPubSubClient(ctx, cfg.PubSub.ProjectID, cfg.PubSub.NotificationTopic, gcppubsub.NewClient)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorPubSubClientCreation, err)
			return nil, err
		}
		app.Publisher = publisher
	}

	return app, nil
}

// Run wires repositories, services, the scheduler, and the HTTP server,
// then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	requestsRepo := loan_requests.NewLoanRequestRepository(a.MongoClient)
	loansRepo := loans.NewLoanRepository(a.MongoClient)
	customersRepo := customers.NewCustomerRepository(a.MongoClient)
	rulesRepo := collection_rules.NewCollectionRuleRepository(a.MongoClient)
	proposalsRepo := proposals.NewProposalRepository(a.MongoClient)
	dispatchesRepo := dispatches.NewDispatchRepository(a.MongoClient)
	interactionsRepo := interactions.NewInteractionRepository(a.MongoClient)

	redisAdapter := repository.NewRedisStoreAdapter(a.RedisClient.Client)

	verifier := downstreams.NewVerificationClient(a.Cfg.Downstream)
	classifier := downstreams.NewClassifierClient(a.Cfg.Downstream)
	gateway := downstreams.NewWhatsAppGatewayClient(a.Cfg.Gateway)
	sender := notification.NewRouter(gateway, a.Publisher)

	originationService := origination.NewOriginationService(requestsRepo, customersRepo, loansRepo, verifier, a.Cfg.Policy)
	ledgerService := ledger.NewLedgerService(loansRepo)
	a.renegotiationService = renegotiation.NewRenegotiationService(proposalsRepo, loansRepo, a.Cfg.Policy)
	a.collectionService = collection.NewCollectionService(loansRepo, rulesRepo, customersRepo, dispatchesRepo, redisAdapter, sender)
	scoreService := score.NewScoreService(customersRepo, loansRepo, a.Cfg.Policy)

	engine := router.SetupRouter(
		handlers.NewRequestsHandler(originationService, requestsRepo),
		handlers.NewLoansHandler(ledgerService),
		handlers.NewRenegotiationsHandler(a.renegotiationService, ledgerService, proposalsRepo),
		handlers.NewCollectionHandler(a.collectionService),
		handlers.NewCustomersHandler(scoreService, customersRepo),
		handlers.NewWebhookHandler(classifier, customersRepo, interactionsRepo),
	)

	if err := a.startScheduler(); err != nil {
		return err
	}

	a.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, log_messages.ServerStartFailure, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Shutdown(ctx)
	logger.CtxInfo(ctx, log_messages.ServerExiting)
	return nil
}

// startScheduler runs the daily collection pass and the proposal expiry
// sweep on the configured cron schedule.
func (a *App) startScheduler() error {
	a.Scheduler = cron.New()

	_, err := a.Scheduler.AddFunc(a.Cfg.Policy.CollectionCronSchedule, func() {
		jobCtx := logger.WithTraceID(context.Background(), uuid.New().String())

		if expired, err := a.renegotiationService.ExpireStale(jobCtx); err != nil {
			logger.CtxError(jobCtx, "Proposal expiry sweep failed", err)
		} else if expired > 0 {
			logger.CtxInfo(jobCtx, "Expired stale renegotiation proposals", slog.Int64("count", expired))
		}

		if _, err := a.collectionService.RunPass(jobCtx); err != nil {
			logger.CtxError(jobCtx, "Collection pass failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid collection cron schedule %q: %w", a.Cfg.Policy.CollectionCronSchedule, err)
	}

	a.Scheduler.Start()
	return nil
}

// Shutdown gracefully closes all resources with bounded timeouts.
func (a *App) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
			logger.CtxError(ctx, "HTTP server shutdown failed", err)
		}
	}

	if a.Publisher != nil {
		a.Publisher.Close()
	}

	cleanup.CleanupResources(shutdownCtx, a.MongoClient, a.RedisClient, a.Scheduler)
}
