package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/Kabele/invoicely/internal/api"
	v1 "github.com/Kabele/invoicely/internal/api/v1"
	"github.com/Kabele/invoicely/internal/cache"
	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/liveview"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/pubsub"
	pubsubMemory "github.com/Kabele/invoicely/internal/pubsub/memory"
	"github.com/Kabele/invoicely/internal/repository"
	"github.com/Kabele/invoicely/internal/service"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/Kabele/invoicely/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			pubsubMemory.NewPubSub,
			providePublisher,
			provideSubscriber,

			repository.NewRepositories,
			provideLiveViewManager,

			service.NewServiceParams,
			service.NewAuthService,
			service.NewInvoiceService,
			service.NewReceiptService,
			service.NewBusinessService,
			service.NewCurrencyService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func providePublisher(ps pubsub.PubSub) pubsub.Publisher {
	return ps
}

func provideSubscriber(ps pubsub.PubSub) pubsub.Subscriber {
	return ps
}

func provideLiveViewManager(
	repos *repository.Repositories,
	sub pubsub.Subscriber,
	log *logger.Logger,
) *liveview.Manager {
	return liveview.NewManager(repos.Invoice, sub, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	authService service.AuthService,
	invoiceService service.InvoiceService,
	receiptService service.ReceiptService,
	businessService service.BusinessService,
	currencyService service.CurrencyService,
	views *liveview.Manager,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(),
		Auth:     v1.NewAuthHandler(authService, log),
		Invoice:  v1.NewInvoiceHandler(invoiceService, views, log),
		Receipt:  v1.NewReceiptHandler(receiptService, log),
		Business: v1.NewBusinessHandler(businessService, log),
		Currency: v1.NewCurrencyHandler(currencyService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	views *liveview.Manager,
	ps pubsub.PubSub,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// the event subscription outlives the startup context
			if err := views.Start(context.Background()); err != nil {
				return err
			}

			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			if err := server.Shutdown(ctx); err != nil {
				return err
			}
			if err := views.Close(); err != nil {
				return err
			}
			return ps.Close()
		},
	})
}
