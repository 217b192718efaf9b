package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/Kabele/invoicely/internal/api/v1"
	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Invoice  *v1.InvoiceHandler
	Receipt  *v1.ReceiptHandler
	Business *v1.BusinessHandler
	Currency *v1.CurrencyHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")

	public := v1Group.Group("/auth")
	{
		public.POST("/signup", handlers.Auth.SignUp)
		public.POST("/login", handlers.Auth.Login)
	}

	private := v1Group.Group("")
	private.Use(middleware.AuthenticateMiddleware(cfg, logger))
	{
		invoices := private.Group("/invoices")
		{
			invoices.POST("", handlers.Invoice.CreateInvoice)
			invoices.GET("", handlers.Invoice.ListInvoices)
			invoices.GET("/stream", handlers.Invoice.StreamInvoices)
			invoices.GET("/:id", handlers.Invoice.GetInvoice)
			invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
			invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		}

		receipts := private.Group("/receipts")
		{
			receipts.POST("", handlers.Receipt.CreateReceipt)
			receipts.GET("", handlers.Receipt.ListReceipts)
			receipts.GET("/:id", handlers.Receipt.GetReceipt)
		}

		business := private.Group("/business")
		{
			business.GET("", handlers.Business.GetBusiness)
			business.POST("", handlers.Business.SaveBusiness)
		}

		currency := private.Group("/currency")
		{
			currency.POST("/convert", handlers.Currency.Convert)
		}
	}

	return router
}
