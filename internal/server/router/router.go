package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router mounts.
type Handlers struct {
	Registry   *handlers.RegistryHandler
	Billing    *handlers.BillingHandler
	Reminders  *handlers.ReminderHandler
	Statistics *handlers.StatisticsHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/apiaries", h.Registry.ListApiaries)
	api.POST("/apiaries", h.Registry.CreateApiary)
	api.GET("/apiaries/:id", h.Registry.GetApiary)
	api.PUT("/apiaries/:id", h.Registry.UpdateApiary)
	api.DELETE("/apiaries/:id", h.Registry.DeleteApiary)

	api.GET("/colonies", h.Registry.ListColonies)
	api.POST("/colonies", h.Registry.CreateColony)
	api.GET("/colonies/:id", h.Registry.GetColony)
	api.PUT("/colonies/:id", h.Registry.UpdateColony)
	api.DELETE("/colonies/:id", h.Registry.DeleteColony)

	api.GET("/events", h.Registry.ListEvents)
	api.POST("/events", h.Registry.CreateEvent)
	api.GET("/events/:id", h.Registry.GetEvent)
	api.PUT("/events/:id", h.Registry.UpdateEvent)
	api.DELETE("/events/:id", h.Registry.DeleteEvent)

	api.GET("/customers", h.Billing.ListCustomers)
	api.POST("/customers", h.Billing.CreateCustomer)
	api.GET("/customers/:id", h.Billing.GetCustomer)
	api.PUT("/customers/:id", h.Billing.UpdateCustomer)
	api.DELETE("/customers/:id", h.Billing.DeleteCustomer)

	api.GET("/invoices", h.Billing.ListInvoices)
	api.POST("/invoices", h.Billing.CreateInvoice)
	api.GET("/invoices/:id", h.Billing.GetInvoice)
	api.PUT("/invoices/:id", h.Billing.UpdateInvoice)
	api.DELETE("/invoices/:id", h.Billing.DeleteInvoice)

	api.POST("/cash-payment", h.Billing.RecordCashPayment)

	api.GET("/accounting", h.Billing.ListEntries)
	api.POST("/accounting", h.Billing.CreateEntry)
	api.GET("/accounting/export", h.Billing.ExportLedger)
	api.GET("/accounting/:id", h.Billing.GetEntry)
	api.PUT("/accounting/:id", h.Billing.UpdateEntry)
	api.DELETE("/accounting/:id", h.Billing.DeleteEntry)

	api.GET("/reminders", h.Reminders.List)
	api.POST("/reminders", h.Reminders.Create)
	api.GET("/reminders/:id", h.Reminders.Get)
	api.PUT("/reminders/:id", h.Reminders.Update)
	api.DELETE("/reminders/:id", h.Reminders.Delete)

	api.GET("/settings", h.Billing.GetSettings)
	api.PUT("/settings", h.Billing.UpdateSettings)

	api.GET("/statistics", h.Statistics.Yearly)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
