package router

import (
	"loanservicing/internal/app/handlers"
	"loanservicing/internal/app/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter mounts the service API under the /loan-servicing prefix.
func SetupRouter(
	requestsHandler *handlers.RequestsHandler,
	loansHandler *handlers.LoansHandler,
	renegotiationsHandler *handlers.RenegotiationsHandler,
	collectionHandler *handlers.CollectionHandler,
	customersHandler *handlers.CustomersHandler,
	webhookHandler *handlers.WebhookHandler,
) *gin.Engine {
	handlers.RegisterCustomValidations()

	server := gin.Default()
	server.Use(middleware.AttachTraceID())

	healthCheckHandler := handlers.NewHealthCheckHandler()
	server.GET("/loan-servicing/HealthCheck", healthCheckHandler.HealthCheck)

	api := server.Group("/loan-servicing")

	api.POST("/requests", requestsHandler.Submit)
	api.GET("/requests", requestsHandler.List)
	api.GET("/requests/:id", requestsHandler.Get)
	api.POST("/requests/:id/request-documents", requestsHandler.RequestDocuments)
	api.POST("/requests/:id/documents", requestsHandler.UploadDocument)
	api.POST("/requests/:id/approve", requestsHandler.Approve)
	api.POST("/requests/:id/reject", requestsHandler.Reject)

	api.GET("/loans/:id", loansHandler.Get)
	api.GET("/loans/:id/next-due", loansHandler.NextDue)
	api.GET("/loans/:id/balance", loansHandler.Balance)
	api.POST("/loans/:id/installments/:installmentIndex/payment", loansHandler.RecordPayment)

	api.POST("/loans/:id/renegotiations", renegotiationsHandler.Propose)
	api.GET("/loans/:id/renegotiations", renegotiationsHandler.ListByLoan)
	api.POST("/renegotiations/:id/accept", renegotiationsHandler.Accept)
	api.POST("/renegotiations/:id/reject", renegotiationsHandler.Reject)

	api.GET("/collection-rules", collectionHandler.ListRules)
	api.POST("/collection-rules", collectionHandler.CreateRule)
	api.PUT("/collection-rules/:id", collectionHandler.UpdateRule)
	api.DELETE("/collection-rules/:id", collectionHandler.DeactivateRule)
	api.POST("/collection/run", collectionHandler.RunPass)
	api.GET("/collection/dispatches", collectionHandler.ListDispatches)

	api.GET("/customers/:id", customersHandler.Get)
	api.GET("/customers/:id/score", customersHandler.GetScore)
	api.POST("/customers/:id/score", customersHandler.OverrideScore)
	api.POST("/customers/:id/pre-approval", customersHandler.GeneratePreApproval)
	api.GET("/customers/:id/interactions", webhookHandler.ListInteractions)

	api.POST("/webhooks/messages", webhookHandler.InboundMessage)

	return server
}
