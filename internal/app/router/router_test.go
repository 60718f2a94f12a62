package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"loanservicing/internal/app/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRouterHealthCheckRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := SetupRouter(
		&handlers.RequestsHandler{},
		&handlers.LoansHandler{},
		&handlers.RenegotiationsHandler{},
		&handlers.CollectionHandler{},
		&handlers.CustomersHandler{},
		&handlers.WebhookHandler{},
	)

	req, _ := http.NewRequest(http.MethodGet, "/loan-servicing/HealthCheck", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Health Check"}`, w.Body.String())
}

func TestSetupRouterUnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := SetupRouter(
		&handlers.RequestsHandler{},
		&handlers.LoansHandler{},
		&handlers.RenegotiationsHandler{},
		&handlers.CollectionHandler{},
		&handlers.CustomersHandler{},
		&handlers.WebhookHandler{},
	)

	req, _ := http.NewRequest(http.MethodGet, "/loan-servicing/nope", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
