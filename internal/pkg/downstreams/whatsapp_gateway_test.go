package downstreams

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayClientFor(url string) *WhatsAppGatewayClient {
	return NewWhatsAppGatewayClient(config.GatewayConfig{
		APIURL:         url,
		APIKey:         "test-api-key",
		InstanceName:   "collections-instance",
		RequestTimeout: 2 * time.Second,
	})
}

func TestSendText(t *testing.T) {
	t.Run("successful send", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/message/sendText/collections-instance", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("apikey"))

			var req SendTextRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "5511999990000", req.Number)
			assert.Equal(t, "installment due tomorrow", req.Text)

			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(SendTextResponse{Status: "PENDING"}))
		}))
		defer server.Close()

		client := gatewayClientFor(server.URL)
		err := client.SendText(context.Background(), "5511999990000", "installment due tomorrow")

		assert.NoError(t, err)
	})

	t.Run("gateway rejects send", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := gatewayClientFor(server.URL)
		err := client.SendText(context.Background(), "5511999990000", "hi")

		assert.ErrorIs(t, err, consts.ErrorMessageSendFailed)
	})

	t.Run("gateway unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := gatewayClientFor(server.URL)
		err := client.SendText(context.Background(), "5511999990000", "hi")

		assert.ErrorIs(t, err, consts.ErrorMessageSendFailed)
	})
}
