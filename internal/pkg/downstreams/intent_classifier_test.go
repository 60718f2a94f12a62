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

func classifierClientFor(url string) *ClassifierClient {
	return NewClassifierClient(config.DownstreamConfig{
		ClassifierURL:  url,
		RequestTimeout: 2 * time.Second,
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   interface{}
		mockStatusCode int
		wantIntent     consts.MessageIntent
		wantErr        bool
	}{
		{
			name:           "payment promise",
			mockResponse:   ClassifyResponse{Intent: "PAYMENT_PROMISE", Confidence: 0.91},
			mockStatusCode: http.StatusOK,
			wantIntent:     consts.IntentPaymentPromise,
		},
		{
			name:           "invoice request",
			mockResponse:   ClassifyResponse{Intent: "REQUEST_INVOICE", Confidence: 0.84},
			mockStatusCode: http.StatusOK,
			wantIntent:     consts.IntentRequestInvoice,
		},
		{
			name:           "unrecognized label maps to unknown",
			mockResponse:   ClassifyResponse{Intent: "GREETING", Confidence: 0.65},
			mockStatusCode: http.StatusOK,
			wantIntent:     consts.IntentUnknown,
		},
		{
			name:           "server error",
			mockResponse:   nil,
			mockStatusCode: http.StatusBadGateway,
			wantIntent:     consts.IntentUnknown,
			wantErr:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)

				var req ClassifyRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "vou pagar amanha", req.Message)

				w.WriteHeader(tc.mockStatusCode)
				if tc.mockResponse != nil {
					require.NoError(t, json.NewEncoder(w).Encode(tc.mockResponse))
				}
			}))
			defer server.Close()

			client := classifierClientFor(server.URL)
			intent, err := client.Classify(context.Background(), "vou pagar amanha")

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantIntent, intent)
		})
	}
}
