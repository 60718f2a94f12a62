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

func verificationClientFor(url string) *VerificationClient {
	return NewVerificationClient(config.DownstreamConfig{
		VerificationURL: url,
		RequestTimeout:  2 * time.Second,
	})
}

func TestVerifyIdentity(t *testing.T) {
	tests := []struct {
		name           string
		mockResponse   interface{}
		mockStatusCode int
		wantVerified   bool
		wantErr        error
	}{
		{
			name:           "verified match",
			mockResponse:   VerifyIdentityResponse{Verified: true, MatchScore: 0.97},
			mockStatusCode: http.StatusOK,
			wantVerified:   true,
		},
		{
			name:           "mismatch is an answer not an error",
			mockResponse:   VerifyIdentityResponse{Verified: false, MatchScore: 0.12},
			mockStatusCode: http.StatusOK,
			wantVerified:   false,
		},
		{
			name:           "server error",
			mockResponse:   nil,
			mockStatusCode: http.StatusInternalServerError,
			wantErr:        consts.ErrorVerificationUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req VerifyIdentityRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "12345678900", req.NationalID)
				assert.Equal(t, "Maria Souza", req.FullName)

				w.WriteHeader(tc.mockStatusCode)
				if tc.mockResponse != nil {
					require.NoError(t, json.NewEncoder(w).Encode(tc.mockResponse))
				}
			}))
			defer server.Close()

			client := verificationClientFor(server.URL)
			verified, err := client.VerifyIdentity(context.Background(), "12345678900", "Maria Souza")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantVerified, verified)
		})
	}
}

func TestVerifyIdentityUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := verificationClientFor(server.URL)
	_, err := client.VerifyIdentity(context.Background(), "12345678900", "Maria Souza")

	assert.ErrorIs(t, err, consts.ErrorVerificationUnavailable)
}
