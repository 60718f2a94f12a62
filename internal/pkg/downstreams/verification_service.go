package downstreams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
)

type VerifyIdentityRequest struct {
	NationalID string `json:"nationalId"`
	FullName   string `json:"fullName"`
}

type VerifyIdentityResponse struct {
	Verified   bool    `json:"verified"`
	MatchScore float64 `json:"matchScore"`
}

// VerificationClient calls the external identity bureau. A mismatch is a
// normal answer, not an error; only transport and non-2xx failures error out.
type VerificationClient struct {
	URL        string
	httpClient *http.Client
}

func NewVerificationClient(cfg config.DownstreamConfig) *VerificationClient {
	return &VerificationClient{
		URL: cfg.VerificationURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *VerificationClient) VerifyIdentity(ctx context.Context, nationalID string, fullName string) (bool, error) {
	payload, err := json.Marshal(VerifyIdentityRequest{
		NationalID: nationalID,
		FullName:   fullName,
	})
	if err != nil {
		return false, fmt.Errorf("marshal verification request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payload))
	if err != nil {
		return false, fmt.Errorf("build verification request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.CtxError(ctx, log_messages.VerificationServiceFailure, err,
			slog.String("url", c.URL))
		return false, fmt.Errorf("%w: %v", consts.ErrorVerificationUnavailable, err)
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			logger.CtxError(ctx, "failed to close verification response body", cerr)
		}
	}()

	if httpResp.StatusCode != http.StatusOK {
		logger.CtxError(ctx, log_messages.VerificationServiceFailure, nil,
			slog.Int("status", httpResp.StatusCode))
		return false, fmt.Errorf("%w: status %d", consts.ErrorVerificationUnavailable, httpResp.StatusCode)
	}

	var respData VerifyIdentityResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&respData); err != nil {
		logger.CtxError(ctx, "failed to decode verification response", err)
		return false, fmt.Errorf("%w: %v", consts.ErrorVerificationUnavailable, err)
	}

	return respData.Verified, nil
}
