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

type ClassifyRequest struct {
	Message string `json:"message"`
}

type ClassifyResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// ClassifierClient labels inbound customer messages through the external
// NLU service. Labels it does not recognize come back as UNKNOWN.
type ClassifierClient struct {
	URL        string
	httpClient *http.Client
}

func NewClassifierClient(cfg config.DownstreamConfig) *ClassifierClient {
	return &ClassifierClient{
		URL: cfg.ClassifierURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *ClassifierClient) Classify(ctx context.Context, message string) (consts.MessageIntent, error) {
	payload, err := json.Marshal(ClassifyRequest{Message: message})
	if err != nil {
		return consts.IntentUnknown, fmt.Errorf("marshal classify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payload))
	if err != nil {
		return consts.IntentUnknown, fmt.Errorf("build classify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.CtxWarn(ctx, log_messages.IntentClassificationFailure,
			slog.String("error", err.Error()))
		return consts.IntentUnknown, err
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			logger.CtxError(ctx, "failed to close classifier response body", cerr)
		}
	}()

	if httpResp.StatusCode != http.StatusOK {
		logger.CtxWarn(ctx, log_messages.IntentClassificationFailure,
			slog.Int("status", httpResp.StatusCode))
		return consts.IntentUnknown, fmt.Errorf("classifier returned status %d", httpResp.StatusCode)
	}

	var respData ClassifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&respData); err != nil {
		logger.CtxError(ctx, "failed to decode classifier response", err)
		return consts.IntentUnknown, err
	}

	switch consts.MessageIntent(respData.Intent) {
	case consts.IntentPaymentPromise, consts.IntentRequestInvoice, consts.IntentSupport:
		return consts.MessageIntent(respData.Intent), nil
	default:
		return consts.IntentUnknown, nil
	}
}
