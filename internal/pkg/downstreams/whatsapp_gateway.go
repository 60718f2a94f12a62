package downstreams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/logger"
)

type SendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type SendTextResponse struct {
	Key struct {
		ID string `json:"id"`
	} `json:"key"`
	Status string `json:"status"`
}

// WhatsAppGatewayAPI interface (for mocking & testing)
type WhatsAppGatewayAPI interface {
	SendText(ctx context.Context, number string, text string) error
}

// WhatsAppGatewayClient talks to the messaging gateway instance that holds
// the WhatsApp session. SMS and email ride the notification topic instead.
type WhatsAppGatewayClient struct {
	URL        string
	apiKey     string
	instance   string
	httpClient *http.Client
}

func NewWhatsAppGatewayClient(cfg config.GatewayConfig) *WhatsAppGatewayClient {
	return &WhatsAppGatewayClient{
		URL:      cfg.APIURL,
		apiKey:   cfg.APIKey,
		instance: cfg.InstanceName,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *WhatsAppGatewayClient) SendText(ctx context.Context, number string, text string) error {
	payload, err := json.Marshal(SendTextRequest{Number: number, Text: text})
	if err != nil {
		return fmt.Errorf("marshal sendText request: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", c.URL, c.instance)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("build sendText request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.CtxError(ctx, "failed to reach messaging gateway", err,
			slog.String("url", url))
		return fmt.Errorf("%w: %v", consts.ErrorMessageSendFailed, err)
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			logger.CtxError(ctx, "failed to close gateway response body", cerr)
		}
	}()

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(httpResp.Body)
		logger.CtxError(ctx, "messaging gateway rejected send", nil,
			slog.Int("status", httpResp.StatusCode),
			slog.String("body", string(body)))
		return fmt.Errorf("%w: status %d", consts.ErrorMessageSendFailed, httpResp.StatusCode)
	}

	return nil
}
