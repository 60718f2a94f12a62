package handlers

import (
	"net/http"
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/interfaces"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives inbound free-text replies from the messaging
// gateway, labels them, and files them on the customer's interaction log.
// Classification never drives a state transition.
type WebhookHandler struct {
	classifier   interfaces.IntentClassifier
	customers    interfaces.CustomerRepositoryInterface
	interactions interfaces.InteractionRepositoryInterface
}

func NewWebhookHandler(
	classifier interfaces.IntentClassifier,
	customers interfaces.CustomerRepositoryInterface,
	interactions interfaces.InteractionRepositoryInterface,
) *WebhookHandler {
	return &WebhookHandler{
		classifier:   classifier,
		customers:    customers,
		interactions: interactions,
	}
}

type InboundMessagePayload struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *WebhookHandler) InboundMessage(c *gin.Context) {
	var payload InboundMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	customer, err := h.customers.GetCustomerByPhone(ctx, payload.Phone)
	if err != nil {
		writeError(c, err)
		return
	}

	intent, err := h.classifier.Classify(ctx, payload.Message)
	if err != nil {
		// a dead classifier must not drop the message, file it as support
		logger.CtxWarn(ctx, log_messages.IntentClassificationFailure)
		intent = consts.IntentSupport
	}

	entry := &models.InteractionLogs{
		CustomerID: customer.ID,
		Direction:  "INBOUND",
		Message:    payload.Message,
		Intent:     intent,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.interactions.LogInteraction(ctx, entry); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent": intent})
}

func (h *WebhookHandler) ListInteractions(c *gin.Context) {
	customerID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	entries, err := h.interactions.ListInteractionsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}

	type interactionResponse struct {
		Direction string               `json:"direction"`
		Message   string               `json:"message"`
		Intent    consts.MessageIntent `json:"intent,omitempty"`
		CreatedAt time.Time            `json:"createdAt"`
	}
	responses := make([]interactionResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, interactionResponse{
			Direction: entry.Direction,
			Message:   entry.Message,
			Intent:    entry.Intent,
			CreatedAt: entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"interactions": responses})
}
