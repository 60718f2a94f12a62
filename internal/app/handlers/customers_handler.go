package handlers

import (
	"context"
	"net/http"

	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/interfaces"
	"loanservicing/internal/service/score"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScoreServiceInterface interface {
	Recompute(ctx context.Context, customerID primitive.ObjectID) (*score.Report, error)
	OverrideScore(ctx context.Context, customerID primitive.ObjectID, newScore int32, reason string) error
	GeneratePreApproval(ctx context.Context, customerID primitive.ObjectID, amount float64, installments int) (*models.PreApprovedOffer, error)
}

type CustomersHandler struct {
	score     ScoreServiceInterface
	customers interfaces.CustomerRepositoryInterface
}

func NewCustomersHandler(scoreService ScoreServiceInterface, customers interfaces.CustomerRepositoryInterface) *CustomersHandler {
	return &CustomersHandler{
		score:     scoreService,
		customers: customers,
	}
}

func (h *CustomersHandler) Get(c *gin.Context) {
	customerID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomersHandler) GetScore(c *gin.Context) {
	customerID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	report, err := h.score.Recompute(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

type OverrideScorePayload struct {
	Score  int32  `json:"score" binding:"gte=0,lte=1000"`
	Reason string `json:"reason" binding:"required"`
}

func (h *CustomersHandler) OverrideScore(c *gin.Context) {
	customerID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload OverrideScorePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.score.OverrideScore(c.Request.Context(), customerID, payload.Score, payload.Reason); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": payload.Score})
}

type PreApprovalPayload struct {
	Amount       float64 `json:"amount" binding:"omitempty,gt=0"`
	Installments int     `json:"installments" binding:"omitempty,gte=1"`
}

func (h *CustomersHandler) GeneratePreApproval(c *gin.Context) {
	customerID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	// empty body pre-populates the amount from the suggested limit
	var payload PreApprovalPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	offer, err := h.score.GeneratePreApproval(c.Request.Context(), customerID, payload.Amount, payload.Installments)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PreApprovedOfferResponse{
		Amount:       offer.Amount,
		Installments: offer.Installments,
		MonthlyRate:  offer.MonthlyRate,
		GeneratedAt:  offer.GeneratedAt,
		ExpiresAt:    offer.ExpiresAt,
	})
}
