package handlers

import (
	"context"
	"net/http"
	"strconv"

	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/ledger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LedgerServiceInterface interface {
	GetOverview(ctx context.Context, loanID primitive.ObjectID) (*ledger.Overview, error)
	RecordPayment(ctx context.Context, loanID primitive.ObjectID, index int32, paidAmount float64, proofRef string) (*models.Loans, error)
	RemainingBalance(ctx context.Context, loanID primitive.ObjectID) (float64, error)
}

type LoansHandler struct {
	ledger LedgerServiceInterface
}

func NewLoansHandler(ledgerService LedgerServiceInterface) *LoansHandler {
	return &LoansHandler{ledger: ledgerService}
}

func (h *LoansHandler) Get(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	overview, err := h.ledger.GetOverview(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLoanResponse(overview))
}

func (h *LoansHandler) NextDue(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	overview, err := h.ledger.GetOverview(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	if overview.NextDue == nil {
		c.JSON(http.StatusOK, gin.H{"settled": true})
		return
	}
	next := toInstallmentResponse(*overview.NextDue, overview.NextDue.Status)
	c.JSON(http.StatusOK, gin.H{"settled": false, "nextDue": next})
}

func (h *LoansHandler) Balance(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	balance, err := h.ledger.RemainingBalance(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remainingBalance": balance})
}

type RecordPaymentPayload struct {
	Amount   float64 `json:"amount" binding:"omitempty,gt=0"`
	ProofRef string  `json:"proofRef"`
}

func (h *LoansHandler) RecordPayment(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.ParseInt(c.Param("installmentIndex"), 10, 32)
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid installmentIndex"})
		return
	}

	// empty body settles at the scheduled installment amount
	var payload RecordPaymentPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	loan, err := h.ledger.RecordPayment(c.Request.Context(), loanID, int32(index), payload.Amount, payload.ProofRef)
	if err != nil {
		writeError(c, err)
		return
	}

	overview, err := h.ledger.GetOverview(c.Request.Context(), loan.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(overview))
}
