package handlers

import (
	"context"
	"net/http"

	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/interfaces"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RenegotiationServiceInterface interface {
	Propose(ctx context.Context, loanID primitive.ObjectID, installments int) (*models.RenegotiationProposals, error)
	Accept(ctx context.Context, proposalID primitive.ObjectID) (*models.Loans, error)
	Reject(ctx context.Context, proposalID primitive.ObjectID) error
}

type RenegotiationsHandler struct {
	renegotiation RenegotiationServiceInterface
	ledger        LedgerServiceInterface
	proposals     interfaces.ProposalRepositoryInterface
}

func NewRenegotiationsHandler(
	renegotiationService RenegotiationServiceInterface,
	ledgerService LedgerServiceInterface,
	proposals interfaces.ProposalRepositoryInterface,
) *RenegotiationsHandler {
	return &RenegotiationsHandler{
		renegotiation: renegotiationService,
		ledger:        ledgerService,
		proposals:     proposals,
	}
}

type ProposePayload struct {
	Installments int `json:"installments" binding:"required,gte=1"`
}

func (h *RenegotiationsHandler) Propose(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload ProposePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.renegotiation.Propose(c.Request.Context(), loanID, payload.Installments)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProposalResponse(proposal))
}

func (h *RenegotiationsHandler) ListByLoan(c *gin.Context) {
	loanID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	proposals, err := h.proposals.ListProposalsByLoan(c.Request.Context(), loanID)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ProposalResponse, 0, len(proposals))
	for i := range proposals {
		responses = append(responses, toProposalResponse(&proposals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"proposals": responses})
}

func (h *RenegotiationsHandler) Accept(c *gin.Context) {
	proposalID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	loan, err := h.renegotiation.Accept(c.Request.Context(), proposalID)
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

func (h *RenegotiationsHandler) Reject(c *gin.Context) {
	proposalID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.renegotiation.Reject(c.Request.Context(), proposalID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "REJECTED"})
}
