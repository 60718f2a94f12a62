package handlers

import (
	"context"
	"net/http"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/amortization"
	"loanservicing/internal/service/interfaces"
	"loanservicing/internal/service/ledger"
	"loanservicing/internal/service/origination"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OriginationServiceInterface interface {
	SubmitRequest(ctx context.Context, input origination.SubmitRequestInput) (*models.LoanRequests, error)
	RequestSupplementalDoc(ctx context.Context, requestID primitive.ObjectID, description string) error
	UploadSupplementalDoc(ctx context.Context, requestID primitive.ObjectID, doc models.SupplementalDocument) error
	Approve(ctx context.Context, requestID primitive.ObjectID, negotiatedMultiplier float64) (*models.Loans, error)
	Reject(ctx context.Context, requestID primitive.ObjectID, reason string) error
}

type RequestsHandler struct {
	origination OriginationServiceInterface
	requests    interfaces.LoanRequestRepositoryInterface
}

func NewRequestsHandler(originationService OriginationServiceInterface, requests interfaces.LoanRequestRepositoryInterface) *RequestsHandler {
	return &RequestsHandler{
		origination: originationService,
		requests:    requests,
	}
}

type SubmitRequestPayload struct {
	FullName     string  `json:"fullName" binding:"required"`
	NationalID   string  `json:"nationalId" binding:"required,national_id"`
	Phone        string  `json:"phone" binding:"required"`
	Email        string  `json:"email" binding:"omitempty,email"`
	Principal    float64 `json:"principal" binding:"required,gt=0"`
	MonthlyRate  float64 `json:"monthlyRate" binding:"gte=0"`
	Installments int     `json:"installments" binding:"required,gte=1"`
	PackageID    string  `json:"packageId"`
}

func (h *RequestsHandler) Submit(c *gin.Context) {
	var payload SubmitRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.origination.SubmitRequest(c.Request.Context(), origination.SubmitRequestInput{
		FullName:     payload.FullName,
		NationalID:   payload.NationalID,
		Phone:        payload.Phone,
		Email:        payload.Email,
		Principal:    payload.Principal,
		MonthlyRate:  payload.MonthlyRate,
		Installments: payload.Installments,
		PackageID:    payload.PackageID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLoanRequestResponse(request))
}

func (h *RequestsHandler) Get(c *gin.Context) {
	requestID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	request, err := h.requests.GetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLoanRequestResponse(request))
}

func (h *RequestsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if customerHex := c.Query("customerId"); customerHex != "" {
		customerID, err := primitive.ObjectIDFromHex(customerHex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customerId"})
			return
		}
		requests, err := h.requests.ListRequestsByCustomer(ctx, customerID)
		if err != nil {
			writeError(c, err)
			return
		}
		h.writeRequestList(c, requests)
		return
	}

	status := consts.RequestStatus(c.DefaultQuery("status", string(consts.RequestStatusPending)))
	requests, err := h.requests.ListRequestsByStatus(ctx, status)
	if err != nil {
		writeError(c, err)
		return
	}
	h.writeRequestList(c, requests)
}

func (h *RequestsHandler) writeRequestList(c *gin.Context, requests []models.LoanRequests) {
	responses := make([]LoanRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toLoanRequestResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, gin.H{"requests": responses})
}

type RequestDocumentsPayload struct {
	Description string `json:"description" binding:"required"`
}

func (h *RequestsHandler) RequestDocuments(c *gin.Context) {
	requestID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload RequestDocumentsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.origination.RequestSupplementalDoc(c.Request.Context(), requestID, payload.Description); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(consts.RequestStatusWaitingDocs)})
}

type UploadDocumentPayload struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
	Reference   string `json:"reference" binding:"required"`
}

func (h *RequestsHandler) UploadDocument(c *gin.Context) {
	requestID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload UploadDocumentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := models.SupplementalDocument{
		FileName:    payload.FileName,
		ContentType: payload.ContentType,
		Reference:   payload.Reference,
	}
	if err := h.origination.UploadSupplementalDoc(c.Request.Context(), requestID, doc); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(consts.RequestStatusPending)})
}

type ApproveRequestPayload struct {
	NegotiatedMultiplier float64 `json:"negotiatedMultiplier" binding:"omitempty,gt=0"`
}

func (h *RequestsHandler) Approve(c *gin.Context) {
	requestID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	// body is optional, approval without one uses the standard multiplier
	var payload ApproveRequestPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	loan, err := h.origination.Approve(c.Request.Context(), requestID, payload.NegotiatedMultiplier)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toLoanResponse(freshLoanOverview(loan)))
}

type RejectRequestPayload struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *RequestsHandler) Reject(c *gin.Context) {
	requestID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var payload RejectRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.origination.Reject(c.Request.Context(), requestID, payload.Reason); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(consts.RequestStatusRejected)})
}

// freshLoanOverview builds the read model for a loan that was created in
// this request, where no installment can be late yet.
func freshLoanOverview(loan *models.Loans) *ledger.Overview {
	statuses := make([]consts.InstallmentStatus, len(loan.Installments))
	for i, inst := range loan.Installments {
		statuses[i] = inst.Status
	}
	next := ledger.NextDue(loan)
	return &ledger.Overview{
		Loan:             loan,
		EffectiveStatus:  statuses,
		NextDue:          next,
		RemainingBalance: amortization.RemainingBalance(loan.Installments).InexactFloat64(),
		Settled:          next == nil,
	}
}
