package handlers

import (
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/ledger"
)

type StatusChangeResponse struct {
	From      consts.RequestStatus `json:"from"`
	To        consts.RequestStatus `json:"to"`
	Reason    string               `json:"reason,omitempty"`
	ChangedAt time.Time            `json:"changedAt"`
}

type SupplementalRequestResponse struct {
	Description string     `json:"description"`
	RequestedAt time.Time  `json:"requestedAt"`
	Uploaded    bool       `json:"uploaded"`
	UploadedAt  *time.Time `json:"uploadedAt,omitempty"`
}

type LoanRequestResponse struct {
	ID                  string                       `json:"id"`
	CustomerID          string                       `json:"customerId"`
	Principal           float64                      `json:"principal"`
	MonthlyRate         float64                      `json:"monthlyRate"`
	Installments        int32                        `json:"installments"`
	PackageID           string                       `json:"packageId,omitempty"`
	Status              consts.RequestStatus         `json:"status"`
	RejectionReason     string                       `json:"rejectionReason,omitempty"`
	SupplementalRequest *SupplementalRequestResponse `json:"supplementalRequest,omitempty"`
	StatusHistory       []StatusChangeResponse       `json:"statusHistory,omitempty"`
	CreatedAt           time.Time                    `json:"createdAt"`
}

func toLoanRequestResponse(request *models.LoanRequests) LoanRequestResponse {
	resp := LoanRequestResponse{
		ID:              request.ID.Hex(),
		CustomerID:      request.CustomerID.Hex(),
		Principal:       request.Principal,
		MonthlyRate:     request.MonthlyRate,
		Installments:    request.Installments,
		PackageID:       request.PackageID,
		Status:          request.Status,
		RejectionReason: request.RejectionReason,
		CreatedAt:       request.CreatedAt,
	}
	if sr := request.SupplementalRequest; sr != nil {
		srResp := &SupplementalRequestResponse{
			Description: sr.Description,
			RequestedAt: sr.RequestedAt,
			Uploaded:    sr.Document != nil,
		}
		if sr.Document != nil {
			srResp.UploadedAt = &sr.Document.UploadedAt
		}
		resp.SupplementalRequest = srResp
	}
	for _, change := range request.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, StatusChangeResponse{
			From:      change.From,
			To:        change.To,
			Reason:    change.Reason,
			ChangedAt: change.ChangedAt,
		})
	}
	return resp
}

type InstallmentResponse struct {
	Index        int32                    `json:"index"`
	Amount       float64                  `json:"amount"`
	DueDate      time.Time                `json:"dueDate"`
	Status       consts.InstallmentStatus `json:"status"`
	PaidAt       *time.Time               `json:"paidAt,omitempty"`
	PaidAmount   float64                  `json:"paidAmount,omitempty"`
	PaymentProof string                   `json:"paymentProof,omitempty"`
}

type LoanResponse struct {
	ID                 string                `json:"id"`
	RequestID          string                `json:"requestId"`
	CustomerID         string                `json:"customerId"`
	Principal          float64               `json:"principal"`
	MonthlyRate        float64               `json:"monthlyRate"`
	TotalOwed          float64               `json:"totalOwed"`
	StartDate          time.Time             `json:"startDate"`
	Installments       []InstallmentResponse `json:"installments"`
	RenegotiatedAt     *time.Time            `json:"renegotiatedAt,omitempty"`
	AcceptedProposalID string                `json:"acceptedProposalId,omitempty"`
	RemainingBalance   float64               `json:"remainingBalance"`
	LateCount          int                   `json:"lateCount"`
	Settled            bool                  `json:"settled"`
	NextDue            *InstallmentResponse  `json:"nextDue,omitempty"`
}

func toLoanResponse(overview *ledger.Overview) LoanResponse {
	loan := overview.Loan
	resp := LoanResponse{
		ID:               loan.ID.Hex(),
		RequestID:        loan.RequestID.Hex(),
		CustomerID:       loan.CustomerID.Hex(),
		Principal:        loan.Principal,
		MonthlyRate:      loan.MonthlyRate,
		TotalOwed:        loan.TotalOwed,
		StartDate:        loan.StartDate,
		RenegotiatedAt:   loan.RenegotiatedAt,
		RemainingBalance: overview.RemainingBalance,
		LateCount:        overview.LateCount,
		Settled:          overview.Settled,
	}
	if !loan.AcceptedProposalID.IsZero() {
		resp.AcceptedProposalID = loan.AcceptedProposalID.Hex()
	}
	for i, inst := range loan.Installments {
		resp.Installments = append(resp.Installments, toInstallmentResponse(inst, overview.EffectiveStatus[i]))
	}
	if overview.NextDue != nil {
		next := toInstallmentResponse(*overview.NextDue, overview.NextDue.Status)
		resp.NextDue = &next
	}
	return resp
}

func toInstallmentResponse(inst models.Installment, effective consts.InstallmentStatus) InstallmentResponse {
	return InstallmentResponse{
		Index:        inst.Index,
		Amount:       inst.Amount,
		DueDate:      inst.DueDate,
		Status:       effective,
		PaidAt:       inst.PaidAt,
		PaidAmount:   inst.PaidAmount,
		PaymentProof: inst.PaymentProof,
	}
}

type ProposalResponse struct {
	ID                string                `json:"id"`
	LoanID            string                `json:"loanId"`
	Balance           float64               `json:"balance"`
	MonthlyRate       float64               `json:"monthlyRate"`
	Installments      int32                 `json:"installments"`
	InstallmentAmount float64               `json:"installmentAmount"`
	TotalOwed         float64               `json:"totalOwed"`
	Status            consts.ProposalStatus `json:"status"`
	ExpiresAt         time.Time             `json:"expiresAt"`
	CreatedAt         time.Time             `json:"createdAt"`
	ResolvedAt        *time.Time            `json:"resolvedAt,omitempty"`
}

func toProposalResponse(proposal *models.RenegotiationProposals) ProposalResponse {
	return ProposalResponse{
		ID:                proposal.ID.Hex(),
		LoanID:            proposal.LoanID.Hex(),
		Balance:           proposal.Balance,
		MonthlyRate:       proposal.MonthlyRate,
		Installments:      proposal.Installments,
		InstallmentAmount: proposal.InstallmentAmount,
		TotalOwed:         proposal.TotalOwed,
		Status:            proposal.Status,
		ExpiresAt:         proposal.ExpiresAt,
		CreatedAt:         proposal.CreatedAt,
		ResolvedAt:        proposal.ResolvedAt,
	}
}

type RuleResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	OffsetDays      int32                  `json:"offsetDays"`
	Channel         consts.ReminderChannel `json:"channel"`
	MessageTemplate string                 `json:"messageTemplate"`
	Active          bool                   `json:"active"`
}

func toRuleResponse(rule *models.CollectionRules) RuleResponse {
	return RuleResponse{
		ID:              rule.ID.Hex(),
		Name:            rule.Name,
		OffsetDays:      rule.OffsetDays,
		Channel:         rule.Channel,
		MessageTemplate: rule.MessageTemplate,
		Active:          rule.Active,
	}
}

type DispatchResponse struct {
	ID               string                 `json:"id"`
	LoanID           string                 `json:"loanId"`
	InstallmentIndex int32                  `json:"installmentIndex"`
	RuleID           string                 `json:"ruleId"`
	Channel          consts.ReminderChannel `json:"channel"`
	Recipient        string                 `json:"recipient"`
	RenderedMessage  string                 `json:"renderedMessage"`
	SentAt           time.Time              `json:"sentAt"`
}

func toDispatchResponse(dispatch *models.ReminderDispatches) DispatchResponse {
	return DispatchResponse{
		ID:               dispatch.ID.Hex(),
		LoanID:           dispatch.LoanID.Hex(),
		InstallmentIndex: dispatch.InstallmentIndex,
		RuleID:           dispatch.RuleID.Hex(),
		Channel:          dispatch.Channel,
		Recipient:        dispatch.Recipient,
		RenderedMessage:  dispatch.RenderedMessage,
		SentAt:           dispatch.SentAt,
	}
}

type PreApprovedOfferResponse struct {
	Amount       float64   `json:"amount"`
	Installments int32     `json:"installments"`
	MonthlyRate  float64   `json:"monthlyRate"`
	GeneratedAt  time.Time `json:"generatedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type CustomerResponse struct {
	ID               string                    `json:"id"`
	FullName         string                    `json:"fullName"`
	NationalID       string                    `json:"nationalId"`
	Phone            string                    `json:"phone"`
	Email            string                    `json:"email,omitempty"`
	Score            int32                     `json:"score"`
	IdentityVerified bool                      `json:"identityVerified"`
	PreApprovedOffer *PreApprovedOfferResponse `json:"preApprovedOffer,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

func toCustomerResponse(customer *models.Customers) CustomerResponse {
	resp := CustomerResponse{
		ID:               customer.ID.Hex(),
		FullName:         customer.FullName,
		NationalID:       customer.NationalID,
		Phone:            customer.Phone,
		Email:            customer.Email,
		Score:            customer.Score,
		IdentityVerified: customer.IdentityVerified,
		CreatedAt:        customer.CreatedAt,
	}
	if offer := customer.PreApprovedOffer; offer != nil {
		resp.PreApprovedOffer = &PreApprovedOfferResponse{
			Amount:       offer.Amount,
			Installments: offer.Installments,
			MonthlyRate:  offer.MonthlyRate,
			GeneratedAt:  offer.GeneratedAt,
			ExpiresAt:    offer.ExpiresAt,
		}
	}
	return resp
}
