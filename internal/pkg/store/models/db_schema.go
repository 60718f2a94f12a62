package models

import (
	"time"

	"loanservicing/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PreApprovedOffer struct {
	Amount       float64   `bson:"amount"`
	Installments int32     `bson:"installments"`
	MonthlyRate  float64   `bson:"monthlyRate"`
	GeneratedAt  time.Time `bson:"generatedAt"`
	ExpiresAt    time.Time `bson:"expiresAt"`
}

type Customers struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FullName         string             `bson:"fullName"`
	NationalID       string             `bson:"nationalId"`
	Phone            string             `bson:"phone"`
	Email            string             `bson:"email,omitempty"`
	Score            int32              `bson:"score"`
	IdentityVerified bool               `bson:"identityVerified"`
	PreApprovedOffer *PreApprovedOffer  `bson:"preApprovedOffer,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

type SupplementalDocument struct {
	FileName    string    `bson:"fileName"`
	ContentType string    `bson:"contentType"`
	Reference   string    `bson:"reference"`
	UploadedAt  time.Time `bson:"uploadedAt"`
}

type SupplementalRequest struct {
	Description string                `bson:"description"`
	RequestedAt time.Time             `bson:"requestedAt"`
	Document    *SupplementalDocument `bson:"document,omitempty"`
}

type StatusChange struct {
	From      consts.RequestStatus `bson:"from"`
	To        consts.RequestStatus `bson:"to"`
	Reason    string               `bson:"reason,omitempty"`
	ChangedAt time.Time            `bson:"changedAt"`
}

type LoanRequests struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty"`
	CustomerID          primitive.ObjectID   `bson:"customerId"`
	NationalID          string               `bson:"nationalId"`
	Principal           float64              `bson:"principal"`
	MonthlyRate         float64              `bson:"monthlyRate"`
	Installments        int32                `bson:"installments"`
	PackageID           string               `bson:"packageId,omitempty"`
	Status              consts.RequestStatus `bson:"status"`
	RejectionReason     string               `bson:"rejectionReason,omitempty"`
	SupplementalRequest *SupplementalRequest `bson:"supplementalRequest,omitempty"`
	StatusHistory       []StatusChange       `bson:"statusHistory,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt"`
}

type Installment struct {
	Index        int32                    `bson:"index"`
	Amount       float64                  `bson:"amount"`
	DueDate      time.Time                `bson:"dueDate"`
	Status       consts.InstallmentStatus `bson:"status"`
	PaidAt       *time.Time               `bson:"paidAt,omitempty"`
	PaidAmount   float64                  `bson:"paidAmount,omitempty"`
	PaymentProof string                   `bson:"paymentProof,omitempty"`
}

type Loans struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	RequestID            primitive.ObjectID `bson:"requestId"`
	CustomerID           primitive.ObjectID `bson:"customerId"`
	Principal            float64            `bson:"principal"`
	MonthlyRate          float64            `bson:"monthlyRate"`
	NegotiatedMultiplier float64            `bson:"negotiatedMultiplier"`
	TotalOwed            float64            `bson:"totalOwed"`
	StartDate            time.Time          `bson:"startDate"`
	Installments         []Installment      `bson:"installments"`
	RenegotiatedAt       *time.Time         `bson:"renegotiatedAt,omitempty"`
	AcceptedProposalID   primitive.ObjectID `bson:"acceptedProposalId,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt"`
}

type CollectionRules struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty"`
	Name            string                 `bson:"name"`
	OffsetDays      int32                  `bson:"offsetDays"`
	Channel         consts.ReminderChannel `bson:"channel"`
	MessageTemplate string                 `bson:"messageTemplate"`
	Active          bool                   `bson:"active"`
	CreatedAt       time.Time              `bson:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt"`
}

type RenegotiationProposals struct {
	ID                primitive.ObjectID    `bson:"_id,omitempty"`
	LoanID            primitive.ObjectID    `bson:"loanId"`
	CustomerID        primitive.ObjectID    `bson:"customerId"`
	Balance           float64               `bson:"balance"`
	MonthlyRate       float64               `bson:"monthlyRate"`
	Installments      int32                 `bson:"installments"`
	InstallmentAmount float64               `bson:"installmentAmount"`
	TotalOwed         float64               `bson:"totalOwed"`
	Status            consts.ProposalStatus `bson:"status"`
	ExpiresAt         time.Time             `bson:"expiresAt"`
	CreatedAt         time.Time             `bson:"createdAt"`
	ResolvedAt        *time.Time            `bson:"resolvedAt,omitempty"`
}

type ReminderDispatches struct {
	ID               primitive.ObjectID     `bson:"_id,omitempty"`
	LoanID           primitive.ObjectID     `bson:"loanId"`
	InstallmentIndex int32                  `bson:"installmentIndex"`
	RuleID           primitive.ObjectID     `bson:"ruleId"`
	Channel          consts.ReminderChannel `bson:"channel"`
	Recipient        string                 `bson:"recipient"`
	RenderedMessage  string                 `bson:"renderedMessage"`
	SentAt           time.Time              `bson:"sentAt"`
}

type InteractionLogs struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	CustomerID primitive.ObjectID   `bson:"customerId"`
	Direction  string               `bson:"direction"`
	Message    string               `bson:"message"`
	Intent     consts.MessageIntent `bson:"intent,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt"`
}
