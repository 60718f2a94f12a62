package origination

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/amortization"
	"loanservicing/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OriginationService owns the loan request lifecycle from submission to the
// approval that creates the loan and its installment plan.
type OriginationService struct {
	requests  interfaces.LoanRequestRepositoryInterface
	customers interfaces.CustomerRepositoryInterface
	loans     interfaces.LoanRepositoryInterface
	verifier  interfaces.IdentityVerifier
	policy    config.PolicyConfig
	now       func() time.Time
}

func NewOriginationService(
	requests interfaces.LoanRequestRepositoryInterface,
	customers interfaces.CustomerRepositoryInterface,
	loans interfaces.LoanRepositoryInterface,
	verifier interfaces.IdentityVerifier,
	policy config.PolicyConfig,
) *OriginationService {
	return &OriginationService{
		requests:  requests,
		customers: customers,
		loans:     loans,
		verifier:  verifier,
		policy:    policy,
		now:       time.Now,
	}
}

type SubmitRequestInput struct {
	FullName     string
	NationalID   string
	Phone        string
	Email        string
	Principal    float64
	MonthlyRate  float64
	Installments int
	PackageID    string
}

// SubmitRequest validates the application, upserts the customer by national
// ID, gates on identity verification, and files the request as PENDING.
func (s *OriginationService) SubmitRequest(ctx context.Context, input SubmitRequestInput) (*models.LoanRequests, error) {
	if input.Principal <= 0 {
		return nil, consts.ErrorInvalidPrincipal
	}
	if input.MonthlyRate < 0 {
		return nil, consts.ErrorInvalidRate
	}
	if input.MonthlyRate == 0 {
		input.MonthlyRate = s.policy.MonthlyInterestRate
	}
	if input.Installments < 1 || input.Installments > s.policy.MaxRequestInstallments {
		return nil, consts.ErrorInvalidInstallmentCount
	}

	if input.PackageID != "" {
		pkg := s.policy.PackageByID(input.PackageID)
		if pkg == nil {
			return nil, fmt.Errorf("%w: unknown package %q", consts.ErrorPackageViolation, input.PackageID)
		}
		if input.Principal < pkg.MinPrincipal || input.Principal > pkg.MaxPrincipal {
			return nil, fmt.Errorf("%w: principal %.2f outside %q", consts.ErrorPackageViolation, input.Principal, pkg.ID)
		}
		if input.Installments < pkg.MinInstallments || input.Installments > pkg.MaxInstallments {
			return nil, fmt.Errorf("%w: %d installments outside %q", consts.ErrorPackageViolation, input.Installments, pkg.ID)
		}
		// The package rate is authoritative for packaged applications.
		if pkg.MonthlyRate > 0 {
			input.MonthlyRate = pkg.MonthlyRate
		}
	}

	customer, err := s.upsertCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	request := &models.LoanRequests{
		CustomerID:   customer.ID,
		NationalID:   input.NationalID,
		Principal:    input.Principal,
		MonthlyRate:  input.MonthlyRate,
		Installments: int32(input.Installments),
		PackageID:    input.PackageID,
		Status:       consts.RequestStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.requests.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	request.ID = id

	logger.CtxInfo(ctx, "Loan request submitted",
		slog.String("request_id", id.Hex()),
		slog.String("customer_id", customer.ID.Hex()),
		slog.Float64("principal", input.Principal),
		slog.Int("installments", input.Installments),
	)
	return request, nil
}

func (s *OriginationService) upsertCustomer(ctx context.Context, input SubmitRequestInput) (*models.Customers, error) {
	customer, err := s.customers.GetCustomerByNationalID(ctx, input.NationalID)
	if err == nil {
		return customer, nil
	}
	if err != consts.ErrorCustomerNotFound {
		return nil, err
	}

	verified, err := s.verifier.VerifyIdentity(ctx, input.NationalID, input.FullName)
	if err != nil {
		logger.CtxError(ctx, "Identity verification call failed", err,
			slog.String("national_id", input.NationalID))
		return nil, consts.ErrorVerificationUnavailable
	}
	if !verified {
		return nil, consts.ErrorIdentityNotVerified
	}

	now := s.now().UTC()
	newCustomer := &models.Customers{
		FullName:         input.FullName,
		NationalID:       input.NationalID,
		Phone:            input.Phone,
		Email:            input.Email,
		Score:            consts.ScoreInitial,
		IdentityVerified: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	id, err := s.customers.CreateCustomer(ctx, newCustomer)
	if err != nil {
		return nil, err
	}
	newCustomer.ID = id
	return newCustomer, nil
}

// RequestSupplementalDoc asks the applicant for one more document, moving the
// request from PENDING to WAITING_DOCS.
func (s *OriginationService) RequestSupplementalDoc(ctx context.Context, requestID primitive.ObjectID, description string) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != consts.RequestStatusPending {
		return transitionError(request.Status, consts.RequestStatusWaitingDocs)
	}

	moved, err := s.requests.TransitionStatus(ctx, requestID,
		consts.RequestStatusPending, consts.RequestStatusWaitingDocs, "")
	if err != nil {
		return err
	}
	if !moved {
		return transitionError(request.Status, consts.RequestStatusWaitingDocs)
	}

	return s.requests.SetSupplementalRequest(ctx, requestID, models.SupplementalRequest{
		Description: description,
		RequestedAt: s.now().UTC(),
	})
}

// UploadSupplementalDoc records the document and returns the request to the
// analysis queue as PENDING.
func (s *OriginationService) UploadSupplementalDoc(ctx context.Context, requestID primitive.ObjectID, doc models.SupplementalDocument) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != consts.RequestStatusWaitingDocs {
		return transitionError(request.Status, consts.RequestStatusPending)
	}
	if request.SupplementalRequest == nil {
		return consts.ErrorNoSupplementalRequest
	}

	doc.UploadedAt = s.now().UTC()
	if err := s.requests.AttachSupplementalDocument(ctx, requestID, doc); err != nil {
		return err
	}

	moved, err := s.requests.TransitionStatus(ctx, requestID,
		consts.RequestStatusWaitingDocs, consts.RequestStatusPending, "")
	if err != nil {
		return err
	}
	if !moved {
		return transitionError(consts.RequestStatusWaitingDocs, consts.RequestStatusPending)
	}
	return nil
}

// Approve moves a PENDING request to APPROVED and creates the loan with its
// full installment plan anchored at approval time. The negotiated multiplier
// scales the total owed for manually negotiated deals; pass 0 for the
// standard rate-driven total.
func (s *OriginationService) Approve(ctx context.Context, requestID primitive.ObjectID, negotiatedMultiplier float64) (*models.Loans, error) {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != consts.RequestStatusPending {
		return nil, transitionError(request.Status, consts.RequestStatusApproved)
	}

	if negotiatedMultiplier <= 0 {
		negotiatedMultiplier = 1.0
	}

	startDate := s.now().UTC()
	schedule, err := amortization.BuildSchedule(
		request.Principal,
		request.MonthlyRate,
		int(request.Installments),
		negotiatedMultiplier,
		startDate,
	)
	if err != nil {
		return nil, err
	}

	moved, err := s.requests.TransitionStatus(ctx, requestID,
		consts.RequestStatusPending, consts.RequestStatusApproved, "")
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, transitionError(request.Status, consts.RequestStatusApproved)
	}

	loan := &models.Loans{
		RequestID:            requestID,
		CustomerID:           request.CustomerID,
		Principal:            request.Principal,
		MonthlyRate:          request.MonthlyRate,
		NegotiatedMultiplier: negotiatedMultiplier,
		TotalOwed:            schedule.TotalOwed,
		StartDate:            startDate,
		Installments:         schedule.Installments,
		CreatedAt:            startDate,
		UpdatedAt:            startDate,
	}
	loanID, err := s.loans.CreateLoan(ctx, loan)
	if err != nil {
		logger.CtxError(ctx, "Approved request but loan creation failed", err,
			slog.String("request_id", requestID.Hex()))
		// Approval without a loan would strand the request in a terminal
		// status. Put it back to PENDING so it can be approved again.
		reverted, revertErr := s.requests.TransitionStatus(ctx, requestID,
			consts.RequestStatusApproved, consts.RequestStatusPending, "")
		if revertErr != nil || !reverted {
			logger.CtxError(ctx, "Failed to revert request after loan creation failure", revertErr,
				slog.String("request_id", requestID.Hex()))
		}
		return nil, err
	}
	loan.ID = loanID

	logger.CtxInfo(ctx, "Loan request approved",
		slog.String("request_id", requestID.Hex()),
		slog.String("loan_id", loanID.Hex()),
		slog.Float64("total_owed", schedule.TotalOwed),
	)
	return loan, nil
}

// Reject closes a PENDING request. A request parked in WAITING_DOCS goes back
// through the review queue before it can be rejected.
func (s *OriginationService) Reject(ctx context.Context, requestID primitive.ObjectID, reason string) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != consts.RequestStatusPending {
		return transitionError(request.Status, consts.RequestStatusRejected)
	}

	moved, err := s.requests.TransitionStatus(ctx, requestID,
		consts.RequestStatusPending, consts.RequestStatusRejected, reason)
	if err != nil {
		return err
	}
	if !moved {
		return transitionError(request.Status, consts.RequestStatusRejected)
	}

	logger.CtxInfo(ctx, "Loan request rejected",
		slog.String("request_id", requestID.Hex()),
		slog.String("reason", reason),
	)
	return nil
}

func transitionError(from, to consts.RequestStatus) error {
	return fmt.Errorf("%w: %s -> %s", consts.ErrorInvalidTransition, from, to)
}
