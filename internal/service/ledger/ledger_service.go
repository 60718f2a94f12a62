package ledger

import (
	"context"
	"log/slog"
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/pkg/utils"
	"loanservicing/internal/service/amortization"
	"loanservicing/internal/service/interfaces"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService answers questions about a loan's installments and settles
// payments against them.
type LedgerService struct {
	loans interfaces.LoanRepositoryInterface
	now   func() time.Time
}

func NewLedgerService(loans interfaces.LoanRepositoryInterface) *LedgerService {
	return &LedgerService{loans: loans, now: time.Now}
}

// EffectiveStatus derives the status of an installment at a point in time.
// An OPEN installment whose due date has passed reads as LATE; the persisted
// status is never rewritten for lateness.
func EffectiveStatus(inst models.Installment, at time.Time) consts.InstallmentStatus {
	if inst.Status == consts.InstallmentStatusPaid {
		return consts.InstallmentStatusPaid
	}
	if inst.DueDate.Before(utils.TruncateToDay(at)) {
		return consts.InstallmentStatusLate
	}
	return consts.InstallmentStatusOpen
}

// RecordPayment settles a single installment. The update is guarded on the
// installment still being unpaid, so paying twice surfaces ErrorAlreadyPaid
// instead of silently overwriting the first settlement.
func (s *LedgerService) RecordPayment(ctx context.Context, loanID primitive.ObjectID, index int32, paidAmount float64, proofRef string) (*models.Loans, error) {
	loan, err := s.loans.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	var target *models.Installment
	for i := range loan.Installments {
		if loan.Installments[i].Index == index {
			target = &loan.Installments[i]
			break
		}
	}
	if target == nil {
		return nil, consts.ErrorInstallmentNotFound
	}
	if target.Status == consts.InstallmentStatusPaid {
		return nil, consts.ErrorAlreadyPaid
	}

	if paidAmount <= 0 {
		paidAmount = target.Amount
	}

	paidAt := s.now().UTC()
	settled, err := s.loans.MarkInstallmentPaid(ctx, loanID, index, paidAmount, proofRef, paidAt)
	if err != nil {
		return nil, err
	}
	if !settled {
		// Lost the race against another payment of the same installment.
		return nil, consts.ErrorAlreadyPaid
	}

	target.Status = consts.InstallmentStatusPaid
	target.PaidAt = &paidAt
	target.PaidAmount = paidAmount
	target.PaymentProof = proofRef

	logger.CtxInfo(ctx, "Installment payment recorded",
		slog.String("loan_id", loanID.Hex()),
		slog.Int("installment_index", int(index)),
		slog.Float64("paid_amount", paidAmount),
	)
	return loan, nil
}

// NextDue returns the unpaid installment with the earliest due date, breaking
// due-date ties by the lower index. Returns nil when the loan is settled.
func NextDue(loan *models.Loans) *models.Installment {
	var next *models.Installment
	for i := range loan.Installments {
		inst := &loan.Installments[i]
		if inst.Status == consts.InstallmentStatusPaid {
			continue
		}
		if next == nil ||
			inst.DueDate.Before(next.DueDate) ||
			(inst.DueDate.Equal(next.DueDate) && inst.Index < next.Index) {
			next = inst
		}
	}
	return next
}

// RemainingBalance sums the unpaid installments. When the cached total on the
// loan document has drifted from the recomputed sum, the sum wins and the
// cached total is rewritten to match. Drift repair never fails the read.
func (s *LedgerService) RemainingBalance(ctx context.Context, loanID primitive.ObjectID) (float64, error) {
	loan, err := s.loans.GetLoanByID(ctx, loanID)
	if err != nil {
		return 0, err
	}

	balance := amortization.RemainingBalance(loan.Installments)

	var paid decimal.Decimal
	for _, inst := range loan.Installments {
		if inst.Status == consts.InstallmentStatusPaid {
			paid = paid.Add(decimal.NewFromFloat(inst.Amount))
		}
	}
	cached := decimal.NewFromFloat(loan.TotalOwed).Sub(paid).Round(2)
	if !cached.Equal(balance) {
		logger.CtxWarn(ctx, log_messages.BalanceDriftDetected,
			slog.String("loan_id", loanID.Hex()),
			slog.String("cached", cached.String()),
			slog.String("recomputed", balance.String()),
		)
		corrected := paid.Add(balance).Round(2).InexactFloat64()
		if err := s.loans.SetTotalOwed(ctx, loanID, corrected); err != nil {
			logger.CtxError(ctx, "Failed to repair drifted loan total", err,
				slog.String("loan_id", loanID.Hex()))
		}
	}

	return balance.InexactFloat64(), nil
}

// Overview is the ledger snapshot served to callers: every installment with
// its effective status plus the derived aggregates.
type Overview struct {
	Loan             *models.Loans
	EffectiveStatus  []consts.InstallmentStatus
	NextDue          *models.Installment
	RemainingBalance float64
	LateCount        int
	Settled          bool
}

func (s *LedgerService) GetOverview(ctx context.Context, loanID primitive.ObjectID) (*Overview, error) {
	loan, err := s.loans.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	statuses := make([]consts.InstallmentStatus, len(loan.Installments))
	lateCount := 0
	for i, inst := range loan.Installments {
		statuses[i] = EffectiveStatus(inst, at)
		if statuses[i] == consts.InstallmentStatusLate {
			lateCount++
		}
	}

	next := NextDue(loan)
	return &Overview{
		Loan:             loan,
		EffectiveStatus:  statuses,
		NextDue:          next,
		RemainingBalance: amortization.RemainingBalance(loan.Installments).InexactFloat64(),
		LateCount:        lateCount,
		Settled:          next == nil,
	}, nil
}
