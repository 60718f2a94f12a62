package renegotiation

import (
	"context"
	"log/slog"
	"time"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/service/amortization"
	"loanservicing/internal/service/interfaces"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RenegotiationService reworks the unpaid tail of a loan into a new
// installment plan behind an accept/reject proposal flow.
type RenegotiationService struct {
	proposals interfaces.ProposalRepositoryInterface
	loans     interfaces.LoanRepositoryInterface
	policy    config.PolicyConfig
	now       func() time.Time
}

func NewRenegotiationService(
	proposals interfaces.ProposalRepositoryInterface,
	loans interfaces.LoanRepositoryInterface,
	policy config.PolicyConfig,
) *RenegotiationService {
	return &RenegotiationService{
		proposals: proposals,
		loans:     loans,
		policy:    policy,
		now:       time.Now,
	}
}

// Propose offers a new plan over the loan's current remaining balance. The
// new total is balance x (1 + rate x n/12) and the proposal stays open for
// the configured expiry window.
func (s *RenegotiationService) Propose(ctx context.Context, loanID primitive.ObjectID, installments int) (*models.RenegotiationProposals, error) {
	if installments < consts.MinRenegotiationInstallments || installments > consts.MaxRenegotiationInstallments {
		return nil, consts.ErrorInvalidInstallmentCount
	}

	loan, err := s.loans.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	balance := amortization.RemainingBalance(loan.Installments)
	if balance.IsZero() {
		return nil, consts.ErrorAlreadyPaid
	}

	rate := s.policy.RenegotiationRate
	total := amortization.TotalOwed(balance.InexactFloat64(), rate, installments, 1.0)
	// Rounded up to the cent so the quoted amount times the count always
	// covers the balance, even at a zero renegotiation rate.
	per := total.Div(decimal.NewFromInt(int64(installments))).RoundUp(2)

	now := s.now().UTC()
	proposal := &models.RenegotiationProposals{
		LoanID:            loanID,
		CustomerID:        loan.CustomerID,
		Balance:           balance.InexactFloat64(),
		MonthlyRate:       rate,
		Installments:      int32(installments),
		InstallmentAmount: per.InexactFloat64(),
		TotalOwed:         total.InexactFloat64(),
		Status:            consts.ProposalStatusPending,
		ExpiresAt:         now.AddDate(0, 0, s.policy.ProposalExpiryDays),
		CreatedAt:         now,
	}

	id, err := s.proposals.CreateProposal(ctx, proposal)
	if err != nil {
		return nil, err
	}
	proposal.ID = id

	logger.CtxInfo(ctx, "Renegotiation proposed",
		slog.String("loan_id", loanID.Hex()),
		slog.String("proposal_id", id.Hex()),
		slog.Float64("balance", proposal.Balance),
		slog.Int("installments", installments),
	)
	return proposal, nil
}

// Accept applies a pending proposal: paid installments stay untouched and the
// open tail is replaced by the proposal's plan, anchored at acceptance time.
// Expiry is checked before pending-ness, so an expired proposal always reads
// as expired even if a stale accept races the expiry sweep.
func (s *RenegotiationService) Accept(ctx context.Context, proposalID primitive.ObjectID) (*models.Loans, error) {
	proposal, err := s.proposals.GetProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if now.After(proposal.ExpiresAt) {
		// Mark it expired on the way out so later reads agree.
		if proposal.Status == consts.ProposalStatusPending {
			_, _ = s.proposals.ResolveProposal(ctx, proposalID,
				consts.ProposalStatusPending, consts.ProposalStatusExpired, now)
		}
		return nil, consts.ErrorProposalExpired
	}
	if proposal.Status != consts.ProposalStatusPending {
		return nil, consts.ErrorAlreadyResolved
	}

	loan, err := s.loans.GetLoanByID(ctx, proposal.LoanID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.proposals.ResolveProposal(ctx, proposalID,
		consts.ProposalStatusPending, consts.ProposalStatusAccepted, now)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, consts.ErrorAlreadyResolved
	}

	schedule, err := amortization.BuildSchedule(
		proposal.Balance,
		proposal.MonthlyRate,
		int(proposal.Installments),
		1.0,
		now,
	)
	if err != nil {
		return nil, err
	}

	// Keep paid installments, replace the open tail. Paid installments retain
	// their original indexes and payments can land on any open installment,
	// so the new part is numbered past every index the plan has ever used.
	// Reused indexes would collide with a kept paid twin on payment lookup
	// and on the reminder dedup key.
	var kept []models.Installment
	var paidTotal decimal.Decimal
	var nextIndex int32
	for _, inst := range loan.Installments {
		if inst.Index >= nextIndex {
			nextIndex = inst.Index + 1
		}
		if inst.Status == consts.InstallmentStatusPaid {
			kept = append(kept, inst)
			paidTotal = paidTotal.Add(decimal.NewFromFloat(inst.Amount))
		}
	}
	for _, inst := range schedule.Installments {
		inst.Index = nextIndex
		kept = append(kept, inst)
		nextIndex++
	}

	newTotal := paidTotal.Add(decimal.NewFromFloat(schedule.TotalOwed)).Round(2).InexactFloat64()
	if err := s.loans.ReplaceUnpaidInstallments(ctx, loan.ID, kept, newTotal, proposal.MonthlyRate, proposalID, now); err != nil {
		return nil, err
	}

	loan.Installments = kept
	loan.TotalOwed = newTotal
	loan.MonthlyRate = proposal.MonthlyRate
	loan.AcceptedProposalID = proposalID
	loan.RenegotiatedAt = &now

	logger.CtxInfo(ctx, "Renegotiation accepted",
		slog.String("loan_id", loan.ID.Hex()),
		slog.String("proposal_id", proposalID.Hex()),
		slog.Float64("new_total", newTotal),
	)
	return loan, nil
}

// Reject closes a pending proposal without touching the loan.
func (s *RenegotiationService) Reject(ctx context.Context, proposalID primitive.ObjectID) error {
	proposal, err := s.proposals.GetProposalByID(ctx, proposalID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if now.After(proposal.ExpiresAt) {
		return consts.ErrorProposalExpired
	}
	if proposal.Status != consts.ProposalStatusPending {
		return consts.ErrorAlreadyResolved
	}

	rejected, err := s.proposals.ResolveProposal(ctx, proposalID,
		consts.ProposalStatusPending, consts.ProposalStatusRejected, now)
	if err != nil {
		return err
	}
	if !rejected {
		return consts.ErrorAlreadyResolved
	}
	return nil
}

// ExpireStale sweeps pending proposals past their expiry window. Wired into
// the daily scheduler next to the collection pass.
func (s *RenegotiationService) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := s.proposals.ExpireStaleProposals(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.CtxInfo(ctx, "Expired stale renegotiation proposals", slog.Int64("count", expired))
	}
	return expired, nil
}
