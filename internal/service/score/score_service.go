package score

import (
	"context"
	"log/slog"
	"time"

	"loanservicing/internal/pkg/config"
	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/log_messages"
	"loanservicing/internal/pkg/logger"
	"loanservicing/internal/pkg/store/models"
	"loanservicing/internal/pkg/utils"
	"loanservicing/internal/service/interfaces"
	"loanservicing/internal/service/ledger"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreService projects a customer's installment history into a bounded
// score. The projection is recomputed on every read and never cached; the
// persisted customer score only changes through an admin override.
type ScoreService struct {
	customers interfaces.CustomerRepositoryInterface
	loans     interfaces.LoanRepositoryInterface
	policy    config.PolicyConfig
	now       func() time.Time
}

func NewScoreService(
	customers interfaces.CustomerRepositoryInterface,
	loans interfaces.LoanRepositoryInterface,
	policy config.PolicyConfig,
) *ScoreService {
	return &ScoreService{
		customers: customers,
		loans:     loans,
		policy:    policy,
		now:       time.Now,
	}
}

// Factors is the breakdown of what went into a score.
type Factors struct {
	OnTimeCount  int     `json:"onTimeCount"`
	LateCount    int     `json:"lateCount"`
	AvgDelayDays float64 `json:"avgDelayDays"`
	TotalLoans   int     `json:"totalLoans"`
	ActiveLoans  int     `json:"activeLoans"`
	TenureMonths int     `json:"tenureMonths"`
}

type Report struct {
	CustomerID     primitive.ObjectID `json:"customerId"`
	Score          int32              `json:"score"`
	Level          consts.ScoreLevel  `json:"level"`
	Factors        Factors            `json:"factors"`
	SuggestedLimit float64            `json:"suggestedLimit"`
	ComputedAt     time.Time          `json:"computedAt"`
}

// Recompute walks every installment on every loan the customer has, paid or
// not, and maps the history into a score. Cost is linear in the customer's
// installment count.
func (s *ScoreService) Recompute(ctx context.Context, customerID primitive.ObjectID) (*Report, error) {
	if _, err := s.customers.GetCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.loans.GetLoansByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := utils.TruncateToDay(now)
	factors := Factors{TotalLoans: len(loans)}

	var firstStart time.Time
	var totalDelayDays int
	var installmentCount int
	amountSum := decimal.Zero

	for i := range loans {
		loan := &loans[i]
		if firstStart.IsZero() || loan.StartDate.Before(firstStart) {
			firstStart = loan.StartDate
		}

		active := false
		for _, inst := range loan.Installments {
			installmentCount++
			amountSum = amountSum.Add(decimal.NewFromFloat(inst.Amount))
			dueDay := utils.TruncateToDay(inst.DueDate)

			switch ledger.EffectiveStatus(inst, now) {
			case consts.InstallmentStatusPaid:
				delay := 0
				if inst.PaidAt != nil {
					delay = delayInDays(utils.TruncateToDay(*inst.PaidAt), dueDay)
				}
				if delay <= 0 {
					factors.OnTimeCount++
				} else {
					factors.LateCount++
					totalDelayDays += delay
				}
			case consts.InstallmentStatusLate:
				active = true
				factors.LateCount++
				totalDelayDays += delayInDays(today, dueDay)
			default:
				active = true
			}
		}
		if active {
			factors.ActiveLoans++
		}
	}

	if factors.LateCount > 0 {
		factors.AvgDelayDays = float64(totalDelayDays) / float64(factors.LateCount)
	}
	if !firstStart.IsZero() {
		factors.TenureMonths = int(today.Sub(utils.TruncateToDay(firstStart)).Hours() / 24 / consts.InstallmentPeriodDays)
	}

	score := clampScore(consts.ScoreInitial +
		factors.OnTimeCount*consts.ScoreOnTimeBonus +
		factors.TenureMonths*consts.ScoreTenureMonthBonus -
		factors.LateCount*consts.ScoreLatePenalty -
		totalDelayDays*consts.ScoreDelayDayPenalty)

	return &Report{
		CustomerID:     customerID,
		Score:          score,
		Level:          LevelFor(score),
		Factors:        factors,
		SuggestedLimit: s.suggestedLimit(score, amountSum, installmentCount),
		ComputedAt:     now,
	}, nil
}

// OverrideScore persists an administrative score, bypassing the projection.
func (s *ScoreService) OverrideScore(ctx context.Context, customerID primitive.ObjectID, newScore int32, reason string) error {
	if newScore < consts.ScoreFloor || newScore > consts.ScoreCeiling {
		return consts.ErrorScoreOutOfRange
	}
	if _, err := s.customers.GetCustomerByID(ctx, customerID); err != nil {
		return err
	}
	if err := s.customers.SetScore(ctx, customerID, newScore); err != nil {
		return err
	}
	logger.CtxInfo(ctx, log_messages.ScoreOverridden,
		slog.String("customer_id", customerID.Hex()),
		slog.Int("score", int(newScore)),
		slog.String("reason", reason),
	)
	return nil
}

// GeneratePreApproval stores a pre-approved offer on the customer. A
// non-positive amount falls back to the projected suggested limit.
func (s *ScoreService) GeneratePreApproval(ctx context.Context, customerID primitive.ObjectID, amount float64, installments int) (*models.PreApprovedOffer, error) {
	if amount <= 0 {
		report, err := s.Recompute(ctx, customerID)
		if err != nil {
			return nil, err
		}
		amount = report.SuggestedLimit
	}
	if amount <= 0 {
		return nil, consts.ErrorInvalidPrincipal
	}
	if installments <= 0 {
		installments = consts.DefaultOfferInstallments
	}

	now := s.now().UTC()
	offer := &models.PreApprovedOffer{
		Amount:       amount,
		Installments: int32(installments),
		MonthlyRate:  s.policy.MonthlyInterestRate,
		GeneratedAt:  now,
		ExpiresAt:    now.AddDate(0, 0, consts.PreApprovalValidityDays),
	}
	if err := s.customers.SetPreApprovedOffer(ctx, customerID, offer); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, log_messages.PreApprovalGenerated,
		slog.String("customer_id", customerID.Hex()),
		slog.Float64("amount", amount),
	)
	return offer, nil
}

// LevelFor buckets a score into its discrete band.
func LevelFor(score int32) consts.ScoreLevel {
	switch {
	case score >= consts.ScoreLevelExcellentMin:
		return consts.ScoreLevelExcellent
	case score >= consts.ScoreLevelGoodMin:
		return consts.ScoreLevelGood
	case score >= consts.ScoreLevelRegularMin:
		return consts.ScoreLevelRegular
	case score >= consts.ScoreLevelBadMin:
		return consts.ScoreLevelBad
	default:
		return consts.ScoreLevelCritical
	}
}

// suggestedLimit scales the customer's average installment capacity by how
// far the score sits from the policy base score.
func (s *ScoreService) suggestedLimit(score int32, amountSum decimal.Decimal, installmentCount int) float64 {
	if installmentCount == 0 {
		return 0
	}
	base := s.policy.SuggestedLimitBaseScore
	if base <= 0 {
		base = consts.ScoreInitial
	}
	avg := amountSum.Div(decimal.NewFromInt(int64(installmentCount)))
	limit := avg.
		Mul(decimal.NewFromInt(consts.SuggestedLimitMultiplier)).
		Mul(decimal.NewFromInt(int64(score))).
		Div(decimal.NewFromInt(int64(base))).
		Round(2)
	f, _ := limit.Float64()
	if f < 0 {
		return 0
	}
	return f
}

func delayInDays(day, dueDay time.Time) int {
	return int(day.Sub(dueDay).Hours() / 24)
}

func clampScore(score int) int32 {
	if score < consts.ScoreFloor {
		return consts.ScoreFloor
	}
	if score > consts.ScoreCeiling {
		return consts.ScoreCeiling
	}
	return int32(score)
}
