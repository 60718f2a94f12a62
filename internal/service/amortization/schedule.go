package amortization

import (
	"time"

	"loanservicing/internal/pkg/consts"
	"loanservicing/internal/pkg/store/models"

	"github.com/shopspring/decimal"
)

// Schedule is a fully computed flat-interest repayment plan.
type Schedule struct {
	Principal         float64
	MonthlyRate       float64
	TotalOwed         float64
	InstallmentAmount float64
	FinalAmount       float64
	Installments      []models.Installment
}

var twelve = decimal.NewFromInt(12)

// TotalOwed computes principal x (1 + monthlyRate x n/12), rounded to cents.
// The multiplier scales the total for negotiated deals and is 1.0 otherwise.
func TotalOwed(principal, monthlyRate float64, installments int, multiplier float64) decimal.Decimal {
	p := decimal.NewFromFloat(principal)
	rate := decimal.NewFromFloat(monthlyRate)
	n := decimal.NewFromInt(int64(installments))

	factor := decimal.NewFromInt(1).Add(rate.Mul(n).Div(twelve))
	return p.Mul(factor).Mul(decimal.NewFromFloat(multiplier)).Round(2)
}

// BuildSchedule computes the installment plan for a loan starting at startDate.
// Every installment carries round(total/n) and the final one absorbs the
// rounding remainder, so the amounts always sum back to the total owed.
// Due dates advance in fixed 30-day periods from the start date.
func BuildSchedule(
	principal float64,
	monthlyRate float64,
	installments int,
	multiplier float64,
	startDate time.Time,
) (*Schedule, error) {
	if principal <= 0 {
		return nil, consts.ErrorInvalidPrincipal
	}
	if monthlyRate < 0 {
		return nil, consts.ErrorInvalidRate
	}
	if installments < 1 {
		return nil, consts.ErrorInvalidInstallmentCount
	}
	if multiplier <= 0 {
		multiplier = 1.0
	}

	total := TotalOwed(principal, monthlyRate, installments, multiplier)
	n := decimal.NewFromInt(int64(installments))

	per := total.Div(n).Round(2)
	final := total.Sub(per.Mul(decimal.NewFromInt(int64(installments - 1))))

	plan := make([]models.Installment, 0, installments)
	for i := 0; i < installments; i++ {
		amount := per
		if i == installments-1 {
			amount = final
		}
		plan = append(plan, models.Installment{
			Index:   int32(i),
			Amount:  amount.InexactFloat64(),
			DueDate: startDate.AddDate(0, 0, consts.InstallmentPeriodDays*(i+1)),
			Status:  consts.InstallmentStatusOpen,
		})
	}

	return &Schedule{
		Principal:         principal,
		MonthlyRate:       monthlyRate,
		TotalOwed:         total.InexactFloat64(),
		InstallmentAmount: per.InexactFloat64(),
		FinalAmount:       final.InexactFloat64(),
		Installments:      plan,
	}, nil
}

// RemainingBalance sums the amounts of every installment not yet paid.
func RemainingBalance(installments []models.Installment) decimal.Decimal {
	balance := decimal.Zero
	for _, inst := range installments {
		if inst.Status != consts.InstallmentStatusPaid {
			balance = balance.Add(decimal.NewFromFloat(inst.Amount))
		}
	}
	return balance.Round(2)
}
