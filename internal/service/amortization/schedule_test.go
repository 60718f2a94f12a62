package amortization

import (
	"testing"
	"time"

	"loanservicing/internal/pkg/consts"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scheduleStart = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestBuildSchedule(t *testing.T) {
	t.Run("5000 at 5 percent over 12 installments", func(t *testing.T) {
		schedule, err := BuildSchedule(5000, 0.05, 12, 1.0, scheduleStart)
		require.NoError(t, err)

		assert.Equal(t, 5250.0, schedule.TotalOwed)
		assert.Equal(t, 437.50, schedule.InstallmentAmount)
		assert.Equal(t, 437.50, schedule.FinalAmount)
		assert.Len(t, schedule.Installments, 12)
	})

	t.Run("due dates advance in 30 day periods", func(t *testing.T) {
		schedule, err := BuildSchedule(5000, 0.05, 3, 1.0, scheduleStart)
		require.NoError(t, err)

		assert.Equal(t, scheduleStart.AddDate(0, 0, 30), schedule.Installments[0].DueDate)
		assert.Equal(t, scheduleStart.AddDate(0, 0, 60), schedule.Installments[1].DueDate)
		assert.Equal(t, scheduleStart.AddDate(0, 0, 90), schedule.Installments[2].DueDate)
	})

	t.Run("final installment absorbs rounding remainder", func(t *testing.T) {
		schedule, err := BuildSchedule(1000, 0.05, 7, 1.0, scheduleStart)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, inst := range schedule.Installments {
			sum = sum.Add(decimal.NewFromFloat(inst.Amount))
		}
		assert.True(t, sum.Equal(decimal.NewFromFloat(schedule.TotalOwed)),
			"installments sum %s, total %v", sum, schedule.TotalOwed)
	})

	t.Run("installment amounts always sum to total", func(t *testing.T) {
		cases := []struct {
			principal float64
			rate      float64
			n         int
		}{
			{5000, 0.05, 12},
			{333.33, 0.07, 5},
			{10000, 0.035, 24},
			{777.77, 0.12, 13},
			{50, 0, 3},
		}
		for _, tc := range cases {
			schedule, err := BuildSchedule(tc.principal, tc.rate, tc.n, 1.0, scheduleStart)
			require.NoError(t, err)

			sum := decimal.Zero
			for _, inst := range schedule.Installments {
				sum = sum.Add(decimal.NewFromFloat(inst.Amount))
			}
			assert.True(t, sum.Equal(decimal.NewFromFloat(schedule.TotalOwed)),
				"principal %v rate %v n %d: sum %s total %v", tc.principal, tc.rate, tc.n, sum, schedule.TotalOwed)
		}
	})

	t.Run("negotiated multiplier scales the total", func(t *testing.T) {
		schedule, err := BuildSchedule(5000, 0.05, 12, 1.1, scheduleStart)
		require.NoError(t, err)

		assert.Equal(t, 5775.0, schedule.TotalOwed)
	})

	t.Run("zero multiplier falls back to 1.0", func(t *testing.T) {
		schedule, err := BuildSchedule(5000, 0.05, 12, 0, scheduleStart)
		require.NoError(t, err)

		assert.Equal(t, 5250.0, schedule.TotalOwed)
	})

	t.Run("single installment carries the whole total", func(t *testing.T) {
		schedule, err := BuildSchedule(1200, 0.05, 1, 1.0, scheduleStart)
		require.NoError(t, err)

		assert.Len(t, schedule.Installments, 1)
		assert.Equal(t, schedule.TotalOwed, schedule.Installments[0].Amount)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := BuildSchedule(0, 0.05, 12, 1.0, scheduleStart)
		assert.ErrorIs(t, err, consts.ErrorInvalidPrincipal)

		_, err = BuildSchedule(-100, 0.05, 12, 1.0, scheduleStart)
		assert.ErrorIs(t, err, consts.ErrorInvalidPrincipal)

		_, err = BuildSchedule(5000, -0.01, 12, 1.0, scheduleStart)
		assert.ErrorIs(t, err, consts.ErrorInvalidRate)

		_, err = BuildSchedule(5000, 0.05, 0, 1.0, scheduleStart)
		assert.ErrorIs(t, err, consts.ErrorInvalidInstallmentCount)
	})
}

func TestRemainingBalance(t *testing.T) {
	schedule, err := BuildSchedule(5000, 0.05, 12, 1.0, scheduleStart)
	require.NoError(t, err)

	balance := RemainingBalance(schedule.Installments)
	assert.True(t, balance.Equal(decimal.NewFromFloat(5250)))

	schedule.Installments[0].Status = consts.InstallmentStatusPaid
	schedule.Installments[1].Status = consts.InstallmentStatusPaid

	balance = RemainingBalance(schedule.Installments)
	assert.True(t, balance.Equal(decimal.NewFromFloat(4375)), "got %s", balance)
}
