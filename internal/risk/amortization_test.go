package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

func TestComputeSchedule_ZeroInterest(t *testing.T) {
	plan, err := ComputeSchedule(1200, 12, 0, testStart, nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, plan.MonthlyPayment)
	assert.Equal(t, 0.0, plan.TotalInterest)
	assert.Equal(t, 1200.0, plan.TotalCost)
	require.Len(t, plan.Schedule, 12)
	for _, entry := range plan.Schedule {
		assert.Equal(t, 0.0, entry.Interest)
	}
	assert.Equal(t, 0.0, plan.Schedule[11].RemainingBalance)
}

func TestComputeSchedule_PrincipalSumsToAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		n      int
		rate   float64
	}{
		{"small zero rate", 300, 6, 0},
		{"odd amount zero rate", 1000, 3, 0},
		{"with interest", 1200, 6, 15},
		{"long term", 25000, 48, 9.5},
		{"high rate", 700, 12, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ComputeSchedule(tt.amount, tt.n, tt.rate, testStart, nil)
			require.NoError(t, err)
			require.Len(t, plan.Schedule, tt.n)

			sum := 0.0
			for _, entry := range plan.Schedule {
				sum += entry.Principal
			}
			assert.InDelta(t, tt.amount, sum, 0.01)
			assert.Equal(t, 0.0, plan.Schedule[tt.n-1].RemainingBalance)
		})
	}
}

func TestComputeSchedule_BalanceDecreasesMonotonically(t *testing.T) {
	plan, err := ComputeSchedule(5000, 24, 12, testStart, nil)
	require.NoError(t, err)

	prev := 5000.0
	for _, entry := range plan.Schedule {
		assert.Less(t, entry.RemainingBalance, prev)
		prev = entry.RemainingBalance
	}
}

func TestComputeSchedule_AnnuityPayment(t *testing.T) {
	// 10000 at 12% over 24 months: the standard annuity payment is 470.73.
	plan, err := ComputeSchedule(10000, 24, 12, testStart, nil)
	require.NoError(t, err)
	assert.InDelta(t, 470.73, plan.MonthlyPayment, 0.01)
	assert.InDelta(t, 1297.63, plan.TotalInterest, 0.05)
}

func TestComputeSchedule_SinglePayment(t *testing.T) {
	plan, err := ComputeSchedule(1000, 1, 12, testStart, nil)
	require.NoError(t, err)
	require.Len(t, plan.Schedule, 1)

	entry := plan.Schedule[0]
	assert.Equal(t, 1000.0, entry.Principal)
	assert.Equal(t, 10.0, entry.Interest) // one month at 1%
	assert.Equal(t, 1010.0, entry.TotalPayment)
	assert.Equal(t, 0.0, entry.RemainingBalance)
}

func TestComputeSchedule_DueDatesMonthly(t *testing.T) {
	plan, err := ComputeSchedule(300, 3, 0, testStart, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), plan.Schedule[0].DueDate)
	assert.Equal(t, time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC), plan.Schedule[1].DueDate)
	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), plan.Schedule[2].DueDate)
}

func TestComputeSchedule_InvalidTerms(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		n      int
		rate   float64
	}{
		{"zero amount", 0, 6, 10},
		{"negative amount", -50, 6, 10},
		{"zero payments", 500, 0, 10},
		{"negative rate", 500, 6, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSchedule(tt.amount, tt.n, tt.rate, testStart, nil)
			require.ErrorIs(t, err, ErrInvalidTerms)
		})
	}
}

func TestComputeSchedule_CustomConvention(t *testing.T) {
	// A quarterly convention: interest accrues at annual/4 per period.
	quarterly := func(annualPct float64) float64 { return annualPct / 100 / 4 }
	plan, err := ComputeSchedule(1200, 12, 18, testStart, quarterly)
	require.NoError(t, err)
	// First period interest on the full balance at 4.5%.
	assert.Equal(t, 54.0, plan.Schedule[0].Interest)
}
