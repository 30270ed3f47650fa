package progress_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/progress"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

var startDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func testSchedule(t *testing.T) *domain.Schedule {
	t.Helper()
	schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
	require.NoError(t, err)
	return schedule
}

func payment(amount int64) *domain.PaymentEvent {
	return &domain.PaymentEvent{
		ID:       uuid.New(),
		HolderID: "HOLDER-001",
		Amount:   decimal.NewFromInt(amount),
		Bonus:    decimal.Zero,
	}
}

func TestCompute(t *testing.T) {
	day28 := startDate.AddDate(0, 0, 28)

	tests := []struct {
		name             string
		payments         []*domain.PaymentEvent
		now              time.Time
		wantTotalPaid    int64
		wantPaidWeeks    int
		wantPending      int64
		wantCurrentWeek  int
		wantOverdueWeeks int
	}{
		{
			name:             "Empty payment set",
			payments:         nil,
			now:              day28,
			wantTotalPaid:    0,
			wantPaidWeeks:    0,
			wantPending:      5200,
			wantCurrentWeek:  4,
			wantOverdueWeeks: 4,
		},
		{
			name:             "Two and a half weeks paid, four elapsed",
			payments:         []*domain.PaymentEvent{payment(100), payment(150)},
			now:              day28,
			wantTotalPaid:    250,
			wantPaidWeeks:    2,
			wantPending:      4950,
			wantCurrentWeek:  4,
			wantOverdueWeeks: 2,
		},
		{
			name:             "Ahead of schedule",
			payments:         []*domain.PaymentEvent{payment(100), payment(150), payment(400)},
			now:              day28,
			wantTotalPaid:    650,
			wantPaidWeeks:    6,
			wantPending:      4550,
			wantCurrentWeek:  4,
			wantOverdueWeeks: -2,
		},
		{
			name:             "Before start date current week is zero",
			payments:         []*domain.PaymentEvent{payment(100)},
			now:              startDate.AddDate(0, 0, -3),
			wantTotalPaid:    100,
			wantPaidWeeks:    1,
			wantPending:      5100,
			wantCurrentWeek:  0,
			wantOverdueWeeks: -1,
		},
		{
			name:             "Overpayment clamps paid weeks but not pending",
			payments:         []*domain.PaymentEvent{payment(10400)},
			now:              day28,
			wantTotalPaid:    10400,
			wantPaidWeeks:    52,
			wantPending:      -5200,
			wantCurrentWeek:  4,
			wantOverdueWeeks: -48,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := testSchedule(t)

			snapshot, err := progress.Compute(schedule, tt.payments, tt.now)

			require.NoError(t, err)
			assert.True(t, snapshot.TotalPaid.Equal(decimal.NewFromInt(tt.wantTotalPaid)))
			assert.Equal(t, tt.wantPaidWeeks, snapshot.PaidWeeks)
			assert.True(t, snapshot.PendingAmount.Equal(decimal.NewFromInt(tt.wantPending)),
				"pending = %s", snapshot.PendingAmount)
			assert.Equal(t, tt.wantCurrentWeek, snapshot.CurrentWeek)
			assert.Equal(t, tt.wantOverdueWeeks, snapshot.OverdueWeeks)
			assert.Equal(t, 52-tt.wantPaidWeeks, snapshot.RemainingWeeks)
			assert.Equal(t, startDate.AddDate(0, 0, 7*(tt.wantPaidWeeks+1)), snapshot.NextDueDate)
		})
	}
}

func TestCompute_Pure(t *testing.T) {
	schedule := testSchedule(t)
	payments := []*domain.PaymentEvent{payment(100), payment(150)}
	now := startDate.AddDate(0, 0, 28)

	first, err := progress.Compute(schedule, payments, now)
	require.NoError(t, err)
	second, err := progress.Compute(schedule, payments, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_WeeklyTimesDurationEqualsTotal(t *testing.T) {
	amounts := []int64{5200, 9999, 123457}
	for _, amount := range amounts {
		schedule, err := domain.NewSchedule("HOLDER-001", "custom", decimal.NewFromInt(amount), 52, startDate)
		require.NoError(t, err)

		product := schedule.WeeklyAmount().Mul(decimal.NewFromInt(52))
		diff := product.Sub(schedule.TotalAmount).Abs()
		tolerance := schedule.TotalAmount.Mul(decimal.NewFromFloat(1e-9))
		assert.True(t, diff.LessThanOrEqual(tolerance),
			"weekly*duration=%s, total=%d", product, amount)
	}
}

func TestCompute_MonotonicUnderNewPayment(t *testing.T) {
	schedule := testSchedule(t)
	now := startDate.AddDate(0, 0, 28)
	payments := []*domain.PaymentEvent{payment(100)}

	before, err := progress.Compute(schedule, payments, now)
	require.NoError(t, err)

	extra := payment(170)
	after, err := progress.Compute(schedule, append(payments, extra), now)
	require.NoError(t, err)

	assert.True(t, after.TotalPaid.GreaterThan(before.TotalPaid))
	assert.GreaterOrEqual(t, after.PaidWeeks, before.PaidWeeks)
	assert.True(t, before.PendingAmount.Sub(after.PendingAmount).Equal(extra.Amount))
}

func TestCompute_Errors(t *testing.T) {
	now := startDate.AddDate(0, 0, 28)

	t.Run("Nil schedule", func(t *testing.T) {
		_, err := progress.Compute(nil, nil, now)
		assert.ErrorIs(t, err, customError.ErrComputation)
	})

	t.Run("Invalid schedule terms", func(t *testing.T) {
		schedule := &domain.Schedule{
			HolderID:      "HOLDER-001",
			TotalAmount:   decimal.NewFromInt(5200),
			DurationWeeks: 0,
			StartDate:     startDate,
		}
		_, err := progress.Compute(schedule, nil, now)
		assert.ErrorIs(t, err, customError.ErrInvalidSchedule)
	})

	t.Run("Negative payment amount", func(t *testing.T) {
		schedule := testSchedule(t)
		_, err := progress.Compute(schedule, []*domain.PaymentEvent{payment(-50)}, now)
		assert.ErrorIs(t, err, customError.ErrComputation)
	})
}
