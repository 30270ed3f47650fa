package notify_test

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/notify"
	"github.com/fintrack/scheme-engine/internal/progress"
)

var startDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func testHolder() *domain.Holder {
	return &domain.Holder{
		ID:           uuid.New(),
		HolderID:     "HOLDER-001",
		Name:         "Asha Varma",
		SerialNumber: "SR-042",
		MobileNumber: "919876543210",
		IsActive:     true,
	}
}

func testPolicy() *notify.Policy {
	return notify.NewPolicy(1, "Rs.", "Finance Tracker")
}

func TestIsReminderDue(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		overdueWeeks int
		want         bool
	}{
		{overdueWeeks: -3, want: false},
		{overdueWeeks: 0, want: false},
		{overdueWeeks: 1, want: false}, // exactly one week behind is within grace
		{overdueWeeks: 2, want: true},
		{overdueWeeks: 10, want: true},
	}

	for _, tt := range tests {
		snapshot := &domain.ProgressSnapshot{OverdueWeeks: tt.overdueWeeks}
		assert.Equal(t, tt.want, policy.IsReminderDue(snapshot), "overdueWeeks=%d", tt.overdueWeeks)
	}
}

func TestRenderConfirmation_FieldPresence(t *testing.T) {
	policy := testPolicy()
	holder := testHolder()

	schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
	require.NoError(t, err)

	payment := &domain.PaymentEvent{
		ID:          uuid.New(),
		HolderID:    "HOLDER-001",
		Amount:      decimal.NewFromInt(250),
		OccurredAt:  startDate.AddDate(0, 0, 14),
		PaymentMode: "UPI",
		ReceiptRef:  "RCPT-77",
		Bonus:       decimal.NewFromInt(10),
	}

	snapshot, err := progress.Compute(schedule, []*domain.PaymentEvent{payment}, startDate.AddDate(0, 0, 14))
	require.NoError(t, err)

	message := policy.RenderConfirmation(holder, payment, schedule, snapshot)

	assert.Contains(t, message, "Asha Varma")
	assert.Contains(t, message, "SR-042")
	assert.Contains(t, message, "Amount: Rs.250")
	assert.Contains(t, message, "Date: Jan 20, 2025")
	assert.Contains(t, message, "Mode: UPI")
	assert.Contains(t, message, "Receipt: RCPT-77")
	assert.Contains(t, message, "Scheme: gold-52")
	assert.Contains(t, message, "Weekly Amount: Rs.100")
	assert.Contains(t, message, "Total Amount: Rs.5200")
	assert.Contains(t, message, "Pending Amount: Rs.4950")
	assert.Contains(t, message, "Total Bonus Earned: Rs.10")
	// next due = start + (paidWeeks+1)=3 weeks = Jan 27, 2025
	assert.Contains(t, message, "Jan 27, 2025")
}

func TestRenderConfirmation_ReceiptDefaultsToPlaceholder(t *testing.T) {
	policy := testPolicy()
	holder := testHolder()

	schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
	require.NoError(t, err)

	payment := &domain.PaymentEvent{
		ID:          uuid.New(),
		HolderID:    "HOLDER-001",
		Amount:      decimal.NewFromInt(100),
		OccurredAt:  startDate,
		PaymentMode: "cash",
		Bonus:       decimal.Zero,
	}

	snapshot, err := progress.Compute(schedule, []*domain.PaymentEvent{payment}, startDate)
	require.NoError(t, err)

	message := policy.RenderConfirmation(holder, payment, schedule, snapshot)

	assert.Contains(t, message, "Receipt: N/A")
}

func TestRenderConfirmation_RoundsHalfUpAtRenderOnly(t *testing.T) {
	policy := testPolicy()
	holder := testHolder()

	// 5000 / 52 = 96.15... weekly; rounds to 96 in the message only.
	schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5000), 52, startDate)
	require.NoError(t, err)

	payment := &domain.PaymentEvent{
		ID:          uuid.New(),
		HolderID:    "HOLDER-001",
		Amount:      decimal.NewFromFloat(100.50),
		OccurredAt:  startDate,
		PaymentMode: "cash",
		Bonus:       decimal.Zero,
	}

	snapshot, err := progress.Compute(schedule, []*domain.PaymentEvent{payment}, startDate)
	require.NoError(t, err)

	message := policy.RenderConfirmation(holder, payment, schedule, snapshot)

	assert.Contains(t, message, "Weekly Amount: Rs.96")
	// pending = 5000 - 100.50 = 4899.50, rounds half up to 4900
	assert.Contains(t, message, "Pending Amount: Rs.4900")
	// the snapshot itself stays exact
	assert.True(t, snapshot.PendingAmount.Equal(decimal.NewFromFloat(4899.50)))
}

func TestRenderReminder_RoundTrip(t *testing.T) {
	policy := testPolicy()
	holder := testHolder()

	schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
	require.NoError(t, err)

	payments := []*domain.PaymentEvent{
		{ID: uuid.New(), HolderID: "HOLDER-001", Amount: decimal.NewFromInt(250), Bonus: decimal.Zero},
	}

	// Four weeks elapsed, two paid: two weeks overdue.
	snapshot, err := progress.Compute(schedule, payments, startDate.AddDate(0, 0, 28))
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.OverdueWeeks)
	require.True(t, policy.IsReminderDue(snapshot))

	message := policy.RenderReminder(holder, snapshot)

	assert.Contains(t, message, "Weekly Amount: Rs.100")
	assert.Contains(t, message, "Overdue Amount: Rs.200")
	assert.Contains(t, message, "Total Due: Rs.300")

	// Parsing the rendered text recovers the figures used to generate it.
	weeksMatch := regexp.MustCompile(`Overdue Weeks: (-?\d+) weeks`).FindStringSubmatch(message)
	require.Len(t, weeksMatch, 2)
	parsedWeeks, err := strconv.Atoi(weeksMatch[1])
	require.NoError(t, err)
	assert.Equal(t, snapshot.OverdueWeeks, parsedWeeks)

	dueMatch := regexp.MustCompile(`Total Due: Rs\.(-?\d+)`).FindStringSubmatch(message)
	require.Len(t, dueMatch, 2)
	parsedDue, err := decimal.NewFromString(dueMatch[1])
	require.NoError(t, err)
	assert.True(t, parsedDue.Equal(snapshot.TotalDue().Round(0)))
}
