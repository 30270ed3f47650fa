package progress

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/scheme-engine/internal/domain"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
	"github.com/fintrack/scheme-engine/pkg/utils"
)

// Compute derives a holder's progress snapshot from the schedule and the
// full payment event set at time now.
//
// Precondition: payments is the complete, time-ordered event set for this
// holder against this schedule. Passing a filtered subset is a caller error
// and is not detected here.
//
// Compute is pure: no side effects, no hidden state, identical inputs yield
// identical output. Safe to call concurrently across holders.
func Compute(schedule *domain.Schedule, payments []*domain.PaymentEvent, now time.Time) (*domain.ProgressSnapshot, error) {
	if schedule == nil {
		return nil, customError.WrapComputationError("", fmt.Errorf("schedule is nil"))
	}
	if schedule.DurationWeeks <= 0 || schedule.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidSchedule(
			fmt.Sprintf("schedule for holder %s has invalid terms", schedule.HolderID))
	}

	totalPaid := decimal.Zero
	for _, payment := range payments {
		if payment.Amount.IsNegative() {
			// Negative events would silently corrupt every derived figure.
			return nil, customError.WrapComputationError(schedule.HolderID,
				fmt.Errorf("payment %s has negative amount %s", payment.ID, payment.Amount))
		}
		totalPaid = totalPaid.Add(payment.Amount)
	}

	weeklyAmount := schedule.WeeklyAmount()

	// paidWeeks = floor(totalPaid / weeklyAmount), clamped to [0, durationWeeks].
	// An overpaying holder is "complete", never negatively overdue.
	paidWeeks := int(totalPaid.Div(weeklyAmount).IntPart())
	if paidWeeks > schedule.DurationWeeks {
		paidWeeks = schedule.DurationWeeks
	}

	currentWeek := utils.CurrentWeek(schedule.StartDate, now)

	return &domain.ProgressSnapshot{
		HolderID:       schedule.HolderID,
		TotalPaid:      totalPaid,
		WeeklyAmount:   weeklyAmount,
		PendingAmount:  schedule.TotalAmount.Sub(totalPaid), // unclamped, negative when overpaid
		PaidWeeks:      paidWeeks,
		RemainingWeeks: schedule.DurationWeeks - paidWeeks,
		CurrentWeek:    currentWeek,
		OverdueWeeks:   currentWeek - paidWeeks, // <=0 means on track or ahead
		NextDueDate:    utils.NextDueDate(schedule.StartDate, paidWeeks),
		AsOf:           now,
	}, nil
}
