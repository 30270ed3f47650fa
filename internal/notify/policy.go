package notify

import (
	"fmt"
	"strings"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/pkg/utils"
)

const receiptPlaceholder = "N/A"

// Policy decides when a reminder is due and renders the customer-facing
// message templates. Both renderers are pure functions of their inputs;
// tests and downstream delivery rely on field presence, not exact wording.
type Policy struct {
	// GraceWeeks is the number of weeks a holder may fall behind before a
	// reminder fires. The default of one week is intentional policy: a
	// holder exactly one week behind is not yet delinquent.
	GraceWeeks int

	// CurrencySymbol prefixes every rounded amount in rendered messages.
	CurrencySymbol string

	// AppName appears in the automated-message footer.
	AppName string
}

func NewPolicy(graceWeeks int, currencySymbol, appName string) *Policy {
	return &Policy{
		GraceWeeks:     graceWeeks,
		CurrencySymbol: currencySymbol,
		AppName:        appName,
	}
}

// IsReminderDue reports whether the holder is behind by more than the grace
// period. Negative overdue weeks (ahead of schedule) never trigger a reminder.
func (p *Policy) IsReminderDue(snapshot *domain.ProgressSnapshot) bool {
	return snapshot.OverdueWeeks > p.GraceWeeks
}

// RenderConfirmation builds the payment confirmation message. Amounts are
// rounded half-up to whole currency units here and nowhere earlier.
func (p *Policy) RenderConfirmation(holder *domain.Holder, payment *domain.PaymentEvent, schedule *domain.Schedule, snapshot *domain.ProgressSnapshot) string {
	receipt := payment.ReceiptRef
	if receipt == "" {
		receipt = receiptPlaceholder
	}

	var b strings.Builder
	b.WriteString("*Payment Received Successfully!*\n\n")
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", holder.Name)
	fmt.Fprintf(&b, "ID: %s\n\n", holder.SerialNumber)
	b.WriteString("*Payment Details:*\n")
	fmt.Fprintf(&b, "Amount: %s%s\n", p.CurrencySymbol, payment.Amount.String())
	fmt.Fprintf(&b, "Date: %s\n", utils.FormatDate(payment.OccurredAt))
	fmt.Fprintf(&b, "Mode: %s\n", payment.PaymentMode)
	fmt.Fprintf(&b, "Receipt: %s\n\n", receipt)
	b.WriteString("*Scheme Information:*\n")
	fmt.Fprintf(&b, "Scheme: %s\n", schedule.SchemeType)
	fmt.Fprintf(&b, "Weekly Amount: %s%s\n", p.CurrencySymbol, utils.RoundCurrency(snapshot.WeeklyAmount).String())
	fmt.Fprintf(&b, "Total Amount: %s%s\n\n", p.CurrencySymbol, schedule.TotalAmount.String())
	b.WriteString("*Financial Summary:*\n")
	fmt.Fprintf(&b, "Pending Amount: %s%s\n", p.CurrencySymbol, utils.RoundCurrency(snapshot.PendingAmount).String())
	fmt.Fprintf(&b, "Total Bonus Earned: %s%s\n\n", p.CurrencySymbol, payment.Bonus.String())
	b.WriteString("*Next Due Date:*\n")
	fmt.Fprintf(&b, "%s\n\n", utils.FormatDate(snapshot.NextDueDate))
	b.WriteString("Thank you for your payment!\n\n")
	fmt.Fprintf(&b, "_This is an automated message from %s_", p.AppName)

	return b.String()
}

// RenderReminder builds the overdue payment reminder. The overdue amount is
// overdueWeeks times the weekly installment; the total due adds the current
// week on top. Rounding happens here only.
func (p *Policy) RenderReminder(holder *domain.Holder, snapshot *domain.ProgressSnapshot) string {
	overdueAmount := utils.RoundCurrency(snapshot.OverdueAmount())
	totalDue := utils.RoundCurrency(snapshot.TotalDue())

	var b strings.Builder
	b.WriteString("*Payment Reminder*\n\n")
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", holder.Name)
	fmt.Fprintf(&b, "ID: %s\n\n", holder.SerialNumber)
	b.WriteString("*Payment Details:*\n")
	fmt.Fprintf(&b, "Weekly Amount: %s%s\n", p.CurrencySymbol, utils.RoundCurrency(snapshot.WeeklyAmount).String())
	fmt.Fprintf(&b, "Overdue Amount: %s%s\n", p.CurrencySymbol, overdueAmount.String())
	fmt.Fprintf(&b, "Overdue Weeks: %d weeks\n\n", snapshot.OverdueWeeks)
	fmt.Fprintf(&b, "Total Due: %s%s\n\n", p.CurrencySymbol, totalDue.String())
	b.WriteString("Please make your payment at the earliest convenience.\n\n")
	b.WriteString("Thank you!\n\n")
	fmt.Fprintf(&b, "_This is an automated reminder from %s_", p.AppName)

	return b.String()
}
