package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/scheme-engine/internal/channel"
	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/notify"
	"github.com/fintrack/scheme-engine/internal/progress"
	"github.com/fintrack/scheme-engine/internal/repository"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

// State tracks how far a single payment or tick-holder task progressed.
type State string

const (
	StateReceived         State = "RECEIVED"
	StateSnapshotComputed State = "SNAPSHOT_COMPUTED"
	StateMessageRendered  State = "MESSAGE_RENDERED"
	StateDispatched       State = "DISPATCHED"
	StateLogged           State = "LOGGED"
	StateSkipped          State = "SKIPPED"
	StateFailed           State = "FAILED"
)

// Result is the terminal outcome for one payment or one tick-holder task.
// SKIPPED with a nil Err means the task was a deliberate no-op (holder not
// overdue); SKIPPED with an Err means required data was missing. DISPATCHED
// with a non-nil Err means the message went out but logging it failed.
type Result struct {
	HolderID string
	State    State
	Err      error
}

// Config carries the dispatcher's operational knobs.
type Config struct {
	// DispatchTimeout bounds a single channel send.
	DispatchTimeout time.Duration

	// TickConcurrency bounds how many holders a tick processes in parallel.
	TickConcurrency int
}

// Dispatcher orchestrates the progress/notification pipeline. It owns no
// state of its own: every invocation recomputes the snapshot from the
// append-only payment set, so duplicate invocations can at worst double-log
// a notification, never double-count business state.
type Dispatcher struct {
	holders  repository.HolderRepository
	schemes  repository.SchemeRepository
	payments repository.PaymentRepository
	eventLog repository.EventLogRepository
	channel  channel.Channel
	policy   *notify.Policy
	cfg      Config
	logger   *slog.Logger
}

func New(
	holders repository.HolderRepository,
	schemes repository.SchemeRepository,
	payments repository.PaymentRepository,
	eventLog repository.EventLogRepository,
	ch channel.Channel,
	policy *notify.Policy,
	cfg Config,
	logger *slog.Logger,
) *Dispatcher {
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = 5 * time.Second
	}
	if cfg.TickConcurrency <= 0 {
		cfg.TickConcurrency = 8
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		holders:  holders,
		schemes:  schemes,
		payments: payments,
		eventLog: eventLog,
		channel:  ch,
		policy:   policy,
		cfg:      cfg,
		logger:   logger,
	}
}

// OnPaymentCreated runs the confirmation flow for one new payment event.
// Missing holder or scheme data is a non-fatal skip: payments may arrive for
// not-yet-provisioned or deleted holders and must never crash the pipeline.
func (d *Dispatcher) OnPaymentCreated(ctx context.Context, payment *domain.PaymentEvent) Result {
	result := Result{HolderID: payment.HolderID, State: StateReceived}

	holder, err := d.holders.GetByHolderID(ctx, payment.HolderID)
	if err != nil {
		return d.skipOrFail(result, "holder lookup failed", mapNotFound(err, customError.WrapHolderNotFound(payment.HolderID)))
	}

	schedule, err := d.schemes.GetByHolderID(ctx, payment.HolderID)
	if err != nil {
		return d.skipOrFail(result, "scheme lookup failed", mapNotFound(err, customError.WrapSchemeNotFound(payment.HolderID)))
	}

	history, err := d.payments.ListByHolderID(ctx, payment.HolderID)
	if err != nil {
		result.State = StateFailed
		result.Err = customError.WrapDatabaseError(err)
		return result
	}

	// The confirmation must be computed from a snapshot that includes the
	// triggering payment. The store may not have surfaced it yet.
	history = ensureIncluded(history, payment)

	snapshot, err := progress.Compute(schedule, history, time.Now())
	if err != nil {
		result.State = StateFailed
		result.Err = err
		return result
	}
	result.State = StateSnapshotComputed

	message := d.policy.RenderConfirmation(holder, payment, schedule, snapshot)
	result.State = StateMessageRendered

	if err := d.send(ctx, holder.MobileNumber, message); err != nil {
		d.recordDispatchFailure(ctx, holder.HolderID, err)
		result.State = StateFailed
		result.Err = err
		return result
	}
	result.State = StateDispatched

	record := &domain.NotificationRecord{
		ID:            uuid.New(),
		HolderID:      holder.HolderID,
		Kind:          domain.NotificationKindConfirmation,
		Message:       message,
		ChannelTarget: holder.MobileNumber,
		DispatchedAt:  time.Now(),
		IsDelivered:   true,
	}
	if err := d.eventLog.AppendNotification(ctx, record); err != nil {
		// Message already went out; surface the logging failure without
		// pretending the dispatch failed.
		result.Err = customError.WrapDatabaseError(err)
		return result
	}
	result.State = StateLogged

	d.appendAnalytics(ctx, &domain.AnalyticsEvent{
		ID:          uuid.New(),
		EventType:   domain.AnalyticsPaymentCreated,
		HolderID:    payment.HolderID,
		Amount:      payment.Amount,
		PaymentMode: payment.PaymentMode,
		OccurredAt:  time.Now(),
	})

	d.logger.Info("payment confirmation dispatched",
		slog.String("holder_id", holder.HolderID),
		slog.String("payment_id", payment.ID.String()),
	)

	return result
}

// OnScheduledTick processes every active holder, sending a reminder to each
// one that is past the grace period. Holders are processed independently
// behind a bounded semaphore; one holder's failure never aborts the rest.
// The returned error joins all per-holder failures.
func (d *Dispatcher) OnScheduledTick(ctx context.Context, now time.Time) ([]Result, error) {
	holders, err := d.holders.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	results := make([]Result, len(holders))
	sem := make(chan struct{}, d.cfg.TickConcurrency)
	var wg sync.WaitGroup

	for i, holder := range holders {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, holder *domain.Holder) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.processTickHolder(ctx, holder, now)
		}(i, holder)
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		// Skips carry their cause in Err but are non-fatal by contract;
		// everything else with an error joins the batch error, including a
		// DISPATCHED result whose log append failed.
		if r.Err != nil && r.State != StateSkipped {
			errs = append(errs, r.Err)
		}
	}

	d.logger.Info("reminder tick completed",
		slog.Int("holders", len(holders)),
		slog.Int("failures", len(errs)),
	)

	return results, errors.Join(errs...)
}

func (d *Dispatcher) processTickHolder(ctx context.Context, holder *domain.Holder, now time.Time) Result {
	result := Result{HolderID: holder.HolderID, State: StateReceived}

	schedule, err := d.schemes.GetByHolderID(ctx, holder.HolderID)
	if err != nil {
		return d.skipOrFail(result, "scheme lookup failed", mapNotFound(err, customError.WrapSchemeNotFound(holder.HolderID)))
	}

	history, err := d.payments.ListByHolderID(ctx, holder.HolderID)
	if err != nil {
		result.State = StateFailed
		result.Err = customError.WrapDatabaseError(err)
		return result
	}

	snapshot, err := progress.Compute(schedule, history, now)
	if err != nil {
		result.State = StateFailed
		result.Err = err
		return result
	}
	result.State = StateSnapshotComputed

	if !d.policy.IsReminderDue(snapshot) {
		result.State = StateSkipped
		return result
	}

	message := d.policy.RenderReminder(holder, snapshot)
	result.State = StateMessageRendered

	if err := d.send(ctx, holder.MobileNumber, message); err != nil {
		d.recordDispatchFailure(ctx, holder.HolderID, err)
		result.State = StateFailed
		result.Err = err
		return result
	}
	result.State = StateDispatched

	record := &domain.NotificationRecord{
		ID:            uuid.New(),
		HolderID:      holder.HolderID,
		Kind:          domain.NotificationKindReminder,
		Message:       message,
		ChannelTarget: holder.MobileNumber,
		DispatchedAt:  time.Now(),
		IsDelivered:   true,
	}
	if err := d.eventLog.AppendNotification(ctx, record); err != nil {
		result.Err = customError.WrapDatabaseError(err)
		return result
	}
	result.State = StateLogged

	d.logger.Info("payment reminder dispatched",
		slog.String("holder_id", holder.HolderID),
		slog.Int("overdue_weeks", snapshot.OverdueWeeks),
	)

	return result
}

func (d *Dispatcher) send(ctx context.Context, target, message string) error {
	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.DispatchTimeout)
	defer cancel()

	if err := d.channel.Send(sendCtx, target, message); err != nil {
		var bizErr *customError.BusinessError
		if errors.As(err, &bizErr) {
			return err
		}
		return customError.WrapDispatchError(target, err)
	}
	return nil
}

// skipOrFail classifies a lookup error: not-found is a logged skip, anything
// else is a database failure.
func (d *Dispatcher) skipOrFail(result Result, msg string, err error) Result {
	if errors.Is(err, customError.ErrHolderNotFound) || errors.Is(err, customError.ErrSchemeNotFound) {
		d.logger.Warn(msg,
			slog.String("holder_id", result.HolderID),
			slog.String("error", err.Error()),
		)
		result.State = StateSkipped
		result.Err = err
		return result
	}
	result.State = StateFailed
	result.Err = err
	return result
}

func (d *Dispatcher) recordDispatchFailure(ctx context.Context, holderID string, sendErr error) {
	d.logger.Error("dispatch failed",
		slog.String("holder_id", holderID),
		slog.String("error", sendErr.Error()),
	)
	d.appendAnalytics(ctx, &domain.AnalyticsEvent{
		ID:         uuid.New(),
		EventType:  domain.AnalyticsDispatchFailed,
		HolderID:   holderID,
		Detail:     sendErr.Error(),
		OccurredAt: time.Now(),
	})
}

// appendAnalytics is best-effort: losing an analytics row never fails the task.
func (d *Dispatcher) appendAnalytics(ctx context.Context, event *domain.AnalyticsEvent) {
	if err := d.eventLog.AppendAnalytics(ctx, event); err != nil {
		d.logger.Warn("analytics append failed",
			slog.String("holder_id", event.HolderID),
			slog.String("event_type", event.EventType),
			slog.String("error", err.Error()),
		)
	}
}

func ensureIncluded(history []*domain.PaymentEvent, payment *domain.PaymentEvent) []*domain.PaymentEvent {
	for _, p := range history {
		if p.ID == payment.ID {
			return history
		}
	}
	return append(history, payment)
}

func mapNotFound(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return customError.WrapDatabaseError(err)
}
