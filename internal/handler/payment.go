package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/scheme-engine/internal/dispatch"
	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/repository"
	"github.com/fintrack/scheme-engine/internal/service"
	"github.com/fintrack/scheme-engine/pkg/response"
)

type PaymentHandler struct {
	payments   repository.PaymentRepository
	dispatcher *dispatch.Dispatcher
	progress   *service.ProgressService
	validator  *validator.Validate
}

func NewPaymentHandler(
	payments repository.PaymentRepository,
	dispatcher *dispatch.Dispatcher,
	progress *service.ProgressService,
) *PaymentHandler {
	return &PaymentHandler{
		payments:   payments,
		dispatcher: dispatcher,
		progress:   progress,
		validator:  validator.New(),
	}
}

// CreatePayment records a new payment event and runs the confirmation flow.
// The event is persisted before dispatch so the snapshot always includes it.
// A SKIPPED or FAILED dispatch still returns 201: the payment itself is
// recorded, and the notification trail carries the failure.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	if request.Amount.LessThanOrEqual(decimal.Zero) {
		response.BadRequest(w, "amount must be greater than zero", nil)
		return
	}
	if request.Bonus.IsNegative() {
		response.BadRequest(w, "bonus must not be negative", nil)
		return
	}

	occurredAt := time.Now()
	if request.OccurredAt != nil {
		occurredAt = *request.OccurredAt
	}

	payment := &domain.PaymentEvent{
		ID:          uuid.New(),
		HolderID:    request.HolderID,
		Amount:      request.Amount,
		OccurredAt:  occurredAt,
		PaymentMode: request.PaymentMode,
		ReceiptRef:  request.ReceiptRef,
		Bonus:       request.Bonus,
		CreatedAt:   time.Now(),
	}

	if err := h.payments.Create(r.Context(), payment); err != nil {
		response.InternalServerError(w, "failed to record payment", err)
		return
	}

	h.progress.InvalidateProgress(r.Context(), payment.HolderID)

	result := h.dispatcher.OnPaymentCreated(r.Context(), payment)

	response.Created(w, &domain.CreatePaymentResponse{
		Payment:       payment,
		DispatchState: string(result.State),
	})
}
