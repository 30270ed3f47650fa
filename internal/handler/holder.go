package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/repository"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
	"github.com/fintrack/scheme-engine/pkg/response"
)

type HolderHandler struct {
	holders              repository.HolderRepository
	schemes              repository.SchemeRepository
	eventLog             repository.EventLogRepository
	defaultDurationWeeks int
	validator            *validator.Validate
}

func NewHolderHandler(
	holders repository.HolderRepository,
	schemes repository.SchemeRepository,
	eventLog repository.EventLogRepository,
	defaultDurationWeeks int,
) *HolderHandler {
	return &HolderHandler{
		holders:              holders,
		schemes:              schemes,
		eventLog:             eventLog,
		defaultDurationWeeks: defaultDurationWeeks,
		validator:            validator.New(),
	}
}

// CreateHolder provisions a holder and their scheme in one call. When the
// request omits duration_weeks or start_date, the configured default
// duration and the current time are used.
func (h *HolderHandler) CreateHolder(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	durationWeeks := request.DurationWeeks
	if durationWeeks == 0 {
		durationWeeks = h.defaultDurationWeeks
	}

	startDate := time.Now()
	if request.StartDate != nil {
		startDate = *request.StartDate
	}

	schedule, err := domain.NewSchedule(request.HolderID, request.SchemeType, request.TotalAmount, durationWeeks, startDate)
	if err != nil {
		response.BadRequest(w, "invalid scheme terms", err)
		return
	}

	holder := &domain.Holder{
		ID:           uuid.New(),
		HolderID:     request.HolderID,
		Name:         request.Name,
		SerialNumber: request.SerialNumber,
		MobileNumber: request.MobileNumber,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.holders.Create(r.Context(), holder); err != nil {
		response.InternalServerError(w, "failed to create holder", err)
		return
	}
	if err := h.schemes.Create(r.Context(), schedule); err != nil {
		response.InternalServerError(w, "failed to create scheme", err)
		return
	}

	response.Created(w, &domain.CreateHolderResponse{
		Holder:   holder,
		Schedule: schedule,
	})
}

// UpdateHolder applies a partial update to a holder's profile and appends a
// holder_updated analytics record naming the changed fields. The analytics
// append is best-effort: a lost row never fails the update.
func (h *HolderHandler) UpdateHolder(w http.ResponseWriter, r *http.Request) {
	holderID := mux.Vars(r)["holderId"]
	if holderID == "" {
		response.BadRequest(w, "holderId is required", nil)
		return
	}

	var request domain.UpdateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	holder, err := h.holders.GetByHolderID(r.Context(), holderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, customError.WrapHolderNotFound(holderID).Error())
			return
		}
		response.InternalServerError(w, "failed to load holder", err)
		return
	}

	var changed []string
	if request.Name != "" && request.Name != holder.Name {
		holder.Name = request.Name
		changed = append(changed, "name")
	}
	if request.SerialNumber != "" && request.SerialNumber != holder.SerialNumber {
		holder.SerialNumber = request.SerialNumber
		changed = append(changed, "serial_number")
	}
	if request.MobileNumber != "" && request.MobileNumber != holder.MobileNumber {
		holder.MobileNumber = request.MobileNumber
		changed = append(changed, "mobile_number")
	}
	if request.IsActive != nil && *request.IsActive != holder.IsActive {
		holder.IsActive = *request.IsActive
		changed = append(changed, "is_active")
	}

	if len(changed) == 0 {
		response.Success(w, holder)
		return
	}

	holder.UpdatedAt = time.Now()
	if err := h.holders.Update(r.Context(), holder); err != nil {
		response.InternalServerError(w, "failed to update holder", err)
		return
	}

	_ = h.eventLog.AppendAnalytics(r.Context(), &domain.AnalyticsEvent{
		ID:         uuid.New(),
		EventType:  domain.AnalyticsHolderUpdated,
		HolderID:   holder.HolderID,
		Amount:     decimal.Zero,
		Detail:     "updated: " + strings.Join(changed, ", "),
		OccurredAt: time.Now(),
	})

	response.Success(w, holder)
}
