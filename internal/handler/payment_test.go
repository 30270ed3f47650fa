package handler_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/scheme-engine/internal/dispatch"
	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/handler"
	"github.com/fintrack/scheme-engine/internal/notify"
	"github.com/fintrack/scheme-engine/internal/service"
	"github.com/fintrack/scheme-engine/tests/mocks"
)

var startDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type handlerFixture struct {
	holders  *mocks.MockHolderRepository
	schemes  *mocks.MockSchemeRepository
	payments *mocks.MockPaymentRepository
	eventLog *mocks.MockEventLogRepository
	channel  *mocks.MockChannel
	router   *mux.Router
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		holders:  &mocks.MockHolderRepository{},
		schemes:  &mocks.MockSchemeRepository{},
		payments: &mocks.MockPaymentRepository{},
		eventLog: &mocks.MockEventLogRepository{},
		channel:  &mocks.MockChannel{},
	}

	policy := notify.NewPolicy(1, "Rs.", "Finance Tracker")
	dispatcher := dispatch.New(
		f.holders, f.schemes, f.payments, f.eventLog, f.channel, policy,
		dispatch.Config{DispatchTimeout: time.Second, TickConcurrency: 2},
		nil,
	)
	progressService := service.NewProgressService(f.holders, f.schemes, f.payments, nil, 0, nil)

	holderHandler := handler.NewHolderHandler(f.holders, f.schemes, f.eventLog, 52)
	paymentHandler := handler.NewPaymentHandler(f.payments, dispatcher, progressService)
	progressHandler := handler.NewProgressHandler(progressService)

	f.router = mux.NewRouter()
	f.router.HandleFunc("/api/v1/holders", holderHandler.CreateHolder).Methods("POST")
	f.router.HandleFunc("/api/v1/holders/{holderId}", holderHandler.UpdateHolder).Methods("PUT")
	f.router.HandleFunc("/api/v1/payments", paymentHandler.CreatePayment).Methods("POST")
	f.router.HandleFunc("/api/v1/holders/{holderId}/progress", progressHandler.GetProgress).Methods("GET")

	return f
}

func TestCreatePayment(t *testing.T) {
	t.Run("Success - payment recorded and confirmation dispatched", func(t *testing.T) {
		f := newHandlerFixture()

		holder := &domain.Holder{HolderID: "HOLDER-001", Name: "Asha Varma", SerialNumber: "SR-042", MobileNumber: "919876543210"}
		schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
		require.NoError(t, err)

		f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PaymentEvent) bool {
			return p.HolderID == "HOLDER-001" && p.Amount.Equal(decimal.NewFromInt(250))
		})).Return(nil)
		f.holders.On("GetByHolderID", mock.Anything, "HOLDER-001").Return(holder, nil)
		f.schemes.On("GetByHolderID", mock.Anything, "HOLDER-001").Return(schedule, nil)
		f.payments.On("ListByHolderID", mock.Anything, "HOLDER-001").Return([]*domain.PaymentEvent{}, nil)
		f.channel.On("Send", mock.Anything, "919876543210", mock.Anything).Return(nil)
		f.eventLog.On("AppendNotification", mock.Anything, mock.Anything).Return(nil)
		f.eventLog.On("AppendAnalytics", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(map[string]interface{}{
			"holder_id":    "HOLDER-001",
			"amount":       "250",
			"payment_mode": "UPI",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"dispatch_state":"LOGGED"`)

		f.payments.AssertExpectations(t)
		f.channel.AssertExpectations(t)
	})

	t.Run("Bad request - missing holder id", func(t *testing.T) {
		f := newHandlerFixture()

		body, _ := json.Marshal(map[string]interface{}{
			"amount":       "250",
			"payment_mode": "UPI",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Bad request - non-positive amount", func(t *testing.T) {
		f := newHandlerFixture()

		body, _ := json.Marshal(map[string]interface{}{
			"holder_id":    "HOLDER-001",
			"amount":       "-5",
			"payment_mode": "UPI",
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetProgress(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newHandlerFixture()

		schedule, err := domain.NewSchedule("HOLDER-001", "gold-52", decimal.NewFromInt(5200), 52, startDate)
		require.NoError(t, err)

		f.holders.On("GetByHolderID", mock.Anything, "HOLDER-001").Return(&domain.Holder{HolderID: "HOLDER-001"}, nil)
		f.schemes.On("GetByHolderID", mock.Anything, "HOLDER-001").Return(schedule, nil)
		f.payments.On("ListByHolderID", mock.Anything, "HOLDER-001").Return([]*domain.PaymentEvent{
			{HolderID: "HOLDER-001", Amount: decimal.NewFromInt(250), Bonus: decimal.Zero},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/holders/HOLDER-001/progress", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"paid_weeks":2`)
	})

	t.Run("Holder not found", func(t *testing.T) {
		f := newHandlerFixture()

		f.holders.On("GetByHolderID", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/holders/GHOST/progress", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
