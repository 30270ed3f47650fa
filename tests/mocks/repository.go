package mocks

import (
	"context"
	"time"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHolderRepository struct {
	mock.Mock
}

func (m *MockHolderRepository) Create(ctx context.Context, holder *domain.Holder) error {
	args := m.Called(ctx, holder)
	return args.Error(0)
}

func (m *MockHolderRepository) GetByHolderID(ctx context.Context, holderID string) (*domain.Holder, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holder), args.Error(1)
}

func (m *MockHolderRepository) ListActive(ctx context.Context) ([]*domain.Holder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holder), args.Error(1)
}

func (m *MockHolderRepository) Update(ctx context.Context, holder *domain.Holder) error {
	args := m.Called(ctx, holder)
	return args.Error(0)
}

type MockSchemeRepository struct {
	mock.Mock
}

func (m *MockSchemeRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockSchemeRepository) GetByHolderID(ctx context.Context, holderID string) (*domain.Schedule, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.PaymentEvent) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByHolderID(ctx context.Context, holderID string) ([]*domain.PaymentEvent, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentEvent), args.Error(1)
}

func (m *MockPaymentRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.PaymentEvent, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentEvent), args.Error(1)
}

type MockEventLogRepository struct {
	mock.Mock
}

func (m *MockEventLogRepository) AppendNotification(ctx context.Context, record *domain.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEventLogRepository) AppendAnalytics(ctx context.Context, event *domain.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventLogRepository) CreateReport(ctx context.Context, report *domain.MonthlyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockEventLogRepository) CreateBackup(ctx context.Context, record *domain.BackupRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Send(ctx context.Context, target, text string) error {
	args := m.Called(ctx, target, text)
	return args.Error(0)
}
