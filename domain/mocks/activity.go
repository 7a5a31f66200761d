package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	domain "github.com/platefeed/engagement/domain"
)

// ActivityLogRepository is a mock type for the domain.ActivityLogRepository
type ActivityLogRepository struct {
	mock.Mock
}

func (m *ActivityLogRepository) Append(ctx context.Context, userID int64, event domain.ActivityEvent) error {
	ret := m.Called(ctx, userID, event)
	return ret.Error(0)
}

func (m *ActivityLogRepository) Fetch(ctx context.Context, userID int64) ([]domain.ActivityEvent, error) {
	ret := m.Called(ctx, userID)

	var r0 []domain.ActivityEvent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ActivityEvent)
	}
	return r0, ret.Error(1)
}

func (m *ActivityLogRepository) Clear(ctx context.Context, userID int64) error {
	ret := m.Called(ctx, userID)
	return ret.Error(0)
}

// ActivityUsecase is a mock type for the domain.ActivityUsecase
type ActivityUsecase struct {
	mock.Mock
}

func (m *ActivityUsecase) Record(ctx context.Context, userID int64, event domain.ActivityEvent) error {
	ret := m.Called(ctx, userID, event)
	return ret.Error(0)
}

func (m *ActivityUsecase) Clear(ctx context.Context, userID int64) error {
	ret := m.Called(ctx, userID)
	return ret.Error(0)
}

func (m *ActivityUsecase) Query(ctx context.Context, userID int64, q domain.HistoryQuery) (domain.HistoryPage, error) {
	ret := m.Called(ctx, userID, q)
	return ret.Get(0).(domain.HistoryPage), ret.Error(1)
}

// HistoryWorker is a mock type for the domain.HistoryWorker
type HistoryWorker struct {
	mock.Mock
}

func (m *HistoryWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *HistoryWorker) Send(userID int64, event domain.ActivityEvent) {
	m.Called(userID, event)
}
