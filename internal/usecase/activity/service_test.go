package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/domain/mocks"
	ucase "github.com/platefeed/engagement/internal/usecase/activity"
)

func fixedLog() []domain.ActivityEvent {
	// newest first, the order the store returns
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.ActivityEvent{
		{ID: "e5", Type: domain.EventView, PostID: 5, Title: "Shakshuka", CreatedAt: base},
		{ID: "e4", Type: domain.EventLike, PostID: 4, Title: "Ramen", CreatedAt: base.Add(-1 * time.Minute)},
		{ID: "e3", Type: domain.EventView, PostID: 3, Title: "Carbonara", CreatedAt: base.Add(-2 * time.Minute)},
		{ID: "e2", Type: domain.EventComment, PostID: 3, Title: "Carbonara", Text: "looks amazing", CreatedAt: base.Add(-3 * time.Minute)},
		{ID: "e1", Type: domain.EventView, PostID: 1, Title: "Pho", CreatedAt: base.Add(-4 * time.Minute)},
	}
}

func TestQueryTypeFilterPagination(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(fixedLog(), nil)

	svc := ucase.NewService(repo, postRepo)
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{
		Page:  1,
		Limit: 2,
		Type:  domain.EventView,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "e5", page.Items[0].ID)
	assert.Equal(t, "e3", page.Items[1].ID)
}

func TestQueryTextFilterIsCaseInsensitive(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(fixedLog(), nil)

	svc := ucase.NewService(repo, postRepo)
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{Page: 1, Limit: 20, Text: "CARBO"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(1), page.TotalPages)

	// text filter also matches the comment body
	page, err = svc.Query(context.TODO(), 7, domain.HistoryQuery{Page: 1, Limit: 20, Text: "amazing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "e2", page.Items[0].ID)
}

func TestQueryFiltersCompose(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(fixedLog(), nil)

	svc := ucase.NewService(repo, postRepo)
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{
		Page:  1,
		Limit: 20,
		Type:  domain.EventView,
		Text:  "carbonara",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "e3", page.Items[0].ID)
}

func TestQueryEmptyLog(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return([]domain.ActivityEvent{}, nil)

	svc := ucase.NewService(repo, postRepo)
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, int64(1), page.TotalPages)
}

func TestQueryNormalizesParams(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(fixedLog(), nil)

	svc := ucase.NewService(repo, postRepo)

	// page and limit below 1 fall back to defaults
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{Page: -2, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Page)
	assert.Len(t, page.Items, 5)

	// limit above the maximum is clamped
	page, err = svc.Query(context.TODO(), 7, domain.HistoryQuery{Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPages)
}

func TestQueryPageBeyondEnd(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(fixedLog(), nil)

	svc := ucase.NewService(repo, postRepo)
	page, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{Page: 9, Limit: 2})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestQueryUnknownTypeFilter(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	svc := ucase.NewService(repo, postRepo)
	_, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{Type: "starred"})

	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	repo.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestRecordStampsAndBackfillsTitle(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	postRepo.On("GetByID", mock.Anything, int64(42)).Return(domain.Post{ID: 42, Title: "Tonkotsu Ramen"}, nil)
	repo.On("Append", mock.Anything, int64(7), mock.MatchedBy(func(ev domain.ActivityEvent) bool {
		return ev.Title == "Tonkotsu Ramen" && ev.ID != "" && !ev.CreatedAt.IsZero()
	})).Return(nil)

	svc := ucase.NewService(repo, postRepo)
	err := svc.Record(context.TODO(), 7, domain.ActivityEvent{Type: domain.EventView, PostID: 42})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestRecordKeepsCallerTitle(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	repo.On("Append", mock.Anything, int64(7), mock.MatchedBy(func(ev domain.ActivityEvent) bool {
		return ev.Title == "Pad Thai"
	})).Return(nil)

	svc := ucase.NewService(repo, postRepo)
	err := svc.Record(context.TODO(), 7, domain.ActivityEvent{
		Type:   domain.EventComment,
		PostID: 42,
		Title:  "Pad Thai",
		Text:   faker.Sentence(),
	})

	require.NoError(t, err)
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRecordTitleLookupFailureDegrades(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	postRepo.On("GetByID", mock.Anything, int64(42)).Return(domain.Post{}, domain.ErrNotFound)
	repo.On("Append", mock.Anything, int64(7), mock.MatchedBy(func(ev domain.ActivityEvent) bool {
		return ev.Title == ""
	})).Return(nil)

	svc := ucase.NewService(repo, postRepo)
	err := svc.Record(context.TODO(), 7, domain.ActivityEvent{Type: domain.EventView, PostID: 42})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordRejectsUnknownType(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	svc := ucase.NewService(repo, postRepo)
	err := svc.Record(context.TODO(), 7, domain.ActivityEvent{Type: "poked", PostID: 42})

	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordRejectsMissingPost(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)

	svc := ucase.NewService(repo, postRepo)
	err := svc.Record(context.TODO(), 7, domain.ActivityEvent{Type: domain.EventView})

	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestClear(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Clear", mock.Anything, int64(7)).Return(nil)

	svc := ucase.NewService(repo, postRepo)
	require.NoError(t, svc.Clear(context.TODO(), 7))
	repo.AssertExpectations(t)
}

func TestQueryPropagatesStoreFailure(t *testing.T) {
	repo := new(mocks.ActivityLogRepository)
	postRepo := new(mocks.PostRepository)
	repo.On("Fetch", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	svc := ucase.NewService(repo, postRepo)
	_, err := svc.Query(context.TODO(), 7, domain.HistoryQuery{})

	assert.Error(t, err)
}
