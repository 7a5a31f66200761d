package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	domain "github.com/platefeed/engagement/domain"
)

// EngagementCache is a mock type for the domain.EngagementCache
type EngagementCache struct {
	mock.Mock
}

func (m *EngagementCache) ToggleLike(ctx context.Context, record domain.EngagementRecord) (domain.ToggleResult, error) {
	ret := m.Called(ctx, record)
	return ret.Get(0).(domain.ToggleResult), ret.Error(1)
}

func (m *EngagementCache) ToggleFavorite(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	ret := m.Called(ctx, record)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementCache) IsLiked(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	ret := m.Called(ctx, record)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementCache) IsFavorited(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	ret := m.Called(ctx, record)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementCache) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	ret := m.Called(ctx, postID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *EngagementCache) SetLikeCount(ctx context.Context, postID int64, likes int64) error {
	ret := m.Called(ctx, postID, likes)
	return ret.Error(0)
}

func (m *EngagementCache) SetUserLikedPosts(ctx context.Context, uid int64, postIDs []int64) error {
	ret := m.Called(ctx, uid, postIDs)
	return ret.Error(0)
}

func (m *EngagementCache) SetUserFavoritePosts(ctx context.Context, uid int64, postIDs []int64) error {
	ret := m.Called(ctx, uid, postIDs)
	return ret.Error(0)
}

// EngagementDBRepository is a mock type for the domain.EngagementDBRepository
type EngagementDBRepository struct {
	mock.Mock
}

func (m *EngagementDBRepository) FetchUserLikedPosts(ctx context.Context, uid int64, limit int64) ([]int64, error) {
	ret := m.Called(ctx, uid, limit)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

func (m *EngagementDBRepository) FetchUserFavoritePosts(ctx context.Context, uid int64, limit int64) ([]int64, error) {
	ret := m.Called(ctx, uid, limit)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

func (m *EngagementDBRepository) CountPostLikes(ctx context.Context, postID int64) (int64, error) {
	ret := m.Called(ctx, postID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *EngagementDBRepository) HasLiked(ctx context.Context, uid, postID int64) (bool, error) {
	ret := m.Called(ctx, uid, postID)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementDBRepository) HasFavorited(ctx context.Context, uid, postID int64) (bool, error) {
	ret := m.Called(ctx, uid, postID)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementDBRepository) ApplyChanges(ctx context.Context, changes domain.EngagementChanges) error {
	ret := m.Called(ctx, changes)
	return ret.Error(0)
}

// EngagementUsecase is a mock type for the domain.EngagementUsecase
type EngagementUsecase struct {
	mock.Mock
}

func (m *EngagementUsecase) ToggleLike(ctx context.Context, postID, userID int64) (domain.ToggleResult, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Get(0).(domain.ToggleResult), ret.Error(1)
}

func (m *EngagementUsecase) ToggleFavorite(ctx context.Context, postID, userID int64) (bool, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (m *EngagementUsecase) State(ctx context.Context, postID, userID int64) (bool, bool, error) {
	ret := m.Called(ctx, postID, userID)
	return ret.Bool(0), ret.Bool(1), ret.Error(2)
}

func (m *EngagementUsecase) LikeCount(ctx context.Context, postID int64) (int64, error) {
	ret := m.Called(ctx, postID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *EngagementUsecase) FavoritePosts(ctx context.Context, userID int64, limit int64) ([]domain.Post, error) {
	ret := m.Called(ctx, userID, limit)

	var r0 []domain.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Post)
	}
	return r0, ret.Error(1)
}

// SyncEngagementWorker is a mock type for the domain.SyncEngagementWorker
type SyncEngagementWorker struct {
	mock.Mock
}

func (m *SyncEngagementWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *SyncEngagementWorker) Send(record domain.EngagementRecord, relation domain.Relation, action domain.EngagementAction) {
	m.Called(record, relation, action)
}
