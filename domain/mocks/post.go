package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	domain "github.com/platefeed/engagement/domain"
)

// PostRepository is a mock type for the domain.PostRepository
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(domain.Post), ret.Error(1)
}

func (m *PostRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	ret := m.Called(ctx, ids)

	var r0 []domain.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Post)
	}
	return r0, ret.Error(1)
}

func (m *PostRepository) Store(ctx context.Context, p *domain.Post) error {
	ret := m.Called(ctx, p)
	return ret.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *PostRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	ret := m.Called(ctx, cursor, limit)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

// BloomRepository is a mock type for the domain.BloomRepository
type BloomRepository struct {
	mock.Mock
}

func (m *BloomRepository) Add(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *BloomRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ret := m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (m *BloomRepository) BulkAdd(ctx context.Context, ids []int64) error {
	ret := m.Called(ctx, ids)
	return ret.Error(0)
}

// PostDBRepository is a mock type for the domain.PostDBRepository
type PostDBRepository struct {
	mock.Mock
}

func (m *PostDBRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(domain.Post), ret.Error(1)
}

func (m *PostDBRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	ret := m.Called(ctx, ids)

	var r0 []domain.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Post)
	}
	return r0, ret.Error(1)
}

func (m *PostDBRepository) Store(ctx context.Context, p *domain.Post) error {
	ret := m.Called(ctx, p)
	return ret.Error(0)
}

func (m *PostDBRepository) Delete(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *PostDBRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	ret := m.Called(ctx, cursor, limit)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}
	return r0, ret.Error(1)
}

// PostCache is a mock type for the domain.PostCache
type PostCache struct {
	mock.Mock
}

func (m *PostCache) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(domain.Post), ret.Error(1)
}

func (m *PostCache) SetPost(ctx context.Context, p *domain.Post) error {
	ret := m.Called(ctx, p)
	return ret.Error(0)
}

func (m *PostCache) GetPostByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	ret := m.Called(ctx, ids)

	var r0 []domain.Post
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Post)
	}
	return r0, ret.Error(1)
}

func (m *PostCache) BatchSetPost(ctx context.Context, ps []domain.Post) error {
	ret := m.Called(ctx, ps)
	return ret.Error(0)
}

func (m *PostCache) DeletePost(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}
