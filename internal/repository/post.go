package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/platefeed/engagement/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// postRepository 协调层，协调缓存和数据库
type postRepository struct {
	db           domain.PostDBRepository
	cache        domain.PostCache
	rebuildGroup singleflight.Group
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository 创建协调层repository
func NewPostRepository(db domain.PostDBRepository, cache domain.PostCache) *postRepository {
	return &postRepository{
		db:    db,
		cache: cache,
	}
}

// GetByID reads through the cache; misses are rebuilt under singleflight so a
// hot post never stampedes the database.
func (r *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := r.cache.GetPost(ctx, id)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error: %v", err)
	}

	key := "post:" + strconv.FormatInt(id, 10)
	result, err, _ := r.rebuildGroup.Do(key, func() (interface{}, error) {
		p, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.SetPost(context.WithoutCancel(ctx), &p); err != nil {
			logrus.Warnf("failed to set post cache: %v", err)
		}

		return p, nil
	})
	if err != nil {
		return domain.Post{}, err
	}

	return result.(domain.Post), nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cached, err := r.cache.GetPostByIDs(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to GetPostByIDs from cache: %v", err)
		cached = make([]domain.Post, len(ids))
	}

	missed := make([]int64, 0, len(ids))
	byID := make(map[int64]domain.Post, len(ids))
	for i, id := range ids {
		if cached[i].ID == id {
			byID[id] = cached[i]
		} else {
			missed = append(missed, id)
		}
	}

	if len(missed) > 0 {
		fromDB, err := r.db.GetByIDs(ctx, missed)
		if err != nil {
			return nil, err
		}
		for _, p := range fromDB {
			byID[p.ID] = p
		}

		go func(ps []domain.Post) {
			_ = r.cache.BatchSetPost(context.Background(), ps)
		}(fromDB)
	}

	// missing posts are skipped, preserving the input order otherwise
	res := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	return r.db.Store(ctx, p)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Delete(ctx, id)
	if err != nil {
		return err
	}

	go func(id int64) {
		_ = r.cache.DeletePost(context.Background(), id)
	}(id)

	return nil
}

func (r *postRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}
