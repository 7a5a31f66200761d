package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/platefeed/engagement/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	KeyPost = "post:%d"

	postCacheTTL = 10 * time.Minute
)

type postCache struct {
	client *redis.Client
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{
		client,
	}
}

func (c *postCache) GetPost(ctx context.Context, id int64) (res domain.Post, err error) {
	key := fmt.Sprintf(KeyPost, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Post{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Post{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Post{}, err
	}
	return
}

func (c *postCache) GetPostByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(KeyPost, id)
	}

	jsonList, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, len(ids))
	for i, val := range jsonList {
		if val == nil {
			continue
		}

		var p domain.Post
		if str, ok := val.(string); ok {
			_ = json.Unmarshal([]byte(str), &p)
			posts[i] = p
		}
	}

	return posts, nil
}

func (c *postCache) SetPost(ctx context.Context, p *domain.Post) (err error) {
	key := fmt.Sprintf(KeyPost, p.ID)
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, postCacheTTL).Err()
	return
}

func (c *postCache) BatchSetPost(ctx context.Context, ps []domain.Post) error {
	if len(ps) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for i := range ps {
		data, err := json.Marshal(ps[i])
		if err != nil {
			logrus.Warnf("failed to marshal post for cache, ID: %d, err: %v", ps[i].ID, err)
			continue
		}
		pipe.Set(ctx, fmt.Sprintf(KeyPost, ps[i].ID), data, postCacheTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *postCache) DeletePost(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyPost, id)
	return c.client.Del(ctx, key).Err()
}
