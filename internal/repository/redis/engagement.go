package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/platefeed/engagement/domain"
	"github.com/redis/go-redis/v9"
)

const (
	KeyUserLikedPosts    = "engage:user:%d:liked"
	KeyUserFavoritePosts = "engage:user:%d:favorites"
	KeyLikeCount         = "engage:post:%d:likes"

	// placeholderMember keeps seeded sets alive even when the user has no
	// memberships yet; real post IDs start at 1.
	placeholderMember = "0"

	engagementTTLSeconds = 1800
)

type engagementCache struct {
	client *redis.Client
}

var _ domain.EngagementCache = (*engagementCache)(nil)

func NewEngagementCache(client *redis.Client) *engagementCache {
	return &engagementCache{
		client,
	}
}

// toggleLikeScript flips the actor's membership and the paired counter in one
// atomic step, so two concurrent toggles by the same actor can never both
// observe "absent".
// KEYS = {该用户喜欢的帖子列表, 点赞数}
// ARGV = {本次帖子ID}
var toggleLikeScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return {-1, 0} -- 未缓存, 需要加载缓存
	end
	if redis.call('EXISTS', KEYS[2]) == 0 then
		return {-2, 0} -- 点赞数未缓存
	end

	redis.call('EXPIRE', KEYS[1], 1800)
	redis.call('EXPIRE', KEYS[2], 1800)

	if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
		redis.call('SREM', KEYS[1], ARGV[1])
		local count = redis.call('DECR', KEYS[2])
		if count < 0 then
			count = 0
			redis.call('SET', KEYS[2], 0)
		end
		return {0, count}
	else
		redis.call('SADD', KEYS[1], ARGV[1])
		return {1, redis.call('INCR', KEYS[2])}
	end
`)

func (c *engagementCache) ToggleLike(ctx context.Context, record domain.EngagementRecord) (domain.ToggleResult, error) {
	keys := []string{
		fmt.Sprintf(KeyUserLikedPosts, record.UserID),
		fmt.Sprintf(KeyLikeCount, record.PostID),
	}
	res, err := toggleLikeScript.Run(ctx, c.client, keys, record.PostID).Int64Slice()
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if len(res) != 2 {
		return domain.ToggleResult{}, domain.ErrInternalServerError
	}

	switch res[0] {
	case -1, -2:
		return domain.ToggleResult{}, domain.ErrCacheMiss
	default:
		return domain.ToggleResult{
			Active: res[0] == 1,
			Count:  res[1],
		}, nil
	}
}

// KEYS = {该用户收藏的帖子列表}
// ARGV = {本次帖子ID}
var toggleFavoriteScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -1 -- 未缓存, 需要加载缓存
	end

	redis.call('EXPIRE', KEYS[1], 1800)

	if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
		redis.call('SREM', KEYS[1], ARGV[1])
		return 0
	else
		redis.call('SADD', KEYS[1], ARGV[1])
		return 1
	end
`)

func (c *engagementCache) ToggleFavorite(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	key := fmt.Sprintf(KeyUserFavoritePosts, record.UserID)
	res, err := toggleFavoriteScript.Run(ctx, c.client, []string{key}, record.PostID).Int()
	if err != nil {
		return false, err
	}

	switch res {
	case -1:
		return false, domain.ErrCacheMiss
	default:
		return res == 1, nil
	}
}

func (c *engagementCache) IsLiked(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	return c.isMember(ctx, fmt.Sprintf(KeyUserLikedPosts, record.UserID), record.PostID)
}

func (c *engagementCache) IsFavorited(ctx context.Context, record domain.EngagementRecord) (bool, error) {
	return c.isMember(ctx, fmt.Sprintf(KeyUserFavoritePosts, record.UserID), record.PostID)
}

func (c *engagementCache) isMember(ctx context.Context, key string, postID int64) (bool, error) {
	pipe := c.client.Pipeline()
	existsCmd := pipe.Exists(ctx, key)
	memberCmd := pipe.SIsMember(ctx, key, postID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	if existsCmd.Val() == 0 {
		return false, domain.ErrCacheMiss
	}
	return memberCmd.Val(), nil
}

func (c *engagementCache) GetLikeCount(ctx context.Context, postID int64) (int64, error) {
	res, err := c.client.Get(ctx, fmt.Sprintf(KeyLikeCount, postID)).Int64()
	if err == redis.Nil {
		return 0, domain.ErrCacheMiss
	}
	return res, err
}

func (c *engagementCache) SetLikeCount(ctx context.Context, postID int64, likes int64) error {
	// NX so a concurrent toggle's increment is never clobbered by the seed
	key := fmt.Sprintf(KeyLikeCount, postID)
	return c.client.SetNX(ctx, key, likes, engagementTTLSeconds*time.Second).Err()
}

func (c *engagementCache) SetUserLikedPosts(ctx context.Context, uid int64, postIDs []int64) error {
	return c.seedSet(ctx, fmt.Sprintf(KeyUserLikedPosts, uid), postIDs)
}

func (c *engagementCache) SetUserFavoritePosts(ctx context.Context, uid int64, postIDs []int64) error {
	return c.seedSet(ctx, fmt.Sprintf(KeyUserFavoritePosts, uid), postIDs)
}

func (c *engagementCache) seedSet(ctx context.Context, key string, postIDs []int64) error {
	members := make([]any, 0, len(postIDs)+1)
	members = append(members, placeholderMember)
	for _, id := range postIDs {
		members = append(members, id)
	}

	pipe := c.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, engagementTTLSeconds*time.Second)
	_, err := pipe.Exec(ctx)
	return err
}
