package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/engagement/domain"
)

func TestToggleLikeActivates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	keys := []string{
		fmt.Sprintf(KeyUserLikedPosts, 7),
		fmt.Sprintf(KeyLikeCount, 42),
	}
	mock.ExpectEvalSha(toggleLikeScript.Hash(), keys, int64(42)).
		SetVal([]interface{}{int64(1), int64(5)})

	res, err := cache.ToggleLike(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, int64(5), res.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeDeactivates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	keys := []string{
		fmt.Sprintf(KeyUserLikedPosts, 7),
		fmt.Sprintf(KeyLikeCount, 42),
	}
	mock.ExpectEvalSha(toggleLikeScript.Hash(), keys, int64(42)).
		SetVal([]interface{}{int64(0), int64(4)})

	res, err := cache.ToggleLike(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, int64(4), res.Count)
}

func TestToggleLikeReportsCacheMiss(t *testing.T) {
	for _, sentinel := range []int64{-1, -2} {
		client, mock := redismock.NewClientMock()
		cache := NewEngagementCache(client)

		keys := []string{
			fmt.Sprintf(KeyUserLikedPosts, 7),
			fmt.Sprintf(KeyLikeCount, 42),
		}
		mock.ExpectEvalSha(toggleLikeScript.Hash(), keys, int64(42)).
			SetVal([]interface{}{sentinel, int64(0)})

		_, err := cache.ToggleLike(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	}
}

func TestToggleFavorite(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserFavoritePosts, 7)
	mock.ExpectEvalSha(toggleFavoriteScript.Hash(), []string{key}, int64(42)).
		SetVal(int64(1))

	active, err := cache.ToggleFavorite(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	require.NoError(t, err)
	assert.True(t, active)
}

func TestToggleFavoriteReportsCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserFavoritePosts, 7)
	mock.ExpectEvalSha(toggleFavoriteScript.Hash(), []string{key}, int64(42)).
		SetVal(int64(-1))

	_, err := cache.ToggleFavorite(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestToggleLikeScriptFlipsMembershipAndCounter(t *testing.T) {
	cache := NewEngagementCache(newTestClient(t))
	ctx := context.TODO()

	require.NoError(t, cache.SetUserLikedPosts(ctx, 7, nil))
	require.NoError(t, cache.SetLikeCount(ctx, 42, 0))

	record := domain.EngagementRecord{UserID: 7, PostID: 42}

	res, err := cache.ToggleLike(ctx, record)
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, int64(1), res.Count)

	liked, err := cache.IsLiked(ctx, record)
	require.NoError(t, err)
	assert.True(t, liked)

	res, err = cache.ToggleLike(ctx, record)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, int64(0), res.Count)

	liked, err = cache.IsLiked(ctx, record)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikeScriptClampsCounterAtZero(t *testing.T) {
	cache := NewEngagementCache(newTestClient(t))
	ctx := context.TODO()

	// seeded set already holds the post but the counter reads zero
	require.NoError(t, cache.SetUserLikedPosts(ctx, 7, []int64{42}))
	require.NoError(t, cache.SetLikeCount(ctx, 42, 0))

	res, err := cache.ToggleLike(ctx, domain.EngagementRecord{UserID: 7, PostID: 42})
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, int64(0), res.Count)

	count, err := cache.GetLikeCount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestToggleLikeScriptRequiresSeededState(t *testing.T) {
	cache := NewEngagementCache(newTestClient(t))
	ctx := context.TODO()

	record := domain.EngagementRecord{UserID: 7, PostID: 42}

	// nothing seeded at all
	_, err := cache.ToggleLike(ctx, record)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// set seeded but the counter still absent
	require.NoError(t, cache.SetUserLikedPosts(ctx, 7, nil))
	_, err = cache.ToggleLike(ctx, record)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestToggleFavoriteScriptFlipsMembership(t *testing.T) {
	cache := NewEngagementCache(newTestClient(t))
	ctx := context.TODO()

	record := domain.EngagementRecord{UserID: 7, PostID: 42}

	_, err := cache.ToggleFavorite(ctx, record)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, cache.SetUserFavoritePosts(ctx, 7, nil))

	active, err := cache.ToggleFavorite(ctx, record)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = cache.ToggleFavorite(ctx, record)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsLiked(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserLikedPosts, 7)
	mock.ExpectExists(key).SetVal(1)
	mock.ExpectSIsMember(key, int64(42)).SetVal(true)

	liked, err := cache.IsLiked(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestIsLikedReportsCacheMissWhenSetAbsent(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserLikedPosts, 7)
	mock.ExpectExists(key).SetVal(0)
	mock.ExpectSIsMember(key, int64(42)).SetVal(false)

	_, err := cache.IsLiked(context.TODO(), domain.EngagementRecord{UserID: 7, PostID: 42})
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestGetLikeCountMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyLikeCount, 42)
	mock.ExpectGet(key).RedisNil()

	_, err := cache.GetLikeCount(context.TODO(), 42)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestGetLikeCount(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyLikeCount, 42)
	mock.ExpectGet(key).SetVal("5")

	count, err := cache.GetLikeCount(context.TODO(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestSetLikeCountUsesNX(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyLikeCount, 42)
	mock.ExpectSetNX(key, int64(5), engagementTTLSeconds*time.Second).SetVal(true)

	assert.NoError(t, cache.SetLikeCount(context.TODO(), 42, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserLikedPostsSeedsPlaceholder(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserLikedPosts, 7)
	mock.ExpectSAdd(key, placeholderMember, int64(1), int64(2)).SetVal(3)
	mock.ExpectExpire(key, engagementTTLSeconds*time.Second).SetVal(true)

	assert.NoError(t, cache.SetUserLikedPosts(context.TODO(), 7, []int64{1, 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUserLikedPostsEmptyStillSeeds(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewEngagementCache(client)

	key := fmt.Sprintf(KeyUserLikedPosts, 7)
	mock.ExpectSAdd(key, placeholderMember).SetVal(1)
	mock.ExpectExpire(key, engagementTTLSeconds*time.Second).SetVal(true)

	assert.NoError(t, cache.SetUserLikedPosts(context.TODO(), 7, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
