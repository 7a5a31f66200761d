package domain

import (
	"context"
	"time"
)

const (
	// 默认每个用户只加载最近的300条点赞/收藏记录进缓存
	EngagementRecordLimit = 300
)

// Relation is the kind of engagement membership a toggle flips.
type Relation string

const (
	RelationLike     Relation = "like"
	RelationFavorite Relation = "favorite"
)

// EngagementRecord is one user-post membership row (a like or a favorite).
type EngagementRecord struct {
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// ToggleResult is the outcome of a membership flip.
type ToggleResult struct {
	Active bool  // new membership state for the actor
	Count  int64 // like count after the flip, only meaningful for likes
}

type EngagementAction int8

const (
	ActionAdd    EngagementAction = 1
	ActionRemove EngagementAction = -1
)

func (a EngagementAction) String() string {
	switch a {
	case ActionAdd:
		return "ADD"
	case ActionRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// EngagementChanges is a reconciliation batch flushed to the database.
type EngagementChanges struct {
	LikesToAdd        []EngagementRecord
	LikesToRemove     []EngagementRecord
	FavoritesToAdd    []EngagementRecord
	FavoritesToRemove []EngagementRecord
}

// EngagementDBRepository owns the durable membership rows.
// The denormalized post like counter is always recomputed from the
// membership table inside ApplyChanges, never adjusted independently.
type EngagementDBRepository interface {
	// FetchUserLikedPosts 按 post_id DESC 取 user_id=? 的点赞记录，限制条数
	FetchUserLikedPosts(ctx context.Context, uid int64, limit int64) ([]int64, error)

	// FetchUserFavoritePosts returns the post IDs the user has favorited, newest first.
	FetchUserFavoritePosts(ctx context.Context, uid int64, limit int64) ([]int64, error)

	// CountPostLikes returns the like membership cardinality for a post.
	CountPostLikes(ctx context.Context, postID int64) (int64, error)

	HasLiked(ctx context.Context, uid, postID int64) (bool, error)
	HasFavorited(ctx context.Context, uid, postID int64) (bool, error)

	// ApplyChanges applies a batch of membership adds/removes in one transaction
	// and recomputes every touched post's like counter from the table.
	ApplyChanges(ctx context.Context, changes EngagementChanges) error
}

// EngagementCache is the redis-side membership state. Toggles run as one
// atomic script so two concurrent flips by the same actor cannot both add.
type EngagementCache interface {
	// ToggleLike flips the actor's like membership and the paired counter.
	// Returns ErrCacheMiss when the actor's liked set or the counter is not
	// seeded yet.
	ToggleLike(ctx context.Context, record EngagementRecord) (ToggleResult, error)

	// ToggleFavorite flips the actor's favorite membership.
	ToggleFavorite(ctx context.Context, record EngagementRecord) (active bool, err error)

	IsLiked(ctx context.Context, record EngagementRecord) (bool, error)
	IsFavorited(ctx context.Context, record EngagementRecord) (bool, error)

	GetLikeCount(ctx context.Context, postID int64) (int64, error)
	// SetLikeCount seeds the counter only when absent, so concurrent flips
	// are never clobbered.
	SetLikeCount(ctx context.Context, postID int64, likes int64) error

	SetUserLikedPosts(ctx context.Context, uid int64, postIDs []int64) error
	SetUserFavoritePosts(ctx context.Context, uid int64, postIDs []int64) error
}

// SyncEngagementWorker reconciles cache-side toggles into the database.
type SyncEngagementWorker interface {
	Start(ctx context.Context)

	// Send enqueues a membership change, dropped when the buffer is full.
	Send(record EngagementRecord, relation Relation, action EngagementAction)
}

// EngagementUsecase exposes the toggle operations and the read paths.
type EngagementUsecase interface {
	// ToggleLike flips the caller's like on a post.
	// Returns ErrNotFound if the post doesn't exist.
	ToggleLike(ctx context.Context, postID, userID int64) (ToggleResult, error)

	// ToggleFavorite flips the caller's favorite on a post.
	ToggleFavorite(ctx context.Context, postID, userID int64) (bool, error)

	// State reports whether the user has liked / favorited the post.
	State(ctx context.Context, postID, userID int64) (liked bool, favorited bool, err error)

	// LikeCount returns the current like count of a post.
	LikeCount(ctx context.Context, postID int64) (int64, error)

	// FavoritePosts returns the user's favorited posts, newest first.
	FavoritePosts(ctx context.Context, userID int64, limit int64) ([]Post, error)
}
