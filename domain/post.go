package domain

import (
	"context"
	"time"
)

// Post is representing the Post data struct
type Post struct {
	ID        int64     // Unique identifier for the post
	Title     string    // Post title
	Content   string    // Post body content
	AuthorID  int64     // Posting user
	Likes     int64     // Denormalized like count, equals the like membership cardinality
	UpdatedAt time.Time // Last update timestamp
	CreatedAt time.Time // Creation timestamp
}

// PostDetail is a post hydrated with the viewer's engagement state.
type PostDetail struct {
	Post
	IsLiked     bool
	IsFavorited bool
}

// PostDBRepository defines the contract for post persistence.
type PostDBRepository interface {
	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	// GetByIDs retrieves posts by given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]Post, error)

	// Store creates a new post and backfills its ID.
	Store(ctx context.Context, p *Post) error

	// Delete removes a post by its ID.
	// Returns ErrNotFound if not exists.
	Delete(ctx context.Context, id int64) error

	// FetchIDs pages over all post IDs, used to warm the bloom filter at boot.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// PostCache is the redis-side read cache for posts.
type PostCache interface {
	GetPost(ctx context.Context, id int64) (Post, error)
	SetPost(ctx context.Context, p *Post) error
	GetPostByIDs(ctx context.Context, ids []int64) ([]Post, error)
	BatchSetPost(ctx context.Context, ps []Post) error
	DeletePost(ctx context.Context, id int64) error
}

// PostRepository is the coordinating read/write path over DB and cache.
type PostRepository interface {
	GetByID(ctx context.Context, id int64) (Post, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Post, error)
	Store(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// PostUsecase defines the business logic contract for posts.
type PostUsecase interface {
	// GetByID returns the post with the viewer's engagement state filled in.
	// viewerID == 0 means an anonymous viewer.
	GetByID(ctx context.Context, id int64, viewerID int64) (PostDetail, error)
	Store(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64, callerID int64) error
	InitBloomFilter(ctx context.Context) error
}
