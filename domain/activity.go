package domain

import (
	"context"
	"time"
)

const (
	// ActivityLogCapacity 每个用户最多保留200条历史记录，超出丢弃最旧的
	ActivityLogCapacity = 200
)

// EventType is the closed set of things a user's history can record.
type EventType string

const (
	EventView           EventType = "view"
	EventComment        EventType = "comment"
	EventFavorite       EventType = "favorite"
	EventUnsaved        EventType = "unsaved"
	EventLike           EventType = "like"
	EventUnlike         EventType = "unlike"
	EventCommentEdited  EventType = "comment_edited"
	EventCommentDeleted EventType = "comment_deleted"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventView, EventComment, EventFavorite, EventUnsaved,
		EventLike, EventUnlike, EventCommentEdited, EventCommentDeleted:
		return true
	}
	return false
}

// ActivityEvent is one record in a user's history. The post and comment
// references are weak: the event outlives both, which is why Title carries a
// snapshot of the post title from append time.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	PostID    int64     `json:"post_id"`
	CommentID int64     `json:"comment_id,omitempty"`
	Text      string    `json:"text,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryQuery are the normalized read parameters for a history page.
type HistoryQuery struct {
	Page  int64
	Limit int64
	Type  EventType // empty means all types
	Text  string    // empty means no text filter
}

// HistoryPage is one page of a user's filtered history.
type HistoryPage struct {
	Items      []ActivityEvent
	Total      int64
	Page       int64
	TotalPages int64
}

// ActivityLogRepository owns each user's bounded, newest-first event sequence.
type ActivityLogRepository interface {
	// Append prepends the event and truncates the log to ActivityLogCapacity.
	// For view events any prior view of the same post is removed in the same
	// atomic step, so the log never holds two views of one post.
	Append(ctx context.Context, userID int64, event ActivityEvent) error

	// Fetch returns the whole log, newest first. Missing log reads as empty.
	Fetch(ctx context.Context, userID int64) ([]ActivityEvent, error)

	// Clear truncates the user's log to empty. No error if already empty.
	Clear(ctx context.Context, userID int64) error
}

// HistoryWorker is the best-effort cross-write channel from the engagement
// side into the activity log. Failures are counted and logged, never
// surfaced to the toggle caller.
type HistoryWorker interface {
	Start(ctx context.Context)
	Send(userID int64, event ActivityEvent)
}

// ActivityUsecase is the history read/write surface.
type ActivityUsecase interface {
	// Record validates, stamps (id, createdAt) and appends one event.
	// A missing title is backfilled from the post, best-effort.
	Record(ctx context.Context, userID int64, event ActivityEvent) error

	// Clear empties the user's history.
	Clear(ctx context.Context, userID int64) error

	// Query filters and paginates the user's history, newest first.
	Query(ctx context.Context, userID int64, q HistoryQuery) (HistoryPage, error)
}
