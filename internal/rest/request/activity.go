package request

import "github.com/platefeed/engagement/domain"

type ActivityEvent struct {
	Type      string `json:"type" binding:"required"`
	PostID    int64  `json:"post_id" binding:"required"`
	CommentID int64  `json:"comment_id"`
	Text      string `json:"text"`
	Title     string `json:"title"`
}

// ToDomain: Request -> Domain
func (r *ActivityEvent) ToDomain() domain.ActivityEvent {
	return domain.ActivityEvent{
		Type:      domain.EventType(r.Type),
		PostID:    r.PostID,
		CommentID: r.CommentID,
		Text:      r.Text,
		Title:     r.Title,
	}
}
