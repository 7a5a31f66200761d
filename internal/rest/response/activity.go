package response

import "github.com/platefeed/engagement/domain"

type ActivityEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	PostID    int64  `json:"post_id"`
	CommentID int64  `json:"comment_id,omitempty"`
	Text      string `json:"text,omitempty"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at"`
}

func NewActivityEventFromDomain(ev *domain.ActivityEvent) ActivityEvent {
	return ActivityEvent{
		ID:        ev.ID,
		Type:      string(ev.Type),
		PostID:    ev.PostID,
		CommentID: ev.CommentID,
		Text:      ev.Text,
		Title:     ev.Title,
		CreatedAt: ev.CreatedAt.Format(DateTimeFormat),
	}
}

type HistoryPage struct {
	Items      []ActivityEvent `json:"items"`
	Total      int64           `json:"total"`
	Page       int64           `json:"page"`
	TotalPages int64           `json:"total_pages"`
}

// NewHistoryPageFromDomain: Domain -> Response
func NewHistoryPageFromDomain(p *domain.HistoryPage) HistoryPage {
	items := make([]ActivityEvent, len(p.Items))
	for i := range p.Items {
		items[i] = NewActivityEventFromDomain(&p.Items[i])
	}
	return HistoryPage{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}
}
