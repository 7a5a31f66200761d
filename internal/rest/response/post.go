package response

import (
	"github.com/platefeed/engagement/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Post struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  int64  `json:"author_id"`
	Likes     int64  `json:"likes"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Likes:     p.Likes,
		UpdatedAt: p.UpdatedAt.Format(DateTimeFormat),
		CreatedAt: p.CreatedAt.Format(DateTimeFormat),
	}
}

type PostDetail struct {
	Post
	IsLiked     bool `json:"is_liked"`
	IsFavorited bool `json:"is_favorited"`
}

func NewPostDetailFromDomain(d *domain.PostDetail) PostDetail {
	return PostDetail{
		Post:        NewPostFromDomain(&d.Post),
		IsLiked:     d.IsLiked,
		IsFavorited: d.IsFavorited,
	}
}
