package model

import (
	"time"

	"github.com/platefeed/engagement/domain"
)

type UserLike struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:idx_user_post"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_post"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (UserLike) TableName() string {
	return "user_likes"
}

func NewUserLikeFromDomain(r domain.EngagementRecord) UserLike {
	return UserLike{
		PostID:    r.PostID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

type UserFavorite struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:idx_user_fav_post"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_fav_post"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}

func NewUserFavoriteFromDomain(r domain.EngagementRecord) UserFavorite {
	return UserFavorite{
		PostID:    r.PostID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}
