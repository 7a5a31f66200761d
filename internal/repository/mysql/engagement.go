package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/repository/mysql/model"
	"github.com/sirupsen/logrus"
)

type engagementRepository struct {
	DB *gorm.DB
}

var _ domain.EngagementDBRepository = (*engagementRepository)(nil)

func NewEngagementDBRepository(db *gorm.DB) *engagementRepository {
	return &engagementRepository{db}
}

func (m *engagementRepository) FetchUserLikedPosts(ctx context.Context, uid int64, limit int64) ([]int64, error) {
	var res []int64
	err := m.DB.WithContext(ctx).
		Model(&model.UserLike{}).
		Select("post_id").
		Where("user_id = ?", uid).
		Order("post_id desc").
		Limit(int(limit)).
		Find(&res).Error

	return res, err
}

func (m *engagementRepository) FetchUserFavoritePosts(ctx context.Context, uid int64, limit int64) ([]int64, error) {
	var res []int64
	err := m.DB.WithContext(ctx).
		Model(&model.UserFavorite{}).
		Select("post_id").
		Where("user_id = ?", uid).
		Order("created_at desc").
		Limit(int(limit)).
		Find(&res).Error

	return res, err
}

func (m *engagementRepository) CountPostLikes(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.UserLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (m *engagementRepository) HasLiked(ctx context.Context, uid, postID int64) (bool, error) {
	err := m.DB.WithContext(ctx).
		First(&model.UserLike{}, "user_id = ? AND post_id = ?", uid, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *engagementRepository) HasFavorited(ctx context.Context, uid, postID int64) (bool, error) {
	err := m.DB.WithContext(ctx).
		First(&model.UserFavorite{}, "user_id = ? AND post_id = ?", uid, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ApplyChanges applies a reconciliation batch in one transaction. Orphan rows
// pointing at deleted posts are dropped, and the like counter of every touched
// post is recomputed from the membership table so that `likes` can never drift
// from the set cardinality.
func (m *engagementRepository) ApplyChanges(ctx context.Context, changes domain.EngagementChanges) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likedToAdd, err := filterOrphans(tx, changes.LikesToAdd)
		if err != nil {
			return err
		}
		favToAdd, err := filterOrphans(tx, changes.FavoritesToAdd)
		if err != nil {
			return err
		}

		if len(changes.LikesToRemove) > 0 {
			for _, row := range changes.LikesToRemove {
				if err := tx.Where("user_id = ? AND post_id = ?", row.UserID, row.PostID).
					Delete(&model.UserLike{}).Error; err != nil {
					return err
				}
			}
		}
		if len(changes.FavoritesToRemove) > 0 {
			for _, row := range changes.FavoritesToRemove {
				if err := tx.Where("user_id = ? AND post_id = ?", row.UserID, row.PostID).
					Delete(&model.UserFavorite{}).Error; err != nil {
					return err
				}
			}
		}

		if len(likedToAdd) > 0 {
			rows := make([]model.UserLike, len(likedToAdd))
			for i, row := range likedToAdd {
				rows[i] = model.NewUserLikeFromDomain(row)
			}
			if err := tx.Clauses(clause.OnConflict{
				DoNothing: true,
			}).Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(favToAdd) > 0 {
			rows := make([]model.UserFavorite, len(favToAdd))
			for i, row := range favToAdd {
				rows[i] = model.NewUserFavoriteFromDomain(row)
			}
			if err := tx.Clauses(clause.OnConflict{
				DoNothing: true,
			}).Create(&rows).Error; err != nil {
				return err
			}
		}

		// recompute like counters for every post touched by a like change
		uniquePostIDs := make(map[int64]struct{})
		for _, row := range likedToAdd {
			uniquePostIDs[row.PostID] = struct{}{}
		}
		for _, row := range changes.LikesToRemove {
			uniquePostIDs[row.PostID] = struct{}{}
		}

		for pid := range uniquePostIDs {
			var realCount int64
			if err := tx.Model(&model.UserLike{}).
				Where("post_id = ?", pid).
				Count(&realCount).Error; err != nil {
				return err
			}

			if err := tx.Model(&model.Post{}).
				Where("id = ?", pid).
				UpdateColumn("likes", realCount).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func filterOrphans(tx *gorm.DB, rows []domain.EngagementRecord) ([]domain.EngagementRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	postIDs := make([]int64, 0, len(rows))
	seen := make(map[int64]bool)
	for _, row := range rows {
		if !seen[row.PostID] {
			postIDs = append(postIDs, row.PostID)
			seen[row.PostID] = true
		}
	}

	var validIDs []int64
	if err := tx.Model(&model.Post{}).
		Where("id IN ?", postIDs).
		Pluck("id", &validIDs).Error; err != nil {
		return nil, err
	}

	validMap := make(map[int64]bool)
	for _, id := range validIDs {
		validMap[id] = true
	}

	filtered := make([]domain.EngagementRecord, 0, len(rows))
	for _, row := range rows {
		if validMap[row.PostID] {
			filtered = append(filtered, row)
		} else {
			logrus.Warnf("Dropped orphan engagement row for post %d", row.PostID)
		}
	}
	return filtered, nil
}
