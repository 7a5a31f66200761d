package activity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platefeed/engagement/domain"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type Service struct {
	activityRepo domain.ActivityLogRepository
	postRepo     domain.PostRepository
}

var _ domain.ActivityUsecase = (*Service)(nil)

// NewService will create a new activity service object
func NewService(activityRepo domain.ActivityLogRepository, postRepo domain.PostRepository) *Service {
	return &Service{
		activityRepo: activityRepo,
		postRepo:     postRepo,
	}
}

// Record stamps and appends one event to the caller's history. The title
// snapshot keeps the entry meaningful after the post is edited or deleted, so
// a failed title lookup degrades to an untitled entry instead of aborting.
func (s *Service) Record(ctx context.Context, userID int64, event domain.ActivityEvent) error {
	if !event.Type.Valid() {
		return domain.ErrBadParamInput
	}
	if event.PostID <= 0 {
		return domain.ErrBadParamInput
	}

	if event.Title == "" {
		post, err := s.postRepo.GetByID(ctx, event.PostID)
		if err != nil {
			logrus.Warnf("failed to snapshot title of post %d: %v", event.PostID, err)
		} else {
			event.Title = post.Title
		}
	}

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()

	return s.activityRepo.Append(ctx, userID, event)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.activityRepo.Clear(ctx, userID)
}

// Query filters and paginates the user's history. The log's newest-first
// order is preserved and the total counts every filtered event, not just the
// returned page.
func (s *Service) Query(ctx context.Context, userID int64, q domain.HistoryQuery) (domain.HistoryPage, error) {
	if q.Type != "" && !q.Type.Valid() {
		return domain.HistoryPage{}, domain.ErrBadParamInput
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}

	events, err := s.activityRepo.Fetch(ctx, userID)
	if err != nil {
		return domain.HistoryPage{}, err
	}

	filtered := make([]domain.ActivityEvent, 0, len(events))
	needle := strings.ToLower(q.Text)
	for _, ev := range events {
		if q.Type != "" && ev.Type != q.Type {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(ev.Title), needle) &&
			!strings.Contains(strings.ToLower(ev.Text), needle) {
			continue
		}
		filtered = append(filtered, ev)
	}

	total := int64(len(filtered))
	totalPages := (total + q.Limit - 1) / q.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return domain.HistoryPage{
		Items:      filtered[start:end],
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages,
	}, nil
}
