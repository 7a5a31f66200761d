package post

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platefeed/engagement/domain"
)

const bloomWarmBatch = 1000

type Service struct {
	postRepo   domain.PostRepository
	bloomRepo  domain.BloomRepository
	engagement domain.EngagementUsecase
	history    domain.HistoryWorker
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(
	postRepo domain.PostRepository,
	bloomRepo domain.BloomRepository,
	engagement domain.EngagementUsecase,
	history domain.HistoryWorker,
) *Service {
	return &Service{
		postRepo:   postRepo,
		bloomRepo:  bloomRepo,
		engagement: engagement,
		history:    history,
	}
}

// GetByID returns the post with the viewer's engagement state, fetched
// concurrently. Authenticated views also land in the viewer's history,
// best-effort.
func (s *Service) GetByID(ctx context.Context, id int64, viewerID int64) (domain.PostDetail, error) {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %d does not exist", id)
		return domain.PostDetail{}, domain.ErrNotFound
	}

	var (
		post             domain.Post
		likeCount        int64
		liked, favorited bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.postRepo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		post = p
		return nil
	})
	g.Go(func() error {
		count, err := s.engagement.LikeCount(gctx, id)
		if err != nil {
			return err
		}
		likeCount = count
		return nil
	})
	if viewerID > 0 {
		g.Go(func() error {
			l, f, err := s.engagement.State(gctx, id, viewerID)
			if err != nil {
				return err
			}
			liked, favorited = l, f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.PostDetail{}, err
	}

	detail := domain.PostDetail{
		Post:        post,
		IsLiked:     liked,
		IsFavorited: favorited,
	}
	// the engagement-side count is live; the Post row may lag a flush
	detail.Post.Likes = likeCount

	if viewerID > 0 {
		s.history.Send(viewerID, domain.ActivityEvent{
			Type:   domain.EventView,
			PostID: detail.ID,
			Title:  detail.Title,
		})
	}

	return detail, nil
}

func (s *Service) Store(ctx context.Context, p *domain.Post) error {
	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, p.ID); err != nil {
		logrus.Warnf("failed to add post %d to bloom filter: %v", p.ID, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64, callerID int64) error {
	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != callerID {
		return domain.ErrForbidden
	}

	return s.postRepo.Delete(ctx, id)
}

// InitBloomFilter pages over all post IDs and loads them into the filter.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.postRepo.FetchIDs(ctx, cursor, bloomWarmBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}
