package engagement

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/metrics"
)

type Service struct {
	cache      domain.EngagementCache
	repo       domain.EngagementDBRepository
	postRepo   domain.PostRepository
	bloomRepo  domain.BloomRepository
	syncWorker domain.SyncEngagementWorker
	history    domain.HistoryWorker
}

var _ domain.EngagementUsecase = (*Service)(nil)

// NewService will create a new engagement service object
func NewService(
	cache domain.EngagementCache,
	repo domain.EngagementDBRepository,
	postRepo domain.PostRepository,
	bloomRepo domain.BloomRepository,
	syncWorker domain.SyncEngagementWorker,
	history domain.HistoryWorker,
) *Service {
	return &Service{
		cache:      cache,
		repo:       repo,
		postRepo:   postRepo,
		bloomRepo:  bloomRepo,
		syncWorker: syncWorker,
		history:    history,
	}
}

// mustExist resolves the post, short-circuiting through the bloom filter so
// toggles on made-up IDs never touch the membership state.
func (s *Service) mustExist(ctx context.Context, postID int64) (domain.Post, error) {
	exists, err := s.bloomRepo.Exists(ctx, postID)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %d does not exist", postID)
		return domain.Post{}, domain.ErrNotFound
	}

	return s.postRepo.GetByID(ctx, postID)
}

// ToggleLike flips the caller's like membership and the paired counter in one
// atomic cache operation, then reconciles the database and the caller's
// history off the request path.
func (s *Service) ToggleLike(ctx context.Context, postID, userID int64) (domain.ToggleResult, error) {
	if userID <= 0 {
		return domain.ToggleResult{}, domain.ErrUnauthorized
	}

	post, err := s.mustExist(ctx, postID)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	record := domain.EngagementRecord{PostID: postID, UserID: userID}
	res, err := s.cache.ToggleLike(ctx, record)
	if errors.Is(err, domain.ErrCacheMiss) {
		if err = s.seedLikeState(ctx, userID, postID); err != nil {
			return domain.ToggleResult{}, err
		}
		res, err = s.cache.ToggleLike(ctx, record)
	}
	if err != nil {
		logrus.Errorf("failed to toggle like in cache: %v", err)
		return domain.ToggleResult{}, err
	}

	action := domain.ActionRemove
	eventType := domain.EventUnlike
	state := "inactive"
	if res.Active {
		action = domain.ActionAdd
		eventType = domain.EventLike
		state = "active"
	}
	metrics.ToggleTotal.WithLabelValues(string(domain.RelationLike), state).Inc()

	s.syncWorker.Send(record, domain.RelationLike, action)
	s.history.Send(userID, domain.ActivityEvent{
		Type:   eventType,
		PostID: postID,
		Title:  post.Title,
	})

	return res, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, postID, userID int64) (bool, error) {
	if userID <= 0 {
		return false, domain.ErrUnauthorized
	}

	post, err := s.mustExist(ctx, postID)
	if err != nil {
		return false, err
	}

	record := domain.EngagementRecord{PostID: postID, UserID: userID}
	active, err := s.cache.ToggleFavorite(ctx, record)
	if errors.Is(err, domain.ErrCacheMiss) {
		if err = s.seedFavoriteState(ctx, userID); err != nil {
			return false, err
		}
		active, err = s.cache.ToggleFavorite(ctx, record)
	}
	if err != nil {
		logrus.Errorf("failed to toggle favorite in cache: %v", err)
		return false, err
	}

	action := domain.ActionRemove
	eventType := domain.EventUnsaved
	state := "inactive"
	if active {
		action = domain.ActionAdd
		eventType = domain.EventFavorite
		state = "active"
	}
	metrics.ToggleTotal.WithLabelValues(string(domain.RelationFavorite), state).Inc()

	s.syncWorker.Send(record, domain.RelationFavorite, action)
	s.history.Send(userID, domain.ActivityEvent{
		Type:   eventType,
		PostID: postID,
		Title:  post.Title,
	})

	return active, nil
}

func (s *Service) State(ctx context.Context, postID, userID int64) (bool, bool, error) {
	record := domain.EngagementRecord{PostID: postID, UserID: userID}

	liked, err := s.cache.IsLiked(ctx, record)
	if errors.Is(err, domain.ErrCacheMiss) {
		liked, err = s.repo.HasLiked(ctx, userID, postID)
	}
	if err != nil {
		return false, false, err
	}

	favorited, err := s.cache.IsFavorited(ctx, record)
	if errors.Is(err, domain.ErrCacheMiss) {
		favorited, err = s.repo.HasFavorited(ctx, userID, postID)
	}
	if err != nil {
		return false, false, err
	}

	return liked, favorited, nil
}

func (s *Service) LikeCount(ctx context.Context, postID int64) (int64, error) {
	count, err := s.cache.GetLikeCount(ctx, postID)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		return 0, err
	}

	count, err = s.repo.CountPostLikes(ctx, postID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetLikeCount(ctx, postID, count); err != nil {
		logrus.Warnf("failed to seed like count of post %d: %v", postID, err)
	}
	return count, nil
}

func (s *Service) FavoritePosts(ctx context.Context, userID int64, limit int64) ([]domain.Post, error) {
	if userID <= 0 {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > domain.EngagementRecordLimit {
		limit = domain.EngagementRecordLimit
	}

	ids, err := s.repo.FetchUserFavoritePosts(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByIDs(ctx, ids)
}

// seedLikeState warms the actor's liked set and the post's counter from the
// membership table. The counter seed derives from the set cardinality, which
// keeps the count == |likedBy| invariant anchored to one source.
func (s *Service) seedLikeState(ctx context.Context, userID, postID int64) error {
	likedPosts, err := s.repo.FetchUserLikedPosts(ctx, userID, domain.EngagementRecordLimit)
	if err != nil {
		logrus.Errorf("failed to FetchUserLikedPosts from repo: %v", err)
		return err
	}
	if err := s.cache.SetUserLikedPosts(ctx, userID, likedPosts); err != nil {
		logrus.Errorf("failed to SetUserLikedPosts to cache: %v", err)
		return err
	}

	count, err := s.repo.CountPostLikes(ctx, postID)
	if err != nil {
		logrus.Errorf("failed to CountPostLikes from repo: %v", err)
		return err
	}
	if err := s.cache.SetLikeCount(ctx, postID, count); err != nil {
		logrus.Errorf("failed to SetLikeCount to cache: %v", err)
		return err
	}
	return nil
}

func (s *Service) seedFavoriteState(ctx context.Context, userID int64) error {
	favorites, err := s.repo.FetchUserFavoritePosts(ctx, userID, domain.EngagementRecordLimit)
	if err != nil {
		logrus.Errorf("failed to FetchUserFavoritePosts from repo: %v", err)
		return err
	}
	if err := s.cache.SetUserFavoritePosts(ctx, userID, favorites); err != nil {
		logrus.Errorf("failed to SetUserFavoritePosts to cache: %v", err)
		return err
	}
	return nil
}
