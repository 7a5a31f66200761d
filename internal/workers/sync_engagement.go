package workers

import (
	"context"
	"time"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/metrics"
	"github.com/sirupsen/logrus"
)

type EngagementTask struct {
	PostID   int64
	UserID   int64
	Relation domain.Relation
	Action   domain.EngagementAction
}

type syncEngagementWorker struct {
	repo domain.EngagementDBRepository
	ch   chan EngagementTask
}

var _ domain.SyncEngagementWorker = (*syncEngagementWorker)(nil)

func NewSyncEngagementWorker(repo domain.EngagementDBRepository) *syncEngagementWorker {
	return &syncEngagementWorker{
		repo: repo,
		ch:   make(chan EngagementTask, 1024),
	}
}

// Send enqueues a membership change; a full buffer drops the task since the
// cache side already holds the truth and the next flush recomputes counters.
func (s *syncEngagementWorker) Send(record domain.EngagementRecord, relation domain.Relation, action domain.EngagementAction) {
	select {
	case s.ch <- EngagementTask{record.PostID, record.UserID, relation, action}:
	default:
		metrics.SyncTasksDropped.Inc()
		logrus.Info("SyncEngagementWorker's channel is full, task dropped")
	}
}

func (s *syncEngagementWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	const batchSize = 100
	batch := make([]EngagementTask, 0, batchSize)
	for {
		select {
		case task := <-s.ch:
			batch = append(batch, task)
			if len(batch) == batchSize {
				s.flush(ctx, batch)
				batch = make([]EngagementTask, 0, batchSize)
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = make([]EngagementTask, 0, batchSize)
		case <-ctx.Done():
			logrus.Info("shutting down SyncEngagementWorker, flushing remaining tasks...")
			s.flush(context.WithoutCancel(ctx), batch)
			return
		}
	}
}

type taskKey struct {
	pid, uid int64
	relation domain.Relation
}

// flush collapses the batch to the last action per (user, post, relation) and
// applies it in one transaction.
func (s *syncEngagementWorker) flush(ctx context.Context, batch []EngagementTask) {
	if len(batch) == 0 {
		return
	}

	tasks := make(map[taskKey]domain.EngagementAction)
	for i := range batch {
		key := taskKey{
			pid:      batch[i].PostID,
			uid:      batch[i].UserID,
			relation: batch[i].Relation,
		}
		tasks[key] = batch[i].Action
	}

	now := time.Now()
	var changes domain.EngagementChanges
	for key, action := range tasks {
		record := domain.EngagementRecord{
			PostID:    key.pid,
			UserID:    key.uid,
			CreatedAt: now,
		}
		switch {
		case key.relation == domain.RelationLike && action == domain.ActionAdd:
			changes.LikesToAdd = append(changes.LikesToAdd, record)
		case key.relation == domain.RelationLike && action == domain.ActionRemove:
			changes.LikesToRemove = append(changes.LikesToRemove, record)
		case key.relation == domain.RelationFavorite && action == domain.ActionAdd:
			changes.FavoritesToAdd = append(changes.FavoritesToAdd, record)
		case key.relation == domain.RelationFavorite && action == domain.ActionRemove:
			changes.FavoritesToRemove = append(changes.FavoritesToRemove, record)
		default:
			logrus.Errorf("Unsupported action: %v for relation %s", action, key.relation)
		}
	}

	if err := s.repo.ApplyChanges(ctx, changes); err != nil {
		metrics.SyncFlushFailures.Inc()
		logrus.Errorf("failed to apply engagement changes: %v", err)
	}
}
