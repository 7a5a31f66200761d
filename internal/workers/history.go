package workers

import (
	"context"
	"time"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/metrics"
	"github.com/sirupsen/logrus"
)

const historyAppendTimeout = 5 * time.Second

type historyTask struct {
	UserID int64
	Event  domain.ActivityEvent
}

// historyWorker decouples history appends from toggle requests. A toggle's
// result is final once returned; a failed append here is counted and logged,
// never propagated back.
type historyWorker struct {
	activity domain.ActivityUsecase
	ch       chan historyTask
}

var _ domain.HistoryWorker = (*historyWorker)(nil)

func NewHistoryWorker(activity domain.ActivityUsecase) *historyWorker {
	return &historyWorker{
		activity: activity,
		ch:       make(chan historyTask, 1024),
	}
}

func (w *historyWorker) Send(userID int64, event domain.ActivityEvent) {
	select {
	case w.ch <- historyTask{UserID: userID, Event: event}:
	default:
		metrics.HistoryTasksDropped.Inc()
		logrus.Info("HistoryWorker's channel is full, event dropped")
	}
}

func (w *historyWorker) Start(ctx context.Context) {
	for {
		select {
		case task := <-w.ch:
			w.append(task)
		case <-ctx.Done():
			logrus.Info("shutting down HistoryWorker, draining remaining events...")
			for {
				select {
				case task := <-w.ch:
					w.append(task)
				default:
					return
				}
			}
		}
	}
}

func (w *historyWorker) append(task historyTask) {
	ctx, cancel := context.WithTimeout(context.Background(), historyAppendTimeout)
	defer cancel()

	if err := w.activity.Record(ctx, task.UserID, task.Event); err != nil {
		metrics.HistoryWriteFailures.Inc()
		logrus.Errorf("failed to append history event %s for user %d: %v", task.Event.Type, task.UserID, err)
	}
}
