package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/platefeed/engagement/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	KeyUserActivity = "activity:user:%d"
)

type activityLogRepository struct {
	client *redis.Client
}

var _ domain.ActivityLogRepository = (*activityLogRepository)(nil)

func NewActivityLogRepository(client *redis.Client) *activityLogRepository {
	return &activityLogRepository{
		client,
	}
}

// appendScript prepends an event and truncates the log to its capacity in one
// atomic step. When ARGV[2] carries a post ID, any surviving view entry for
// that post is removed first, so the log never holds two views of one post
// even if two tabs record the view concurrently.
// KEYS = {该用户的历史记录列表}
// ARGV = {事件JSON, 去重的帖子ID或空串, 容量}
var appendScript = redis.NewScript(`
	if ARGV[2] ~= '' then
		local entries = redis.call('LRANGE', KEYS[1], 0, -1)
		for _, raw in ipairs(entries) do
			local ev = cjson.decode(raw)
			if ev['type'] == 'view' and tostring(ev['post_id']) == ARGV[2] then
				redis.call('LREM', KEYS[1], 1, raw)
			end
		end
	end
	redis.call('LPUSH', KEYS[1], ARGV[1])
	redis.call('LTRIM', KEYS[1], 0, tonumber(ARGV[3]) - 1)
	return redis.call('LLEN', KEYS[1])
`)

func (r *activityLogRepository) Append(ctx context.Context, userID int64, event domain.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	dedupPostID := ""
	if event.Type == domain.EventView {
		dedupPostID = strconv.FormatInt(event.PostID, 10)
	}

	key := fmt.Sprintf(KeyUserActivity, userID)
	args := []any{string(data), dedupPostID, domain.ActivityLogCapacity}
	return appendScript.Run(ctx, r.client, []string{key}, args...).Err()
}

func (r *activityLogRepository) Fetch(ctx context.Context, userID int64) ([]domain.ActivityEvent, error) {
	key := fmt.Sprintf(KeyUserActivity, userID)
	raws, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]domain.ActivityEvent, 0, len(raws))
	for _, raw := range raws {
		var ev domain.ActivityEvent
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			logrus.Warnf("skipping unreadable activity entry for user %d: %v", userID, err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *activityLogRepository) Clear(ctx context.Context, userID int64) error {
	key := fmt.Sprintf(KeyUserActivity, userID)
	return r.client.Del(ctx, key).Err()
}
