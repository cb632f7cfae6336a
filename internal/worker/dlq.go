package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQEntry wraps a failed job with its failure context.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks an exhausted job under dlq:{queue} for manual inspection.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, jobErr error) {
	entry := DLQEntry{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Error:    jobErr.Error(),
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal DLQ entry")
		return
	}
	dlqKey := fmt.Sprintf("dlq:%s", queue)
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq", dlqKey).Msg("failed to push job into DLQ")
		return
	}
	log.Warn().Str("dlq", dlqKey).Str("type", jobType).Msg("job sent to dead-letter queue")
}

// DLQLength reports the depth of a queue's dead-letter list.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, fmt.Sprintf("dlq:%s", queue)).Result()
}
