package recorder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/stats/client"
	"github.com/OmatthewY/explore-with-me/stats/dto"

	"github.com/hibiken/asynq"
)

// HitRecorder stores a hit for later stats queries.
type HitRecorder interface {
	Record(ctx context.Context, hit dto.EndpointHit) error
}

// Enqueuer is the part of the task queue the recorder needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

// Direct sends the hit synchronously.
type Direct struct {
	sender client.HitSender
}

func NewDirect(sender client.HitSender) *Direct {
	return &Direct{sender: sender}
}

func (d *Direct) Record(ctx context.Context, hit dto.EndpointHit) error {
	return d.sender.Hit(ctx, hit)
}

// Queued hands the hit to the task queue; HitHandler delivers it.
type Queued struct {
	queue Enqueuer
}

func NewQueued(queue Enqueuer) *Queued {
	return &Queued{queue: queue}
}

func (q *Queued) Record(ctx context.Context, hit dto.EndpointHit) error {
	return q.queue.Enqueue(ctx, constants.TaskTypeRecordHit, hit)
}

// HitHandler forwards queued hits to the stats server.
func HitHandler(sender client.HitSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var hit dto.EndpointHit
		if err := json.Unmarshal(task.Payload(), &hit); err != nil {
			logger.Error("Recorder:HitHandler:BadPayload", "error", err)
			return fmt.Errorf("decode hit: %v: %w", err, asynq.SkipRetry)
		}
		return sender.Hit(ctx, hit)
	}
}
