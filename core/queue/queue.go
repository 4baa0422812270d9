package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OmatthewY/explore-with-me/core/config"
	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"

	"github.com/hibiken/asynq"
)

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Client enqueues JSON tasks.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, raw)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.TaskID(utils.GenerateID(constants.HitTaskIDLength)),
		asynq.MaxRetry(constants.TaskMaxRetry),
		asynq.Queue(constants.TaskQueueDefault),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	logger.Debug("Queue:Enqueue:Done", "type", taskType, "id", info.ID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker processes tasks registered with Handle.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(cfg config.RedisConfig, concurrency int) *Worker {
	srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{constants.TaskQueueDefault: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
	return &Worker{server: srv, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, handler asynq.Handler) {
	w.mux.Handle(taskType, handler)
}

// Start runs the worker in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
