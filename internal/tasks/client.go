package tasks

import (
	"trainhub/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing with improved error handling and context support
type TaskClient struct {
	client      *asynq.Client
	logger      *logger.Logger
	redisClient *redis.Client
}

// Redis returns the shared redis connection, used by rate limiters.
func (c *TaskClient) Redis() *redis.Client {
	return c.redisClient
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

// EnqueuePasscodeSweep queues an immediate sweep of lapsed passcodes.
func (c *TaskClient) EnqueuePasscodeSweep() error {
	task := asynq.NewTask(TaskTypePasscodeSweep, nil)
	_, err := c.client.Enqueue(task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	return err
}

// EnqueueLowStockCheck queues an immediate equipment stock check.
func (c *TaskClient) EnqueueLowStockCheck() error {
	task := asynq.NewTask(TaskTypeLowStockCheck, nil)
	_, err := c.client.Enqueue(task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	return err
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}
