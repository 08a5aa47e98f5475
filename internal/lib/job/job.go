// Package job provides background job processing using Asynq.
//
// Tasks are enqueued through asynq.Client and executed by workers run
// by asynq.Server, with Redis as the broker.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/pixelfeed/backend/internal/config"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client for enqueueing and the server that
// runs workers.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
}

// NewJobService creates a JobService against the configured Redis
// instance. Queue weights give critical tasks most of the worker
// share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the worker server and closes the enqueue
// client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
