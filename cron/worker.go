package cron

import (
	"context"
	"fmt"
	"time"

	"labbook/metrics"
	"labbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes booking reminder tasks from the queue.
type ReminderWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewReminderWorker builds the worker; call Start to begin processing.
func NewReminderWorker(redisOpt asynq.RedisConnOpt, concurrency int, logger *zap.Logger) *ReminderWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, HandleReminderTask(logger))

	return &ReminderWorker{srv: srv, mux: mux, logger: logger}
}

// Start launches the worker, retrying with a growing backoff when Redis is not reachable yet.
func (w *ReminderWorker) Start(ctx context.Context) error {
	const maxAttempts = 5

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = w.srv.Start(w.mux); err == nil {
			w.logger.Info("Reminder worker started")
			return nil
		}
		w.logger.Warn("Reminder worker failed to start",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*2) * time.Second):
		}
	}
	return fmt.Errorf("reminder worker did not start after %d attempts: %w", maxAttempts, err)
}

// Shutdown waits for active tasks and stops the worker.
func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Reminder worker stopped")
}

// HandleReminderTask logs the reminder for the booking. A malformed payload is
// never retried.
func HandleReminderTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderPayload(task)
		if err != nil {
			metrics.ReminderTasks.WithLabelValues("invalid").Inc()
			logger.Error("Dropping reminder task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("Appointment reminder",
			zap.String("bookingID", p.BookingID),
			zap.String("email", p.Email),
			zap.String("name", p.Name),
			zap.String("selection", p.Selection),
			zap.String("date", p.Date),
			zap.String("time", p.Time),
		)
		metrics.ReminderTasks.WithLabelValues("delivered").Inc()
		return nil
	}
}
