package booking

import (
	"context"
	"time"

	bookingRepo "labbook/database/repository/booking"
	"labbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingService stores wizard submissions and answers booking queries.
type BookingService interface {
	Submit(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error)
	ListBookings(ctx context.Context, f BookingFilter) ([]models.BookingRecord, error)
	GetBooking(ctx context.Context, id string) (*models.BookingRecord, error)
}

// BookingFilter narrows ListBookings; empty fields match everything.
type BookingFilter struct {
	Status string
	Email  string
	Limit  int
	Offset int
}

// ReminderQueue is the part of *asynq.Client used to schedule reminders.
type ReminderQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultBookingService implements BookingService. Queue may be nil to skip reminders.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Queue    ReminderQueue
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

func NewBookingService(repo bookingRepo.BookingRepository, queue ReminderQueue, loc *time.Location, logger *zap.Logger) *DefaultBookingService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{Repo: repo, Queue: queue, Location: loc, Now: time.Now, Logger: logger}
}
