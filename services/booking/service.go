package booking

import (
	"context"
	"fmt"

	bookingRepo "labbook/database/repository/booking"
	"labbook/metrics"
	"labbook/models"
	"labbook/services/tasks"

	"go.uber.org/zap"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Submit stores the booking and schedules its reminder. A reminder that cannot
// be queued is logged; the booking still stands.
func (s *DefaultBookingService) Submit(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error) {
	if payload.Status == "" {
		payload.Status = models.BookingStatusPending
	}
	record := &models.BookingRecord{BookingPayload: payload}
	if err := s.Repo.Create(ctx, record); err != nil {
		s.Logger.Error("failed to store booking", zap.String("email", payload.Email), zap.Error(err))
		return nil, NewStoreError("failed to store booking", err)
	}
	s.Logger.Info("booking stored",
		zap.String("bookingID", record.ID),
		zap.String("date", record.SelectedDate),
		zap.String("time", record.SelectedTime),
	)

	s.scheduleReminder(ctx, record)
	return record, nil
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, record *models.BookingRecord) {
	if s.Queue == nil {
		return
	}
	logger := s.Logger.With(zap.String("bookingID", record.ID))

	fireAt, err := tasks.ReminderTime(record.SelectedDate, record.SelectedTime, s.Location, s.Now())
	if err != nil {
		metrics.ReminderTasks.WithLabelValues("enqueue_failed").Inc()
		logger.Warn("cannot schedule reminder", zap.Error(err))
		return
	}
	selection := record.SelectedTest
	if record.BookingType == string(models.SelectionCombo) {
		selection = record.SelectedCombo
	}
	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		BookingID: record.ID,
		Email:     record.Email,
		Name:      record.Name,
		Selection: selection,
		Date:      record.SelectedDate,
		Time:      record.SelectedTime,
	}, fireAt)
	if err != nil {
		metrics.ReminderTasks.WithLabelValues("enqueue_failed").Inc()
		logger.Warn("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		metrics.ReminderTasks.WithLabelValues("enqueue_failed").Inc()
		logger.Warn("failed to enqueue reminder", zap.Error(err))
		return
	}
	metrics.ReminderTasks.WithLabelValues("enqueued").Inc()
	logger.Debug("reminder scheduled", zap.Time("fireAt", fireAt))
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, f BookingFilter) ([]models.BookingRecord, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	bookings, err := s.Repo.List(ctx, bookingRepo.BookingQuery{
		Status: f.Status,
		Email:  f.Email,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return b, nil
}
