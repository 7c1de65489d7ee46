package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"labbook/database/recordstore"
	bookingRepo "labbook/database/repository/booking"
	"labbook/models"
	"labbook/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *models.BookingRecord) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = "bk-1"
	}
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context, q bookingRepo.BookingQuery) ([]models.BookingRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingRecord), args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

var now = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func newService(repo *MockBookingRepo, queue ReminderQueue) *DefaultBookingService {
	svc := NewBookingService(repo, queue, time.UTC, nil)
	svc.Now = func() time.Time { return now }
	return svc
}

func samplePayload() models.BookingPayload {
	return models.BookingPayload{
		Name:          "John Doe",
		Email:         "john@example.com",
		Phone:         "1234567890",
		Address:       "123 Main St",
		SelectedDate:  "2026-10-20",
		SelectedTime:  "09:00 AM",
		BookingType:   "combo",
		SelectedCombo: "complete",
	}
}

func TestSubmitStoresPendingBookingAndQueuesReminder(t *testing.T) {
	repo := new(MockBookingRepo)
	queue := new(MockQueue)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.BookingRecord) bool {
		return b.Status == models.BookingStatusPending && b.SelectedCombo == "complete"
	})).Return(nil).Once()
	queue.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		p, err := tasks.ParseReminderPayload(task)
		return err == nil && task.Type() == tasks.TypeBookingReminder &&
			p.BookingID == "bk-1" && p.Selection == "complete" && p.Email == "john@example.com"
	}), mock.Anything).Return(&asynq.TaskInfo{ID: "reminder:bk-1"}, nil).Once()

	rec, err := newService(repo, queue).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Equal(t, "bk-1", rec.ID)
	assert.Equal(t, models.BookingStatusPending, rec.Status)
	repo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestSubmitKeepsExplicitStatus(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	p := samplePayload()
	p.Status = "confirmed"

	rec, err := newService(repo, nil).Submit(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", rec.Status)
}

func TestSubmitStoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	repo := new(MockBookingRepo)
	queue := new(MockQueue)
	repo.On("Create", mock.Anything, mock.Anything).Return(boom)

	_, err := newService(repo, queue).Submit(context.Background(), samplePayload())

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, boom)
	queue.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitSurvivesQueueFailure(t *testing.T) {
	repo := new(MockBookingRepo)
	queue := new(MockQueue)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	queue.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	rec, err := newService(repo, queue).Submit(context.Background(), samplePayload())

	require.NoError(t, err)
	assert.Equal(t, "bk-1", rec.ID)
}

func TestListBookingsNormalizesPaging(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("List", mock.Anything, bookingRepo.BookingQuery{Email: "john@example.com", Limit: 100}).
		Return([]models.BookingRecord{{ID: "bk-1"}}, nil).Once()

	out, err := newService(repo, nil).ListBookings(context.Background(), BookingFilter{Email: "john@example.com", Limit: 1000, Offset: -1})

	require.NoError(t, err)
	assert.Len(t, out, 1)
	repo.AssertExpectations(t)
}

func TestGetBookingNotFound(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, recordstore.ErrNotFound)

	_, err := newService(repo, nil).GetBooking(context.Background(), "nope")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}
