package bookingRepo

import (
	"context"
	"time"

	"labbook/database/recordstore"
	"labbook/models"

	"github.com/google/uuid"
)

// BookingQuery filters bookings; empty fields match everything.
type BookingQuery struct {
	Status string
	Email  string
	Limit  int
	Offset int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.BookingRecord) error
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	List(ctx context.Context, q BookingQuery) ([]models.BookingRecord, error)
}

type recordBookingRepo struct {
	store recordstore.Store
}

func NewBookingRepo(store recordstore.Store) BookingRepository {
	return &recordBookingRepo{store: store}
}

// Create assigns the ID and timestamps, then writes the booking.
func (r *recordBookingRepo) Create(ctx context.Context, booking *models.BookingRecord) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return r.store.CreateRecord(ctx, recordstore.TableBooking, booking)
}

func (r *recordBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	var booking models.BookingRecord
	if err := r.store.GetRecordByID(ctx, recordstore.TableBooking, id, &booking); err != nil {
		return nil, err
	}
	if booking.IsDeleted {
		return nil, recordstore.ErrNotFound
	}
	return &booking, nil
}

// List returns bookings newest appointment first.
func (r *recordBookingRepo) List(ctx context.Context, q BookingQuery) ([]models.BookingRecord, error) {
	where := []recordstore.Condition{recordstore.Eq("isDeleted", false)}
	if q.Status != "" {
		where = append(where, recordstore.Eq("status", q.Status))
	}
	if q.Email != "" {
		where = append(where, recordstore.Eq("email", q.Email))
	}
	bookings := []models.BookingRecord{}
	err := r.store.FetchRecords(ctx, recordstore.TableBooking, recordstore.Query{
		Where:   where,
		OrderBy: []recordstore.Order{{Field: "selectedDate", Descending: true}},
		Limit:   q.Limit,
		Offset:  q.Offset,
	}, &bookings)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.BookingRecord{}
	}
	return bookings, nil
}
