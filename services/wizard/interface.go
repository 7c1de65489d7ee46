package wizard

import (
	"context"

	"labbook/models"
)

// TimeSlotProvider returns the display labels offered for a date (YYYY-MM-DD).
type TimeSlotProvider interface {
	AvailableTimes(ctx context.Context, date string) ([]string, error)
}

// BookingSubmitter persists a finished draft.
type BookingSubmitter interface {
	Submit(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error)
}

// CatalogSource supplies the catalog snapshot a wizard validates and prices against.
type CatalogSource interface {
	Snapshot(ctx context.Context) (models.CatalogSnapshot, error)
}
