package tasks

import (
	"testing"
	"time"

	"labbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderTime(t *testing.T) {
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

	fireAt, err := ReminderTime("2026-10-20", "02:00 PM", time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC), fireAt)

	fireAt, err = ReminderTime("2026-10-15", "04:00 PM", time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, now, fireAt, "appointments inside the lead time are reminded immediately")

	_, err = ReminderTime("2026-10-20", "14h", time.UTC, now)
	assert.Error(t, err)
}

func TestReminderTaskRoundTrip(t *testing.T) {
	payload := models.ReminderPayload{BookingID: "bk-1", Email: "john@example.com", Selection: "Lipid Panel", Date: "2026-10-20", Time: "09:00 AM"}

	task, opts, err := NewReminderTask(payload, time.Now())
	require.NoError(t, err)
	assert.Equal(t, TypeBookingReminder, task.Type())
	assert.Len(t, opts, 3)

	got, err := ParseReminderPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
