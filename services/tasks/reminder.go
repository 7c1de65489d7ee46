package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"labbook/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// ReminderLead is how long before the appointment the reminder fires.
const ReminderLead = 24 * time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
		asynq.TaskID("reminder:" + payload.BookingID),
	}

	return task, opts, nil
}

func ParseReminderPayload(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// ReminderTime is ReminderLead before the appointment, or now when that has passed.
func ReminderTime(date, slot string, loc *time.Location, now time.Time) (time.Time, error) {
	appt, err := time.ParseInLocation("2006-01-02 03:04 PM", date+" "+slot, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment time %q %q: %w", date, slot, err)
	}
	fireAt := appt.Add(-ReminderLead)
	if fireAt.Before(now) {
		return now, nil
	}
	return fireAt, nil
}
