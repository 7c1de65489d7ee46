package wizard

import (
	"testing"
	"time"

	"labbook/models"

	"github.com/stretchr/testify/assert"
)

func testEnv() Env {
	return Env{
		Today:          fixedNow,
		WindowMonths:   3,
		AvailableTimes: []string{"09:00 AM", "10:00 AM"},
		Catalog:        testCatalog(),
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"1234567890", true},
		{"12345", false},
		{"123-456-7890", false},
		{"12345678901", false},
		{"abcdefghij", false},
		{" 1234567890", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPhone(tt.phone))
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"john@example.com", true},
		{"j.doe+lab@mail.example.org", true},
		{"john@", false},
		{"johnexample.com", false},
		{"john@example", false},
		{"john doe@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEmail(tt.email))
		})
	}
}

func TestValidateContactStep(t *testing.T) {
	t.Run("empty draft reports every field", func(t *testing.T) {
		errs := Validate(models.NewBookingDraft(), StepContact, testEnv())
		assert.Equal(t, ValidationErrors{
			models.FieldName:    "Name is required",
			models.FieldEmail:   "Email is required",
			models.FieldPhone:   "Phone is required",
			models.FieldAddress: "Address is required",
		}, errs)
	})

	t.Run("whitespace only counts as empty", func(t *testing.T) {
		d := models.NewBookingDraft()
		d.Contact = models.Contact{Name: "   ", Email: " ", Phone: "  ", Address: "\t"}
		errs := Validate(d, StepContact, testEnv())
		assert.Len(t, errs, 4)
	})

	t.Run("malformed values", func(t *testing.T) {
		d := models.NewBookingDraft()
		d.Contact = models.Contact{Name: "Jane", Email: "jane@", Phone: "12345", Address: "1 Road"}
		errs := Validate(d, StepContact, testEnv())
		assert.Equal(t, ValidationErrors{
			models.FieldEmail: "Email is invalid",
			models.FieldPhone: "Phone number must be 10 digits",
		}, errs)
	})

	t.Run("valid contact", func(t *testing.T) {
		d := models.NewBookingDraft()
		d.Contact = models.Contact{Name: "Jane", Email: "jane@example.com", Phone: "1234567890", Address: "1 Road"}
		assert.Empty(t, Validate(d, StepContact, testEnv()))
	})

	t.Run("other steps ignore contact", func(t *testing.T) {
		errs := Validate(models.NewBookingDraft(), StepSchedule, testEnv())
		assert.NotContains(t, errs, models.FieldName)
	})
}

func TestValidateScheduleStep(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.Schedule
		want     ValidationErrors
	}{
		{
			name:     "missing both",
			schedule: models.Schedule{},
			want: ValidationErrors{
				models.FieldSelectedDate: "Date is required",
				models.FieldSelectedTime: "Time is required",
			},
		},
		{
			name:     "unparseable date",
			schedule: models.Schedule{Date: "15/10/2026", Time: "09:00 AM"},
			want:     ValidationErrors{models.FieldSelectedDate: "Date is invalid"},
		},
		{
			name:     "date in the past",
			schedule: models.Schedule{Date: "2026-10-14", Time: "09:00 AM"},
			want:     ValidationErrors{models.FieldSelectedDate: "Date must be between 2026-10-15 and 2027-01-15"},
		},
		{
			name:     "date beyond three months",
			schedule: models.Schedule{Date: "2027-01-16", Time: "09:00 AM"},
			want:     ValidationErrors{models.FieldSelectedDate: "Date must be between 2026-10-15 and 2027-01-15"},
		},
		{
			name:     "time not offered",
			schedule: models.Schedule{Date: "2026-10-20", Time: "04:00 PM"},
			want:     ValidationErrors{models.FieldSelectedTime: "Time is not available for the selected date"},
		},
		{
			name:     "today is bookable",
			schedule: models.Schedule{Date: "2026-10-15", Time: "10:00 AM"},
			want:     ValidationErrors{},
		},
		{
			name:     "last day of window is bookable",
			schedule: models.Schedule{Date: "2027-01-15", Time: "09:00 AM"},
			want:     ValidationErrors{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := models.NewBookingDraft()
			d.Schedule = tt.schedule
			assert.Equal(t, tt.want, Validate(d, StepSchedule, testEnv()))
		})
	}
}

func TestValidateSelectionStep(t *testing.T) {
	tests := []struct {
		name string
		sel  models.Selection
		want ValidationErrors
	}{
		{"no test", models.Selection{Kind: models.SelectionTest}, ValidationErrors{models.FieldSelectedTest: "Please select a test"}},
		{"no combo", models.Selection{Kind: models.SelectionCombo}, ValidationErrors{models.FieldSelectedCombo: "Please select a package"}},
		{"unknown test", models.Selection{Kind: models.SelectionTest, ID: "gone"}, ValidationErrors{models.FieldSelectedTest: "The selected test is no longer available"}},
		{"combo id used as test", models.Selection{Kind: models.SelectionTest, ID: "complete"}, ValidationErrors{models.FieldSelectedTest: "The selected test is no longer available"}},
		{"unknown combo", models.Selection{Kind: models.SelectionCombo, ID: "gone"}, ValidationErrors{models.FieldSelectedCombo: "The selected package is no longer available"}},
		{"valid test", models.Selection{Kind: models.SelectionTest, ID: "cbc"}, ValidationErrors{}},
		{"valid combo", models.Selection{Kind: models.SelectionCombo, ID: "complete"}, ValidationErrors{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := models.NewBookingDraft()
			d.Selection = tt.sel
			assert.Equal(t, tt.want, Validate(d, StepSelection, testEnv()))
		})
	}
}

func TestValidateAllMergesSteps(t *testing.T) {
	errs := ValidateAll(models.NewBookingDraft(), testEnv())
	assert.Len(t, errs, 7)
	assert.Contains(t, errs.Error(), "address: Address is required")
}

func TestDateWindow(t *testing.T) {
	now := time.Date(2026, time.November, 30, 18, 45, 0, 0, time.UTC)
	first, last := DateWindow(now, 3)
	assert.Equal(t, "2026-11-30", first.Format(DateLayout))
	// Feb 30 normalises forward, the same way a calendar picker rolls over.
	assert.Equal(t, "2027-03-02", last.Format(DateLayout))
	assert.True(t, first.Equal(time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC)))
}
