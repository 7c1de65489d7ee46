package wizard

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"labbook/models"
)

const DateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Env is everything validation needs besides the draft itself.
type Env struct {
	Today          time.Time
	WindowMonths   int
	AvailableTimes []string
	Catalog        models.CatalogSnapshot
}

// DateWindow returns the first and last bookable day.
func DateWindow(today time.Time, months int) (time.Time, time.Time) {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return start, start.AddDate(0, months, 0)
}

// Validate checks the fields that belong to step and returns the failures.
// An empty result means the step is complete.
func Validate(d models.BookingDraft, step Step, env Env) ValidationErrors {
	errs := ValidationErrors{}
	switch step {
	case StepContact:
		validateContact(d.Contact, errs)
	case StepSchedule:
		validateSchedule(d.Schedule, env, errs)
	case StepSelection:
		validateSelection(d.Selection, env.Catalog, errs)
	}
	return errs
}

// ValidateAll runs every step, used right before submission.
func ValidateAll(d models.BookingDraft, env Env) ValidationErrors {
	errs := ValidationErrors{}
	for _, step := range []Step{StepContact, StepSchedule, StepSelection} {
		for f, msg := range Validate(d, step, env) {
			errs[f] = msg
		}
	}
	return errs
}

func validateContact(c models.Contact, errs ValidationErrors) {
	if strings.TrimSpace(c.Name) == "" {
		errs[models.FieldName] = "Name is required"
	}

	if strings.TrimSpace(c.Email) == "" {
		errs[models.FieldEmail] = "Email is required"
	} else if !ValidEmail(c.Email) {
		errs[models.FieldEmail] = "Email is invalid"
	}

	if strings.TrimSpace(c.Phone) == "" {
		errs[models.FieldPhone] = "Phone is required"
	} else if !ValidPhone(c.Phone) {
		errs[models.FieldPhone] = "Phone number must be 10 digits"
	}

	if strings.TrimSpace(c.Address) == "" {
		errs[models.FieldAddress] = "Address is required"
	}
}

func validateSchedule(s models.Schedule, env Env, errs ValidationErrors) {
	if s.Date == "" {
		errs[models.FieldSelectedDate] = "Date is required"
	} else if msg := checkDate(s.Date, env); msg != "" {
		errs[models.FieldSelectedDate] = msg
	}

	if s.Time == "" {
		errs[models.FieldSelectedTime] = "Time is required"
	} else if !slices.Contains(env.AvailableTimes, s.Time) {
		errs[models.FieldSelectedTime] = "Time is not available for the selected date"
	}
}

func checkDate(date string, env Env) string {
	day, err := time.ParseInLocation(DateLayout, date, env.Today.Location())
	if err != nil {
		return "Date is invalid"
	}
	first, last := DateWindow(env.Today, env.WindowMonths)
	if day.Before(first) || day.After(last) {
		return "Date must be between " + first.Format(DateLayout) + " and " + last.Format(DateLayout)
	}
	return ""
}

func validateSelection(sel models.Selection, catalog models.CatalogSnapshot, errs ValidationErrors) {
	field := sel.Field()
	if sel.ID == "" {
		if sel.Kind == models.SelectionCombo {
			errs[field] = "Please select a package"
		} else {
			errs[field] = "Please select a test"
		}
		return
	}
	if _, _, ok := catalog.Resolve(sel); !ok {
		if sel.Kind == models.SelectionCombo {
			errs[field] = "The selected package is no longer available"
		} else {
			errs[field] = "The selected test is no longer available"
		}
	}
}

// ValidEmail accepts a simple local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone accepts exactly ten ASCII digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}
