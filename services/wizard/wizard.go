package wizard

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"labbook/metrics"
	"labbook/models"

	"go.uber.org/zap"
)

// Step is a form page of the wizard, numbered from 1.
type Step int

const (
	StepContact Step = iota + 1
	StepSchedule
	StepSelection
)

// State is the wizard's position in its lifecycle.
type State string

const (
	StateContact    State = "contact"
	StateSchedule   State = "schedule"
	StateSelection  State = "selection"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
)

// Step returns the form page shown in this state. Submitting stays on the selection page;
// confirmed has no page and reports 0.
func (s State) Step() Step {
	switch s {
	case StateContact:
		return StepContact
	case StateSchedule:
		return StepSchedule
	case StateSelection, StateSubmitting:
		return StepSelection
	}
	return 0
}

// Options configures a wizard. Slots and Submitter are required.
type Options struct {
	Slots        TimeSlotProvider
	Submitter    BookingSubmitter
	Catalog      models.CatalogSnapshot
	WindowMonths int
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

// Wizard drives a single booking form from contact details to a confirmed booking.
// It is safe for concurrent use; the slot fetch and the submit call run without
// holding the lock.
type Wizard struct {
	mu sync.Mutex

	id             string
	state          State
	draft          models.BookingDraft
	errors         ValidationErrors
	availableTimes []string
	loadingTimes   bool
	touched        map[string]bool
	lastError      string
	recap          *models.BookingRecap
	catalog        models.CatalogSnapshot

	// dateGen increases on every date change; a slot response carrying an
	// older generation belongs to a stale date.
	dateGen    uint64
	closed     bool
	lastActive time.Time

	slots     TimeSlotProvider
	submitter BookingSubmitter
	months    int
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// New opens a wizard on the contact step with an empty draft.
func New(id string, opts Options) *Wizard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.WindowMonths <= 0 {
		opts.WindowMonths = 3
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	w := &Wizard{
		id:        id,
		state:     StateContact,
		draft:     models.NewBookingDraft(),
		errors:    ValidationErrors{},
		touched:   map[string]bool{},
		catalog:   opts.Catalog,
		slots:     opts.Slots,
		submitter: opts.Submitter,
		months:    opts.WindowMonths,
		loc:       opts.Location,
		now:       opts.Now,
		logger:    opts.Logger.With(zap.String("wizardID", id)),
	}
	w.lastActive = w.now()
	return w
}

func (w *Wizard) ID() string {
	return w.id
}

// SetField edits one draft field and drops that field's error entry.
// The date goes through SetDate because it triggers a slot lookup.
func (w *Wizard) SetField(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkEditableLocked(); err != nil {
		return err
	}
	w.lastActive = w.now()

	switch field {
	case models.FieldName:
		w.draft.Contact.Name = value
	case models.FieldEmail:
		w.draft.Contact.Email = value
	case models.FieldPhone:
		w.draft.Contact.Phone = value
	case models.FieldAddress:
		w.draft.Contact.Address = value
	case models.FieldAdditionalInfo:
		w.draft.AdditionalInfo = value
	case models.FieldSelectedTime:
		if value != "" {
			if w.draft.Schedule.Date == "" {
				w.errors[field] = "Select a date first"
				return ValidationErrors{field: w.errors[field]}
			}
			if !slices.Contains(w.availableTimes, value) {
				w.errors[field] = "Time is not available for the selected date"
				return ValidationErrors{field: w.errors[field]}
			}
		}
		w.draft.Schedule.Time = value
	case models.FieldBookingType:
		kind := models.SelectionKind(value)
		if !kind.Valid() {
			return ValidationErrors{field: "Booking type must be test or combo"}
		}
		if kind != w.draft.Selection.Kind {
			w.draft.Selection = models.Selection{Kind: kind}
		}
	case models.FieldSelectedTest:
		w.draft.Selection = models.Selection{Kind: models.SelectionTest, ID: value}
	case models.FieldSelectedCombo:
		w.draft.Selection = models.Selection{Kind: models.SelectionCombo, ID: value}
	case models.FieldSelectedDate:
		return fmt.Errorf("%w: %s is set with SetDate", ErrUnknownField, field)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	w.touched[field] = true
	delete(w.errors, field)
	return nil
}

// SetDate changes the appointment date and reloads the offered slots for it.
// Responses for a date that has since been replaced, or that arrive after the
// wizard closed, are dropped.
func (w *Wizard) SetDate(ctx context.Context, date string) error {
	w.mu.Lock()
	if err := w.checkEditableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.lastActive = w.now()
	w.draft.Schedule.Date = date
	w.touched[models.FieldSelectedDate] = true
	delete(w.errors, models.FieldSelectedDate)
	w.dateGen++
	gen := w.dateGen
	w.availableTimes = nil
	w.loadingTimes = false

	if date == "" {
		w.draft.Schedule.Time = ""
		w.mu.Unlock()
		return nil
	}
	if _, err := time.ParseInLocation(DateLayout, date, w.loc); err != nil {
		w.draft.Schedule.Time = ""
		w.errors[models.FieldSelectedDate] = "Date is invalid"
		msg := w.errors[models.FieldSelectedDate]
		w.mu.Unlock()
		return ValidationErrors{models.FieldSelectedDate: msg}
	}
	w.loadingTimes = true
	w.mu.Unlock()

	times, err := w.slots.AvailableTimes(ctx, date)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || gen != w.dateGen {
		metrics.StaleSlotResponses.Inc()
		w.logger.Debug("dropping stale time-slot response", zap.String("date", date))
		return nil
	}
	w.loadingTimes = false
	if err != nil {
		w.draft.Schedule.Time = ""
		w.logger.Warn("failed to load available times", zap.String("date", date), zap.Error(err))
		return fmt.Errorf("failed to load available times for %s: %w", date, err)
	}
	w.availableTimes = append([]string(nil), times...)
	if w.draft.Schedule.Time != "" && !slices.Contains(w.availableTimes, w.draft.Schedule.Time) {
		w.logger.Debug("clearing time no longer offered", zap.String("time", w.draft.Schedule.Time))
		w.draft.Schedule.Time = ""
	}
	return nil
}

// Continue validates the current step and moves to the next one.
// On failure nothing but the error map changes.
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	var next State
	switch w.state {
	case StateContact:
		next = StateSchedule
	case StateSchedule:
		next = StateSelection
	default:
		return ErrInvalidTransition
	}
	w.lastActive = w.now()

	step := w.state.Step()
	if errs := Validate(w.draft, step, w.envLocked()); len(errs) > 0 {
		w.errors = errs
		metrics.WizardValidationFailures.WithLabelValues(strconv.Itoa(int(step))).Inc()
		return errs.clone()
	}
	w.errors = ValidationErrors{}
	w.transitionLocked(next)
	return nil
}

// Back returns to the previous step without validating or clearing anything.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWizardClosed
	}
	switch w.state {
	case StateSchedule:
		w.transitionLocked(StateContact)
	case StateSelection:
		w.transitionLocked(StateSchedule)
	default:
		return ErrInvalidTransition
	}
	w.lastActive = w.now()
	return nil
}

// Submit validates the whole draft and hands it to the submitter. Only one
// submission runs at a time; on failure the wizard returns to the selection
// step with the draft untouched.
func (w *Wizard) Submit(ctx context.Context) (*models.BookingRecap, error) {
	w.mu.Lock()
	switch {
	case w.closed:
		w.mu.Unlock()
		return nil, ErrWizardClosed
	case w.state == StateSubmitting:
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	case w.state == StateConfirmed:
		w.mu.Unlock()
		return nil, ErrWizardFinished
	case w.state != StateSelection:
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	w.lastActive = w.now()

	if errs := ValidateAll(w.draft, w.envLocked()); len(errs) > 0 {
		w.errors = errs
		metrics.WizardValidationFailures.WithLabelValues(strconv.Itoa(int(StepSelection))).Inc()
		w.mu.Unlock()
		return nil, errs.clone()
	}
	w.errors = ValidationErrors{}
	w.lastError = ""
	w.transitionLocked(StateSubmitting)
	payload := w.draft.ToPayload()
	w.mu.Unlock()

	record, err := w.submitter.Submit(ctx, payload)
	if err == nil && record == nil {
		err = ErrEmptySubmission
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		w.logger.Info("submission finished after wizard closed", zap.Error(err))
		return nil, ErrWizardClosed
	}
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues("failed").Inc()
		w.logger.Warn("booking submission failed", zap.Error(err))
		serr := newSubmissionError(err)
		w.lastError = serr.Message
		w.transitionLocked(StateSelection)
		return nil, serr
	}

	metrics.BookingSubmissions.WithLabelValues("confirmed").Inc()
	name, price, _ := w.catalog.Resolve(w.draft.Selection)
	w.recap = &models.BookingRecap{Booking: *record, SelectionName: name, Price: price}
	w.transitionLocked(StateConfirmed)
	w.logger.Info("booking confirmed", zap.String("bookingID", record.ID))
	recap := *w.recap
	return &recap, nil
}

// DismissError clears the last submission error message.
func (w *Wizard) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastError = ""
}

// Cancel closes the wizard and discards the draft. Once anything was typed in,
// closing requires confirmed to be true.
func (w *Wizard) Cancel(confirmed bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	if w.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if w.state != StateConfirmed && len(w.touched) > 0 && !confirmed {
		return ErrConfirmationRequired
	}
	w.closeLocked()
	return nil
}

// Close tears the wizard down unconditionally; in-flight responses become no-ops.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closeLocked()
	}
}

func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// NeedsConfirmation reports whether closing would discard entered information.
func (w *Wizard) NeedsConfirmation() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed && w.state != StateConfirmed && len(w.touched) > 0
}

// CalculatePrice returns the catalog price of the current selection, or 0 when
// the selection no longer resolves.
func (w *Wizard) CalculatePrice() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, price, _ := w.catalog.Resolve(w.draft.Selection)
	return price
}

// SelectionName returns the catalog name of the current selection, or "".
func (w *Wizard) SelectionName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	name, _, _ := w.catalog.Resolve(w.draft.Selection)
	return name
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastActive is when the wizard last handled a user action.
func (w *Wizard) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

// Snapshot is a point-in-time copy of the wizard for display.
type Snapshot struct {
	ID                string               `json:"id"`
	State             State                `json:"state"`
	Step              Step                 `json:"step"`
	Draft             models.BookingDraft  `json:"draft"`
	Errors            ValidationErrors     `json:"errors"`
	AvailableTimes    []string             `json:"availableTimes"`
	LoadingTimes      bool                 `json:"loadingTimes"`
	MinDate           string               `json:"minDate"`
	MaxDate           string               `json:"maxDate"`
	SelectionName     string               `json:"selectionName"`
	Price             float64              `json:"price"`
	LastError         string               `json:"lastError,omitempty"`
	Recap             *models.BookingRecap `json:"recap,omitempty"`
	NeedsConfirmation bool                 `json:"needsConfirmation"`
	Closed            bool                 `json:"closed"`
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	first, last := DateWindow(w.today(), w.months)
	name, price, _ := w.catalog.Resolve(w.draft.Selection)
	s := Snapshot{
		ID:                w.id,
		State:             w.state,
		Step:              w.state.Step(),
		Draft:             w.draft,
		Errors:            w.errors.clone(),
		AvailableTimes:    append([]string{}, w.availableTimes...),
		LoadingTimes:      w.loadingTimes,
		MinDate:           first.Format(DateLayout),
		MaxDate:           last.Format(DateLayout),
		SelectionName:     name,
		Price:             price,
		LastError:         w.lastError,
		NeedsConfirmation: !w.closed && w.state != StateConfirmed && len(w.touched) > 0,
		Closed:            w.closed,
	}
	if w.recap != nil {
		recap := *w.recap
		s.Recap = &recap
	}
	return s
}

func (w *Wizard) checkEditableLocked() error {
	switch {
	case w.closed:
		return ErrWizardClosed
	case w.state == StateSubmitting:
		return ErrSubmitInFlight
	case w.state == StateConfirmed:
		return ErrWizardFinished
	}
	return nil
}

func (w *Wizard) envLocked() Env {
	return Env{
		Today:          w.today(),
		WindowMonths:   w.months,
		AvailableTimes: w.availableTimes,
		Catalog:        w.catalog,
	}
}

func (w *Wizard) today() time.Time {
	return w.now().In(w.loc)
}

func (w *Wizard) transitionLocked(next State) {
	metrics.WizardTransitions.WithLabelValues(string(w.state), string(next)).Inc()
	w.logger.Debug("wizard transition", zap.String("from", string(w.state)), zap.String("to", string(next)))
	w.state = next
}

func (w *Wizard) closeLocked() {
	w.closed = true
	w.draft = models.NewBookingDraft()
	w.errors = ValidationErrors{}
	w.availableTimes = nil
	w.loadingTimes = false
	w.touched = map[string]bool{}
	w.logger.Debug("wizard closed")
}
