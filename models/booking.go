package models

import "time"

// SelectionKind tags which catalog a selection points into.
type SelectionKind string

const (
	SelectionTest  SelectionKind = "test"
	SelectionCombo SelectionKind = "combo"
)

// Valid reports whether k is a known selection kind.
func (k SelectionKind) Valid() bool {
	return k == SelectionTest || k == SelectionCombo
}

// Selection is either Test(id) or Combo(id); there is no way to hold both.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	ID   string        `json:"id"`
}

// Field returns the payload field name of the active variant.
func (s Selection) Field() string {
	if s.Kind == SelectionCombo {
		return FieldSelectedCombo
	}
	return FieldSelectedTest
}

// Field names shared by drafts, validation errors and booking payloads.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldAddress        = "address"
	FieldSelectedDate   = "selectedDate"
	FieldSelectedTime   = "selectedTime"
	FieldBookingType    = "bookingType"
	FieldSelectedTest   = "selectedTest"
	FieldSelectedCombo  = "selectedCombo"
	FieldAdditionalInfo = "additionalInfo"
)

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Schedule struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"`
}

// BookingDraft is the unpersisted state of an open booking form.
type BookingDraft struct {
	Contact        Contact   `json:"contact"`
	Schedule       Schedule  `json:"schedule"`
	Selection      Selection `json:"selection"`
	AdditionalInfo string    `json:"additionalInfo"`
}

// NewBookingDraft returns an empty draft with the test variant active.
func NewBookingDraft() BookingDraft {
	return BookingDraft{Selection: Selection{Kind: SelectionTest}}
}

const BookingStatusPending = "pending"

// BookingPayload is the record written to the store on submit.
type BookingPayload struct {
	Name           string `bson:"name" json:"name"`
	Email          string `bson:"email" json:"email"`
	Phone          string `bson:"phone" json:"phone"`
	Address        string `bson:"address" json:"address"`
	SelectedDate   string `bson:"selectedDate" json:"selectedDate"`
	SelectedTime   string `bson:"selectedTime" json:"selectedTime"`
	BookingType    string `bson:"bookingType" json:"bookingType"`
	SelectedTest   string `bson:"selectedTest,omitempty" json:"selectedTest,omitempty"`
	SelectedCombo  string `bson:"selectedCombo,omitempty" json:"selectedCombo,omitempty"`
	AdditionalInfo string `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	Status         string `bson:"status" json:"status"`
}

// ToPayload serializes the draft for submission.
func (d BookingDraft) ToPayload() BookingPayload {
	p := BookingPayload{
		Name:           d.Contact.Name,
		Email:          d.Contact.Email,
		Phone:          d.Contact.Phone,
		Address:        d.Contact.Address,
		SelectedDate:   d.Schedule.Date,
		SelectedTime:   d.Schedule.Time,
		BookingType:    string(d.Selection.Kind),
		AdditionalInfo: d.AdditionalInfo,
		Status:         BookingStatusPending,
	}
	if d.Selection.Kind == SelectionCombo {
		p.SelectedCombo = d.Selection.ID
	} else {
		p.SelectedTest = d.Selection.ID
	}
	return p
}

// BookingRecord is a persisted booking.
type BookingRecord struct {
	ID             string `bson:"id" json:"id"`
	BookingPayload `bson:",inline"`
	IsDeleted      bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingRecap is the read-only confirmation shown once a booking is stored.
type BookingRecap struct {
	Booking       BookingRecord `json:"booking"`
	SelectionName string        `json:"selectionName"`
	Price         float64       `json:"price"`
}
