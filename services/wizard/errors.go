package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidTransition    = errors.New("transition not allowed from the current step")
	ErrSubmitInFlight       = errors.New("a submission is already in progress")
	ErrConfirmationRequired = errors.New("the form has unsaved information; confirm to discard it")
	ErrWizardClosed         = errors.New("booking wizard is closed")
	ErrWizardFinished       = errors.New("booking is already confirmed")
	ErrWizardNotFound       = errors.New("booking wizard not found")
	ErrUnknownField         = errors.New("unknown field")
	ErrEmptySubmission      = errors.New("booking store returned no record")
)

// ValidationErrors maps a field name to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// SubmissionError is a remote failure while storing the booking; the draft survives it.
type SubmissionError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func newSubmissionError(err error) *SubmissionError {
	return &SubmissionError{
		Code:    "submissionError",
		Message: "There was an error processing your request. Please try again.",
		Err:     err,
	}
}
