package booking

import "fmt"

// StoreError wraps a record store failure while saving a booking.
type StoreError struct {
	Code    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(msg string, err error) error {
	return &StoreError{
		Code:    "storeError",
		Message: msg,
		Err:     err,
	}
}
