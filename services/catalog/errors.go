package catalog

import "fmt"

// InputError reports an admin catalog payload that cannot be stored.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newInputError(field, msg string) error {
	return &InputError{Field: field, Message: msg}
}
