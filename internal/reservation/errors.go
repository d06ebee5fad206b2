package reservation

import "errors"

// Sentinel errors shared by the reservation coordinator and its
// collaborators. Wrap with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrNotFound        = errors.New("reservation not found")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrInvalidState    = errors.New("reservation state does not allow this operation")
	ErrValidation      = errors.New("invalid reservation data")
)
