package domain

import "errors"

// Domain errors (no external dependencies). Usecases wrap these with
// fmt.Errorf("%w: ...") for context; the HTTP layer classifies with errors.Is.
var (
	ErrValidation          = errors.New("invalid input")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("uniqueness conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access denied")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientPoints  = errors.New("insufficient loyalty points")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidState        = errors.New("invalid state for operation")
	ErrFulfillment         = errors.New("inventory fulfillment failed")
	ErrTransactionFailure  = errors.New("transaction failed")
)

// IsBusinessError reports whether err belongs to the taxonomy above (other than
// ErrTransactionFailure). Business errors propagate verbatim to the caller;
// anything else is logged in full and replaced with a generic
// ErrTransactionFailure at the transaction boundary.
func IsBusinessError(err error) bool {
	for _, e := range []error{
		ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized, ErrForbidden,
		ErrInsufficientStock, ErrInsufficientPoints, ErrInsufficientPayment,
		ErrInvalidState, ErrFulfillment,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
