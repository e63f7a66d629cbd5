package errs

import "errors"

// Booking flow error taxonomy. Components mark their errors with one of these
// so callers can branch with errors.Is regardless of the underlying cause.
var (
	// Resource resolution
	ErrResolve = errors.New("resource resolution failed")

	// Step transitions
	ErrValidationBlocked = errors.New("validation blocked")

	// Guest quick-registration
	ErrGuestConflict       = errors.New("guest registration conflict")
	ErrGuestRegistration   = errors.New("guest registration failed")
	ErrInvalidGuestProfile = errors.New("invalid guest profile")

	// Submission
	ErrSubmitPrecondition = errors.New("submit precondition failed")
	ErrSubmitFailed       = errors.New("submit failed")
	ErrSubmitInFlight     = errors.New("submission already in flight")

	// Flow lifecycle
	ErrFlowNotFound     = errors.New("flow not found")
	ErrFlowClosed       = errors.New("flow closed")
	ErrVenueUnavailable = errors.New("venue unavailable")
	ErrInvalidResume    = errors.New("invalid resume token")

	// Selection
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrPaymentNotAllowed = errors.New("payment method not allowed")
	ErrInvalidSelection  = errors.New("invalid selection")
)
