package identity

import (
	"context"
	"fmt"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
)

// Mode selects what happens when a booking reaches submit without a client.
type Mode string

const (
	// ModeGuestCheckout collects guest details and quick-registers them.
	ModeGuestCheckout Mode = "guest_checkout"
	// ModeAuthRequired hands the draft to the require-authentication collaborator.
	ModeAuthRequired Mode = "auth_required"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGuestCheckout, ModeAuthRequired:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown booking mode %q", s)
	}
}

func (m Mode) String() string { return string(m) }

// State reports whether a client can be produced at submit time. canRedirect
// tells whether an authentication redirect is available as a fallback.
func (r *Resolver) State(ctx context.Context, session client.Acting, mode Mode, canRedirect bool) booking.IdentityState {
	if r.Resolve(ctx, session).HasIdentifier() {
		return booking.IdentityResolved
	}
	if canRedirect || (mode == ModeGuestCheckout && r.CanRegisterGuests()) {
		return booking.IdentityDeferrable
	}
	return booking.IdentityBlocked
}
