//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

package shared

import (
	"context"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
)

// CatalogGateway reads venue data from the academy backend.
type CatalogGateway interface {
	FetchVenue(ctx context.Context, venueID string) (*venue.Venue, error)
	FetchDurations(ctx context.Context, venueID string) ([]venue.Duration, error)
	FetchSlots(ctx context.Context, venueID, date string, durationMinutes int) ([]venue.Slot, error)
}

// RegistrationGateway performs guest quick-registration. A backend refusal is
// returned as *RegistrationRejection.
type RegistrationGateway interface {
	QuickRegister(ctx context.Context, profile client.GuestProfile) (clientID string, err error)
}

type BookingGateway interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*Confirmation, error)
}

// KVStore is the persistent storage collaborator. Get returns ErrKeyNotFound
// for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// KVScoper hands out a store scoped to one client device.
type KVScoper interface {
	Scope(deviceID string) KVStore
}

// AuthRedirector is the require-authentication collaborator: it receives the
// draft and returns a continuation the client brings back after signing in.
type AuthRedirector interface {
	RequireAuthentication(ctx context.Context, deviceID string, draft booking.Draft) (*Continuation, error)
}

// ResumeVerifier opens a continuation issued by an AuthRedirector.
type ResumeVerifier interface {
	OpenContinuation(token string) (deviceID string, draft booking.Draft, err error)
}
