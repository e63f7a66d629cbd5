package flow

import (
	"context"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/usecase/identity"
	"academy-booking/internal/usecase/resolver"

	"github.com/google/uuid"
)

// Snapshot is a detached copy of everything the client renders.
type Snapshot struct {
	ID         uuid.UUID
	DeviceID   string
	Venue      *venue.Venue
	Mode       identity.Mode
	Step       booking.Step
	Selection  booking.Selection
	Durations  resolver.DurationsState
	Slots      resolver.SlotsState
	Gates      booking.Gates
	Identity   booking.IdentityState
	Submitting bool
	Completed  bool
	Closed     bool
	Outcome    *Outcome
	LastError  error
	Stats      resolver.Stats
	LastActive time.Time
}

func (f *Flow) Snapshot(ctx context.Context, session client.Acting) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.identityState(ctx, session)
	var outcome *Outcome
	if f.outcome != nil {
		o := *f.outcome
		outcome = &o
	}
	return Snapshot{
		ID:         f.id,
		DeviceID:   f.deviceID,
		Venue:      f.venue,
		Mode:       f.mode,
		Step:       f.selection.CurrentStepIndex,
		Selection:  f.selection.Clone(),
		Durations:  f.resolver.Durations(),
		Slots:      f.resolver.Slots(),
		Gates:      booking.Evaluate(f.venue, f.selection, f.submitting, state),
		Identity:   state,
		Submitting: f.submitting,
		Completed:  f.completed,
		Closed:     f.closed,
		Outcome:    outcome,
		LastError:  f.lastErr,
		Stats:      f.resolver.Stats(),
		LastActive: f.lastActive,
	}
}
