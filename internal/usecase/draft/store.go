package draft

import (
	"context"
	"encoding/json"
	"log/slog"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
)

// Key is the single draft slot of a device.
const Key = "booking_draft"

// Store persists the in-progress booking of one device. Storage failures never
// reach the caller: the flow keeps working on in-memory state.
type Store struct {
	kv     shared.KVStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore(kv shared.KVStore, clock clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		clock:  clock,
		logger: logger,
	}
}

// Save overwrites the slot with the selection for venueID.
func (s *Store) Save(ctx context.Context, venueID string, sel booking.Selection) {
	s.SaveDraft(ctx, booking.NewDraft(venueID, sel, s.clock.Now()))
}

func (s *Store) SaveDraft(ctx context.Context, d booking.Draft) {
	payload, err := json.Marshal(d)
	if err != nil {
		s.logger.Warn("failed to encode booking draft", "venue_id", d.VenueID, "error", err)
		return
	}
	if err := s.kv.Set(ctx, Key, payload); err != nil {
		s.logger.Warn("failed to save booking draft", "venue_id", d.VenueID, "error", err)
	}
}

// Load returns the stored draft only if it belongs to venueID. A missing,
// unreadable or foreign draft is reported as absent.
func (s *Store) Load(ctx context.Context, venueID string) (booking.Draft, bool) {
	payload, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errs.Is(err, shared.ErrKeyNotFound) {
			s.logger.Warn("failed to read booking draft", "venue_id", venueID, "error", err)
		}
		return booking.Draft{}, false
	}

	var d booking.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		s.logger.Warn("discarding corrupt booking draft", "venue_id", venueID, "error", err)
		if err := s.kv.Remove(ctx, Key); err != nil {
			s.logger.Warn("failed to remove corrupt booking draft", "venue_id", venueID, "error", err)
		}
		return booking.Draft{}, false
	}
	if !d.Matches(venueID) {
		s.logger.Debug("ignoring booking draft of another venue",
			"venue_id", venueID,
			"draft_venue_id", d.VenueID)
		return booking.Draft{}, false
	}
	if !d.Selection.CurrentStepIndex.IsValid() {
		d.Selection.CurrentStepIndex = booking.StepSchedule
	}
	return d, true
}

func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, Key); err != nil && !errs.Is(err, shared.ErrKeyNotFound) {
		s.logger.Warn("failed to clear booking draft", "error", err)
	}
}
