package resolver

import (
	"context"
	"log/slog"
	"sync"

	"academy-booking/internal/domain/venue"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
)

type Resource string

const (
	ResourceDurations Resource = "durations"
	ResourceSlots     Resource = "slots"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

type DurationsState struct {
	Status Status
	Items  []venue.Duration
	Err    error
}

type SlotsState struct {
	Status Status
	Key    venue.SlotKey
	Items  []venue.Slot
	Err    error
}

// Dispatch runs fn serialised with every other change to the owner's state.
// The owner calls the Resolver methods from the same serial context.
type Dispatch func(fn func())

// Listener is notified, inside Dispatch, when a current request commits.
type Listener struct {
	OnDurations func(items []venue.Duration)
	OnSlots     func(key venue.SlotKey, items []venue.Slot)

	// OnDurationsFailed and OnSlotsFailed fire when the current request fails.
	OnDurationsFailed func(err error)
	OnSlotsFailed     func(key venue.SlotKey, err error)
}

type Stats struct {
	Issued    int
	Committed int
	Discarded int
}

type slotRequest struct {
	VenueID string
	Key     venue.SlotKey
	Minutes int
}

// Resolver fetches the duration and slot lists of one venue. Requests run in
// their own goroutine; a response whose token is no longer current is dropped.
//
// Every exported method except Wait must be called from the owner's serial
// context (the same one Dispatch provides).
type Resolver struct {
	catalog  shared.CatalogGateway
	dispatch Dispatch
	listener Listener
	logger   *slog.Logger

	root context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	venueID   string
	durations DurationsState
	slots     SlotsState

	durTracker  tracker
	slotTracker tracker
	lastSlots   *slotRequest

	closed bool
	stats  Stats
}

func New(catalog shared.CatalogGateway, dispatch Dispatch, listener Listener, logger *slog.Logger) *Resolver {
	root, stop := context.WithCancel(context.Background())
	return &Resolver{
		catalog:   catalog,
		dispatch:  dispatch,
		listener:  listener,
		logger:    logger,
		root:      root,
		stop:      stop,
		durations: DurationsState{Status: StatusIdle},
		slots:     SlotsState{Status: StatusIdle},
	}
}

// ResolveDurations (re)loads the duration list of venueID.
func (r *Resolver) ResolveDurations(venueID string) {
	if r.closed {
		return
	}
	r.venueID = venueID
	token, ctx := r.durTracker.issue(r.root)
	r.durations = DurationsState{Status: StatusLoading}
	r.stats.Issued++

	r.wg.Add(1)
	go r.fetchDurations(ctx, token, venueID)
}

// ResolveSlots loads the slot list for key. The duration must be present in
// the loaded duration list; otherwise the slot state fails without a request.
func (r *Resolver) ResolveSlots(venueID string, key venue.SlotKey) {
	if r.closed {
		return
	}
	if !key.IsComplete() {
		r.InvalidateSlots()
		return
	}

	d, ok := venue.FindDuration(r.durations.Items, key.DurationID)
	if !ok {
		r.slotTracker.invalidate()
		r.lastSlots = nil
		r.slots = SlotsState{
			Status: StatusFailed,
			Key:    key,
			Err:    errs.Mark(errs.Newf("unknown duration %q", key.DurationID), errs.ErrResolve),
		}
		return
	}

	req := slotRequest{VenueID: venueID, Key: key, Minutes: d.Minutes}
	r.lastSlots = &req
	r.issueSlots(req)
}

func (r *Resolver) issueSlots(req slotRequest) {
	token, ctx := r.slotTracker.issue(r.root)
	r.slots = SlotsState{Status: StatusLoading, Key: req.Key}
	r.stats.Issued++

	r.wg.Add(1)
	go r.fetchSlots(ctx, token, req)
}

// InvalidateSlots drops the slot list and any request still in flight for it.
func (r *Resolver) InvalidateSlots() {
	r.slotTracker.invalidate()
	r.lastSlots = nil
	r.slots = SlotsState{Status: StatusIdle}
}

// Retry re-issues the last request of resource. It reports false when there
// is nothing to retry.
func (r *Resolver) Retry(resource Resource) bool {
	if r.closed {
		return false
	}
	switch resource {
	case ResourceDurations:
		if r.venueID == "" {
			return false
		}
		r.ResolveDurations(r.venueID)
		return true
	case ResourceSlots:
		if r.lastSlots == nil {
			return false
		}
		r.issueSlots(*r.lastSlots)
		return true
	default:
		return false
	}
}

func (r *Resolver) Durations() DurationsState {
	out := r.durations
	out.Items = append([]venue.Duration(nil), r.durations.Items...)
	return out
}

func (r *Resolver) Slots() SlotsState {
	out := r.slots
	out.Items = append([]venue.Slot(nil), r.slots.Items...)
	return out
}

func (r *Resolver) Stats() Stats {
	return r.stats
}

// Close invalidates every outstanding token and cancels in-flight requests.
// Late responses are discarded.
func (r *Resolver) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.durTracker.invalidate()
	r.slotTracker.invalidate()
	r.stop()
}

// Wait blocks until every request goroutine has returned. It must be called
// outside the owner's serial context.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

func (r *Resolver) fetchDurations(ctx context.Context, token uint64, venueID string) {
	defer r.wg.Done()

	items, err := r.catalog.FetchDurations(ctx, venueID)

	r.dispatch(func() {
		if r.closed || !r.durTracker.current(token) {
			r.discard(ResourceDurations, token)
			return
		}
		r.durTracker.settle(token)
		r.stats.Committed++

		if err != nil {
			r.logger.Warn("failed to resolve durations", "venue_id", venueID, "error", err)
			r.durations = DurationsState{Status: StatusFailed, Err: errs.Mark(err, errs.ErrResolve)}
			if r.listener.OnDurationsFailed != nil {
				r.listener.OnDurationsFailed(r.durations.Err)
			}
			return
		}
		r.durations = DurationsState{Status: StatusLoaded, Items: items}
		if r.listener.OnDurations != nil {
			r.listener.OnDurations(append([]venue.Duration(nil), items...))
		}
	})
}

func (r *Resolver) fetchSlots(ctx context.Context, token uint64, req slotRequest) {
	defer r.wg.Done()

	items, err := r.catalog.FetchSlots(ctx, req.VenueID, req.Key.Date, req.Minutes)

	r.dispatch(func() {
		if r.closed || !r.slotTracker.current(token) {
			r.discard(ResourceSlots, token)
			return
		}
		r.slotTracker.settle(token)
		r.stats.Committed++

		if err != nil {
			r.logger.Warn("failed to resolve slots",
				"venue_id", req.VenueID,
				"date", req.Key.Date,
				"duration_id", req.Key.DurationID,
				"error", err)
			r.slots = SlotsState{Status: StatusFailed, Key: req.Key, Err: errs.Mark(err, errs.ErrResolve)}
			if r.listener.OnSlotsFailed != nil {
				r.listener.OnSlotsFailed(req.Key, r.slots.Err)
			}
			return
		}
		r.slots = SlotsState{Status: StatusLoaded, Key: req.Key, Items: items}
		if r.listener.OnSlots != nil {
			r.listener.OnSlots(req.Key, append([]venue.Slot(nil), items...))
		}
	})
}

func (r *Resolver) discard(resource Resource, token uint64) {
	r.stats.Discarded++
	r.logger.Debug("discarding stale response", "resource", string(resource), "token", token)
}
