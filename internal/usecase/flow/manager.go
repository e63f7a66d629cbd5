package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/draft"
	"academy-booking/internal/usecase/identity"
	"academy-booking/internal/usecase/shared"
	"academy-booking/internal/usecase/submission"

	"github.com/google/uuid"
)

type ManagerConfig struct {
	DefaultMode  identity.Mode
	IdleTTL      time.Duration
	WriteTimeout time.Duration
}

type OpenParams struct {
	DeviceID string
	VenueID  string
	Mode     identity.Mode
}

// Manager owns every open flow. A device has at most one open flow, since it
// has a single draft slot.
type Manager struct {
	catalog    shared.CatalogGateway
	registrar  shared.RegistrationGateway
	bookings   shared.BookingGateway
	storage    shared.KVScoper
	redirector shared.AuthRedirector
	verifier   shared.ResumeVerifier
	clock      clock.Clock
	logger     *slog.Logger
	cfg        ManagerConfig

	mu    sync.RWMutex
	flows map[uuid.UUID]*Flow
}

func NewManager(
	catalog shared.CatalogGateway,
	registrar shared.RegistrationGateway,
	bookings shared.BookingGateway,
	storage shared.KVScoper,
	redirector shared.AuthRedirector,
	verifier shared.ResumeVerifier,
	clock clock.Clock,
	logger *slog.Logger,
	cfg ManagerConfig,
) *Manager {
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = identity.ModeGuestCheckout
	}
	return &Manager{
		catalog:    catalog,
		registrar:  registrar,
		bookings:   bookings,
		storage:    storage,
		redirector: redirector,
		verifier:   verifier,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
		flows:      make(map[uuid.UUID]*Flow),
	}
}

// Open fetches the venue and starts a flow for it, restoring the device's
// draft when it belongs to the same venue.
func (m *Manager) Open(ctx context.Context, p OpenParams) (*Flow, error) {
	if p.DeviceID == "" {
		return nil, errs.Mark(errs.New("device id is required"), errs.ErrInvalidSelection)
	}
	mode := p.Mode
	if mode == "" {
		mode = m.cfg.DefaultMode
	}

	v, err := m.catalog.FetchVenue(ctx, p.VenueID)
	if err != nil {
		m.logger.Warn("failed to load venue", "venue_id", p.VenueID, "error", err)
		return nil, errs.Mark(err, errs.ErrVenueUnavailable)
	}

	logger := m.logger.With("device_id", p.DeviceID)
	kv := m.storage.Scope(p.DeviceID)
	drafts := draft.NewStore(kv, m.clock, logger)

	onStep := func(from, to booking.Step) {
		logger.Debug("booking step changed", "from", from.String(), "to", to.String())
	}

	f := New(uuid.New(), p.DeviceID, v, mode, Deps{
		Catalog:       m.catalog,
		Drafts:        drafts,
		Identity:      identity.NewResolver(kv, m.registrar, m.clock, logger),
		Submitter:     submission.NewCoordinator(m.bookings, drafts, logger),
		Redirector:    m.redirector,
		Clock:         m.clock,
		Logger:        logger,
		WriteTimeout:  m.cfg.WriteTimeout,
		OnStepChanged: onStep,
	})

	m.register(ctx, f)
	f.Start(ctx)

	m.logger.Info("booking flow opened",
		"flow_id", f.ID().String(),
		"device_id", p.DeviceID,
		"venue_id", v.ID(),
		"mode", mode.String())
	return f, nil
}

// Resume opens a flow from a continuation issued at an authentication redirect.
func (m *Manager) Resume(ctx context.Context, deviceID, token string, mode identity.Mode) (*Flow, error) {
	if m.verifier == nil {
		return nil, errs.Mark(errs.New("resume is not configured"), errs.ErrInvalidResume)
	}
	owner, d, err := m.verifier.OpenContinuation(token)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidResume)
	}
	if owner != deviceID {
		return nil, errs.Mark(errs.New("continuation belongs to another device"), errs.ErrInvalidResume)
	}

	// The stored draft of the same redirect still carries the evidence bytes.
	drafts := draft.NewStore(m.storage.Scope(deviceID), m.clock, m.logger.With("device_id", deviceID))
	if stored, ok := drafts.Load(ctx, d.VenueID); !ok || !stored.SavedAt.Equal(d.SavedAt) {
		drafts.SaveDraft(ctx, d)
	}

	return m.Open(ctx, OpenParams{DeviceID: deviceID, VenueID: d.VenueID, Mode: mode})
}

// Get returns the flow only to the device that opened it.
func (m *Manager) Get(deviceID string, id uuid.UUID) (*Flow, error) {
	m.mu.RLock()
	f, ok := m.flows[id]
	m.mu.RUnlock()

	if !ok || f.DeviceID() != deviceID {
		return nil, errs.ErrFlowNotFound
	}
	return f, nil
}

func (m *Manager) Close(ctx context.Context, deviceID string, id uuid.UUID, discard bool) error {
	f, err := m.Get(deviceID, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.flows, id)
	m.mu.Unlock()

	f.Close(ctx, discard)
	m.logger.Info("booking flow closed", "flow_id", id.String(), "discard", discard)
	return nil
}

// CloseAll closes every flow and waits for their requests to return.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	flows := make([]*Flow, 0, len(m.flows))
	for id, f := range m.flows {
		flows = append(flows, f)
		delete(m.flows, id)
	}
	m.mu.Unlock()

	for _, f := range flows {
		f.Close(ctx, false)
	}
	for _, f := range flows {
		f.Wait()
	}
}

// Sweep closes flows idle longer than the configured TTL and reports how many.
func (m *Manager) Sweep(ctx context.Context, now time.Time) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	m.mu.Lock()
	var expired []*Flow
	for id, f := range m.flows {
		if now.Sub(f.LastActive()) > m.cfg.IdleTTL {
			expired = append(expired, f)
			delete(m.flows, id)
		}
	}
	m.mu.Unlock()

	for _, f := range expired {
		f.Close(ctx, false)
	}
	if len(expired) > 0 {
		m.logger.Info("swept idle booking flows", "count", len(expired))
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx, m.clock.Now())
		}
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.flows)
}

// register replaces any other open flow of the same device.
func (m *Manager) register(ctx context.Context, f *Flow) {
	m.mu.Lock()
	var replaced []*Flow
	for id, other := range m.flows {
		if other.DeviceID() == f.DeviceID() {
			replaced = append(replaced, other)
			delete(m.flows, id)
		}
	}
	m.flows[f.ID()] = f
	m.mu.Unlock()

	for _, other := range replaced {
		other.Close(ctx, false)
	}
}
