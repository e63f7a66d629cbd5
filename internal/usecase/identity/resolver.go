package identity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"academy-booking/internal/domain/client"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
)

// GuestKey is where a quick-registered guest client is cached per device.
const GuestKey = "guest_client"

const (
	conflictCode   = "phone_already_registered"
	conflictPhrase = "already registered"
)

type cachedGuest struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Resolver decides which client a booking is submitted for.
type Resolver struct {
	kv        shared.KVStore
	registrar shared.RegistrationGateway
	clock     clock.Clock
	logger    *slog.Logger

	mu     sync.Mutex
	loaded bool
	guest  client.Acting
}

// NewResolver builds a resolver. A nil registrar disables guest checkout.
func NewResolver(kv shared.KVStore, registrar shared.RegistrationGateway, clock clock.Clock, logger *slog.Logger) *Resolver {
	return &Resolver{
		kv:        kv,
		registrar: registrar,
		clock:     clock,
		logger:    logger,
		guest:     client.NoClient(),
	}
}

// Resolve prefers the session client, then the cached guest, then none.
func (r *Resolver) Resolve(ctx context.Context, session client.Acting) client.Acting {
	if session.Kind() == client.KindRegistered && session.HasIdentifier() {
		return session
	}
	return r.cachedGuest(ctx)
}

func (r *Resolver) CanRegisterGuests() bool {
	return r.registrar != nil
}

// RegisterGuest quick-registers profile and caches the resulting guest client.
// A backend refusal meaning "phone already registered" is marked ErrGuestConflict.
func (r *Resolver) RegisterGuest(ctx context.Context, profile client.GuestProfile) (client.Acting, error) {
	if r.registrar == nil {
		return client.NoClient(), errs.Mark(errs.New("guest checkout is not available"), errs.ErrGuestRegistration)
	}

	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return client.NoClient(), errs.Mark(err, errs.ErrInvalidGuestProfile)
	}

	id, err := r.registrar.QuickRegister(ctx, profile)
	if err != nil {
		if IsConflict(err) {
			r.logger.Info("guest phone already registered", "phone", profile.Phone)
			return client.NoClient(), errs.Mark(err, errs.ErrGuestConflict)
		}
		r.logger.Warn("guest quick-registration failed", "error", err)
		return client.NoClient(), errs.Mark(err, errs.ErrGuestRegistration)
	}

	guest := client.GuestClient(id)
	if !guest.HasIdentifier() {
		return client.NoClient(), errs.Mark(errs.New("registration returned no client id"), errs.ErrGuestRegistration)
	}

	r.store(ctx, cachedGuest{ID: id, Phone: profile.Phone, RegisteredAt: r.clock.Now()})

	r.mu.Lock()
	r.loaded = true
	r.guest = guest
	r.mu.Unlock()

	return guest, nil
}

// Forget drops the cached guest client.
func (r *Resolver) Forget(ctx context.Context) {
	r.mu.Lock()
	r.loaded = true
	r.guest = client.NoClient()
	r.mu.Unlock()

	if err := r.kv.Remove(ctx, GuestKey); err != nil && !errs.Is(err, shared.ErrKeyNotFound) {
		r.logger.Warn("failed to clear guest client", "error", err)
	}
}

func (r *Resolver) cachedGuest(ctx context.Context) client.Acting {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.guest
	}

	payload, err := r.kv.Get(ctx, GuestKey)
	switch {
	case err == nil:
		var g cachedGuest
		if jsonErr := json.Unmarshal(payload, &g); jsonErr != nil {
			r.logger.Warn("discarding corrupt guest client", "error", jsonErr)
		} else {
			r.guest = client.GuestClient(g.ID)
		}
	case errs.Is(err, shared.ErrKeyNotFound):
	default:
		// Transient read failure: try again on the next call.
		r.logger.Warn("failed to read guest client", "error", err)
		return client.NoClient()
	}

	r.loaded = true
	return r.guest
}

func (r *Resolver) store(ctx context.Context, g cachedGuest) {
	payload, err := json.Marshal(g)
	if err != nil {
		r.logger.Warn("failed to encode guest client", "error", err)
		return
	}
	if err := r.kv.Set(ctx, GuestKey, payload); err != nil {
		r.logger.Warn("failed to cache guest client", "error", err)
	}
}

// IsConflict reports whether a registration failure means the phone already
// belongs to an account.
func IsConflict(err error) bool {
	var rej *shared.RegistrationRejection
	if !errors.As(err, &rej) {
		return false
	}
	if rej.Code == conflictCode {
		return true
	}
	return strings.Contains(strings.ToLower(rej.Message), conflictPhrase)
}
