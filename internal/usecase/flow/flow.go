package flow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/draft"
	"academy-booking/internal/usecase/identity"
	"academy-booking/internal/usecase/resolver"
	"academy-booking/internal/usecase/shared"
	"academy-booking/internal/usecase/submission"

	"github.com/google/uuid"
)

const defaultWriteTimeout = 2 * time.Second

type OutcomeKind string

const (
	OutcomeConfirmed            OutcomeKind = "confirmed"
	OutcomeGuestDetailsRequired OutcomeKind = "guest_details_required"
	OutcomeAuthRequired         OutcomeKind = "auth_required"
)

// Outcome is the terminal result of a submit attempt that did not fail.
type Outcome struct {
	Kind         OutcomeKind
	Confirmation *shared.Confirmation
	Continuation *shared.Continuation
	// Reason is set for OutcomeAuthRequired: "auth_required" or "guest_conflict".
	Reason string
}

type Deps struct {
	Catalog    shared.CatalogGateway
	Drafts     *draft.Store
	Identity   *identity.Resolver
	Submitter  *submission.Coordinator
	Redirector shared.AuthRedirector
	Clock      clock.Clock
	Logger     *slog.Logger

	WriteTimeout time.Duration
	// OnStepChanged runs with the flow locked; it must not call back into the flow.
	OnStepChanged func(from, to booking.Step)
}

// Flow is one open booking: the step machine, its selection and the resolver
// feeding it. User events and resolver completions are serialised by mu.
type Flow struct {
	mu sync.Mutex

	id       uuid.UUID
	deviceID string
	venue    *venue.Venue
	mode     identity.Mode
	deps     Deps
	resolver *resolver.Resolver

	selection    booking.Selection
	restoredSlot bool
	submitting   bool
	completed    bool
	closed       bool
	outcome      *Outcome
	lastErr      error
	lastActive   time.Time
}

func New(id uuid.UUID, deviceID string, v *venue.Venue, mode identity.Mode, deps Deps) *Flow {
	if deps.WriteTimeout <= 0 {
		deps.WriteTimeout = defaultWriteTimeout
	}
	f := &Flow{
		id:         id,
		deviceID:   deviceID,
		venue:      v,
		mode:       mode,
		deps:       deps,
		selection:  booking.NewSelection(v),
		lastActive: deps.Clock.Now(),
	}
	f.resolver = resolver.New(deps.Catalog, f.dispatch, resolver.Listener{
		OnDurations:       f.onDurations,
		OnDurationsFailed: func(err error) { f.onSlotsFailed(f.selection.Key(), err) },
		OnSlots:           f.onSlots,
		OnSlotsFailed:     f.onSlotsFailed,
	}, deps.Logger.With("flow_id", id.String()))
	return f
}

func (f *Flow) ID() uuid.UUID       { return f.id }
func (f *Flow) DeviceID() string    { return f.deviceID }
func (f *Flow) Venue() *venue.Venue { return f.venue }
func (f *Flow) Mode() identity.Mode { return f.mode }

// Start restores a matching draft, if any, and begins resolving durations.
func (f *Flow) Start(ctx context.Context) {
	d, restored := f.deps.Drafts.Load(ctx, f.venue.ID())

	f.mu.Lock()
	defer f.mu.Unlock()

	if restored {
		f.selection = d.Selection.Clone()
		f.restoredSlot = f.selection.HasSlot()
		f.deps.Logger.Info("restored booking draft",
			"flow_id", f.id.String(),
			"venue_id", f.venue.ID(),
			"step", f.selection.CurrentStepIndex.String())
	}
	f.selection.CoercePayment(f.venue)
	f.resolver.ResolveDurations(f.venue.ID())
	f.persist()
}

func (f *Flow) SelectDuration(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	durations := f.resolver.Durations()
	if durations.Status != resolver.StatusLoaded {
		return errs.Mark(errs.New("durations are not loaded"), errs.ErrInvalidSelection)
	}
	if _, ok := venue.FindDuration(durations.Items, id); !ok {
		return errs.Mark(errs.Newf("unknown duration %q", id), errs.ErrInvalidSelection)
	}

	f.touch()
	if id == f.selection.DurationID {
		return nil
	}
	f.selection.DurationID = id
	f.clearSlot()
	f.refreshSlots()
	f.persist()
	return nil
}

// SelectDate sets the booking date; an empty value clears it.
func (f *Flow) SelectDate(value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	date := ""
	if value != "" {
		parsed, err := booking.ParseBookingDate(value)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidSelection)
		}
		date = parsed
	}

	f.touch()
	if date == f.selection.BookingDate {
		return nil
	}
	f.selection.BookingDate = date
	f.clearSlot()
	f.refreshSlots()
	f.persist()
	return nil
}

// SelectSlot only accepts a slot of the list resolved for the current key.
func (f *Flow) SelectSlot(slot venue.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	slots := f.resolver.Slots()
	if slots.Status != resolver.StatusLoaded || slots.Key != f.selection.Key() {
		return errs.Mark(errs.New("slot list is not loaded"), errs.ErrSlotUnavailable)
	}
	if !venue.ContainsSlot(slots.Items, slot) {
		return errs.Mark(errs.Newf("slot %s-%s is not offered", slot.StartTime, slot.EndTime), errs.ErrSlotUnavailable)
	}

	f.touch()
	f.selection.SelectedSlot = &slot
	f.restoredSlot = false
	f.persist()
	return nil
}

// SetPlayers stores any count; the players gate decides whether it is usable.
func (f *Flow) SetPlayers(n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	f.touch()
	f.selection.Players = n
	f.persist()
	return nil
}

func (f *Flow) SetPaymentType(m venue.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if !f.venue.Allows(m) {
		return errs.Mark(errs.Newf("payment method %q", m), errs.ErrPaymentNotAllowed)
	}
	f.touch()
	f.selection.PaymentType = m
	f.selection.CoercePayment(f.venue)
	f.persist()
	return nil
}

func (f *Flow) SetCashOnDate(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if on && (f.selection.PaymentType != venue.PaymentCash || !f.venue.AllowsCashOnDate()) {
		return errs.Mark(errs.New("cash on date"), errs.ErrPaymentNotAllowed)
	}
	f.touch()
	f.selection.CashOnDate = on
	f.persist()
	return nil
}

func (f *Flow) AttachEvidence(att *booking.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	if att == nil {
		return errs.Mark(booking.ErrEmptyEvidence, errs.ErrInvalidSelection)
	}
	if f.selection.PaymentType != venue.PaymentCliq {
		return errs.Mark(errs.New("evidence requires cliq payment"), errs.ErrPaymentNotAllowed)
	}
	f.touch()
	f.selection.CliqEvidence = att
	f.persist()
	return nil
}

func (f *Flow) RemoveEvidence() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	f.touch()
	f.selection.CliqEvidence = nil
	f.persist()
	return nil
}

// Next advances one step when the current step's gate holds.
func (f *Flow) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	f.touch()
	step := f.selection.CurrentStepIndex
	if !booking.CanAdvance(step, f.venue, f.selection) {
		return errs.Mark(errs.Newf("cannot leave %s step", step), errs.ErrValidationBlocked)
	}
	f.setStep(step + 1)
	return nil
}

func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	f.touch()
	step := f.selection.CurrentStepIndex
	if step.IsFirst() {
		return errs.Mark(errs.New("already at the first step"), errs.ErrValidationBlocked)
	}
	f.setStep(step - 1)
	return nil
}

// Retry re-issues a failed resolution. Nothing else triggers a retry.
func (f *Flow) Retry(resource resolver.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(); err != nil {
		return err
	}
	failed := false
	switch resource {
	case resolver.ResourceDurations:
		failed = f.resolver.Durations().Status == resolver.StatusFailed
	case resolver.ResourceSlots:
		failed = f.resolver.Slots().Status == resolver.StatusFailed
	}
	if !failed {
		return errs.Mark(errs.Newf("%s did not fail", resource), errs.ErrInvalidSelection)
	}
	f.touch()
	if resource == resolver.ResourceSlots {
		// An unknown duration never produced a request; resolve from the current key.
		f.resolver.ResolveSlots(f.venue.ID(), f.selection.Key())
		return nil
	}
	f.resolver.Retry(resource)
	return nil
}

// Submit books the reviewed selection. Without a client it returns the
// outcome the mode prescribes instead of calling the backend.
func (f *Flow) Submit(ctx context.Context, session client.Acting) (*Outcome, error) {
	f.mu.Lock()
	acting, err := f.beginSubmit(ctx, session)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if !acting.HasIdentifier() {
		defer f.mu.Unlock()
		return f.deferIdentity(ctx)
	}
	return f.submitUnlocking(ctx, acting)
}

// SubmitAsGuest is the guest sub-flow: quick-register profile, then submit
// for the new guest. A phone conflict redirects to authentication with the draft.
func (f *Flow) SubmitAsGuest(ctx context.Context, session client.Acting, profile client.GuestProfile) (*Outcome, error) {
	f.mu.Lock()
	acting, err := f.beginSubmit(ctx, session)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if acting.HasIdentifier() {
		return f.submitUnlocking(ctx, acting)
	}
	if f.mode == identity.ModeAuthRequired || !f.deps.Identity.CanRegisterGuests() {
		defer f.mu.Unlock()
		return f.redirect(ctx, "auth_required")
	}
	f.submitting = true
	f.mu.Unlock()

	guest, err := f.deps.Identity.RegisterGuest(context.WithoutCancel(ctx), profile)
	if err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.submitting = false
		if f.closed {
			return nil, errs.ErrFlowClosed
		}
		if errs.Is(err, errs.ErrGuestConflict) {
			return f.redirect(ctx, "guest_conflict")
		}
		f.lastErr = err
		return nil, err
	}

	f.mu.Lock()
	if f.closed {
		f.submitting = false
		f.mu.Unlock()
		return nil, errs.ErrFlowClosed
	}
	return f.submitUnlocking(ctx, guest)
}

// Close stops the resolver. discard also clears the draft (explicit cancel).
func (f *Flow) Close(ctx context.Context, discard bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.resolver.Close()
	if discard {
		f.deps.Drafts.Clear(ctx)
	}
}

// Wait joins resolver goroutines. Call it without holding any flow operation.
func (f *Flow) Wait() {
	f.resolver.Wait()
}

// Selection returns a copy of the live selection.
func (f *Flow) Selection() booking.Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selection.Clone()
}

func (f *Flow) LastActive() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive
}

func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// beginSubmit runs with mu held.
func (f *Flow) beginSubmit(ctx context.Context, session client.Acting) (client.Acting, error) {
	if err := f.editable(); err != nil {
		return client.NoClient(), err
	}
	f.touch()
	if f.selection.CurrentStepIndex != booking.StepReview {
		return client.NoClient(), errs.Mark(errs.New("submit is only available on review"), errs.ErrValidationBlocked)
	}
	state := f.identityState(ctx, session)
	if !booking.CanSubmit(f.venue, f.selection, f.submitting, state) {
		return client.NoClient(), errs.Mark(errs.New("booking is not ready to submit"), errs.ErrValidationBlocked)
	}
	return f.deps.Identity.Resolve(ctx, session), nil
}

// submitUnlocking is entered with mu held and returns with it released.
func (f *Flow) submitUnlocking(ctx context.Context, acting client.Acting) (*Outcome, error) {
	v, sel := f.venue, f.selection.Clone()
	f.submitting = true
	f.mu.Unlock()

	// A booking in flight is not cancellable; the backend client timeout bounds it.
	conf, err := f.deps.Submitter.Submit(context.WithoutCancel(ctx), v, sel, acting)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	f.touch()
	if err != nil {
		f.lastErr = err
		return nil, err
	}
	f.completed = true
	f.lastErr = nil
	f.outcome = &Outcome{Kind: OutcomeConfirmed, Confirmation: conf}
	f.resolver.Close()
	return f.outcome, nil
}

func (f *Flow) deferIdentity(ctx context.Context) (*Outcome, error) {
	if f.mode == identity.ModeGuestCheckout && f.deps.Identity.CanRegisterGuests() {
		f.outcome = &Outcome{Kind: OutcomeGuestDetailsRequired}
		return f.outcome, nil
	}
	return f.redirect(ctx, "auth_required")
}

// redirect hands the current draft to the require-authentication collaborator.
func (f *Flow) redirect(ctx context.Context, reason string) (*Outcome, error) {
	if f.deps.Redirector == nil {
		return nil, errs.Mark(errs.New("no authentication path"), errs.ErrValidationBlocked)
	}
	d := booking.NewDraft(f.venue.ID(), f.selection, f.deps.Clock.Now())
	f.deps.Drafts.SaveDraft(ctx, d)

	cont, err := f.deps.Redirector.RequireAuthentication(ctx, f.deviceID, d)
	if err != nil {
		f.lastErr = err
		return nil, errs.Wrap(err, "require authentication")
	}
	cont.Draft = d
	f.outcome = &Outcome{Kind: OutcomeAuthRequired, Continuation: cont, Reason: reason}
	f.deps.Logger.Info("booking handed to authentication",
		"flow_id", f.id.String(),
		"reason", reason)
	return f.outcome, nil
}

func (f *Flow) identityState(ctx context.Context, session client.Acting) booking.IdentityState {
	return f.deps.Identity.State(ctx, session, f.mode, f.deps.Redirector != nil)
}

func (f *Flow) dispatch(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *Flow) onDurations(items []venue.Duration) {
	if f.closed || f.completed {
		return
	}
	if _, ok := venue.FindDuration(items, f.selection.DurationID); !ok {
		next := ""
		if d, ok := venue.DefaultDuration(items); ok {
			next = d.ID
		}
		if next != f.selection.DurationID {
			f.selection.DurationID = next
			f.clearSlot()
		}
	}
	f.refreshSlots()
	f.persist()
}

func (f *Flow) onSlots(key venue.SlotKey, items []venue.Slot) {
	if key != f.selection.Key() || !f.restoredSlot {
		return
	}
	f.restoredSlot = false
	if f.selection.SelectedSlot != nil && !venue.ContainsSlot(items, *f.selection.SelectedSlot) {
		f.dropRestoredSlot(key, "restored slot is no longer offered")
	}
}

// onSlotsFailed drops a restored slot that no resolved list has confirmed.
func (f *Flow) onSlotsFailed(key venue.SlotKey, _ error) {
	if f.closed || f.completed || key != f.selection.Key() || !f.restoredSlot {
		return
	}
	f.restoredSlot = false
	if f.selection.SelectedSlot != nil {
		f.dropRestoredSlot(key, "restored slot could not be verified")
	}
}

func (f *Flow) dropRestoredSlot(key venue.SlotKey, msg string) {
	f.deps.Logger.Info(msg,
		"flow_id", f.id.String(),
		"date", key.Date,
		"start_time", f.selection.SelectedSlot.StartTime)
	f.selection.SelectedSlot = nil
	f.persist()
}

// refreshSlots re-resolves slots for the current key. A restored slot survives
// until its list arrives.
func (f *Flow) refreshSlots() {
	key := f.selection.Key()
	if !key.IsComplete() {
		f.clearSlot()
		f.resolver.InvalidateSlots()
		return
	}
	if !f.restoredSlot {
		f.clearSlot()
	}
	f.resolver.ResolveSlots(f.venue.ID(), key)
	if f.restoredSlot && f.resolver.Slots().Status == resolver.StatusFailed {
		f.clearSlot()
	}
}

func (f *Flow) clearSlot() {
	f.selection.SelectedSlot = nil
	f.restoredSlot = false
}

func (f *Flow) setStep(to booking.Step) {
	from := f.selection.CurrentStepIndex
	f.selection.CurrentStepIndex = to
	f.persist()
	if f.deps.OnStepChanged != nil {
		f.deps.OnStepChanged(from, to)
	}
}

func (f *Flow) editable() error {
	switch {
	case f.closed:
		return errs.ErrFlowClosed
	case f.completed:
		return errs.Mark(errs.New("booking already submitted"), errs.ErrFlowClosed)
	case f.submitting:
		return errs.ErrSubmitInFlight
	}
	return nil
}

// persist writes the latest selection; skipped once the flow stops owning the draft.
func (f *Flow) persist() {
	if f.closed || f.completed || f.submitting {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.deps.WriteTimeout)
	defer cancel()
	f.deps.Drafts.Save(ctx, f.venue.ID(), f.selection)
}

func (f *Flow) touch() {
	f.lastActive = f.deps.Clock.Now()
}
