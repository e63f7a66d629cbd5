//go:build unit

package flow_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/infra/kvstore"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/draft"
	"academy-booking/internal/usecase/flow"
	"academy-booking/internal/usecase/identity"
	"academy-booking/internal/usecase/resolver"
	"academy-booking/internal/usecase/shared"
	"academy-booking/internal/usecase/submission"
	"academy-booking/tests/common/builder"
	sharedmock "academy-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	deviceID    = "device-0001"
	bookingDate = "2026-10-20"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type FlowTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockCatalog    *sharedmock.MockCatalogGateway
	mockRegistrar  *sharedmock.MockRegistrationGateway
	mockBookings   *sharedmock.MockBookingGateway
	mockRedirector *sharedmock.MockAuthRedirector
	kv             shared.KVStore
	clock          *clock.MockClock
	venue          *venue.Venue
	drafts         *draft.Store
	flows          []*flow.Flow

	stepMu sync.Mutex
	steps  []booking.Step
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func (s *FlowTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = sharedmock.NewMockCatalogGateway(s.mockCtrl)
	s.mockRegistrar = sharedmock.NewMockRegistrationGateway(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingGateway(s.mockCtrl)
	s.mockRedirector = sharedmock.NewMockAuthRedirector(s.mockCtrl)
	s.kv = kvstore.NewMemory().Scope(deviceID)
	s.clock = clock.NewMockClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	s.venue = builder.NewVenueBuilder().MustBuild(s.T())
	s.drafts = draft.NewStore(s.kv, s.clock, discard)
	s.flows = nil
	s.steps = nil
}

func (s *FlowTestSuite) TearDownTest() {
	for _, f := range s.flows {
		f.Close(context.Background(), false)
		f.Wait()
	}
}

func (s *FlowTestSuite) newFlow(mode identity.Mode, redirect bool) *flow.Flow {
	var redirector shared.AuthRedirector
	if redirect {
		redirector = s.mockRedirector
	}
	onStep := func(_, to booking.Step) {
		s.stepMu.Lock()
		s.steps = append(s.steps, to)
		s.stepMu.Unlock()
	}
	f := flow.New(uuid.New(), deviceID, s.venue, mode, flow.Deps{
		Catalog:       s.mockCatalog,
		Drafts:        s.drafts,
		Identity:      identity.NewResolver(s.kv, s.mockRegistrar, s.clock, discard),
		Submitter:     submission.NewCoordinator(s.mockBookings, s.drafts, discard),
		Redirector:    redirector,
		Clock:         s.clock,
		Logger:        discard,
		OnStepChanged: onStep,
	})
	s.flows = append(s.flows, f)
	return f
}

// serveCatalog answers every lookup with the default durations and slots.
func (s *FlowTestSuite) serveCatalog() {
	s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil).AnyTimes()
	s.mockCatalog.EXPECT().FetchSlots(gomock.Any(), s.venue.ID(), gomock.Any(), gomock.Any()).Return(builder.Slots(), nil).AnyTimes()
}

func (s *FlowTestSuite) snapshot(f *flow.Flow) flow.Snapshot {
	return f.Snapshot(context.Background(), client.NoClient())
}

func (s *FlowTestSuite) start(f *flow.Flow) {
	f.Start(context.Background())
	s.Require().Eventually(func() bool {
		return s.snapshot(f).Durations.Status != resolver.StatusLoading
	}, 2*time.Second, 5*time.Millisecond, "durations never settled")
}

func (s *FlowTestSuite) waitSlots(f *flow.Flow) {
	s.Require().Eventually(func() bool {
		snap := s.snapshot(f)
		return snap.Slots.Status != resolver.StatusLoading && snap.Slots.Key == snap.Selection.Key()
	}, 2*time.Second, 5*time.Millisecond, "slots never settled")
}

func (s *FlowTestSuite) fillSchedule(f *flow.Flow) {
	s.Require().NoError(f.SelectDate(bookingDate))
	s.waitSlots(f)
	s.Require().NoError(f.SelectSlot(builder.Slots()[0]))
}

func (s *FlowTestSuite) toReview(f *flow.Flow) {
	s.start(f)
	s.fillSchedule(f)
	for i := 0; i < 3; i++ {
		s.Require().NoError(f.Next())
	}
	s.Require().Equal(booking.StepReview, s.snapshot(f).Step)
}

func (s *FlowTestSuite) TestStartPicksDefaultDuration() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)

	snap := s.snapshot(f)
	s.Equal(booking.StepSchedule, snap.Step)
	s.Equal("d60", snap.Selection.DurationID)
	s.Equal(2, snap.Selection.Players)
	s.Equal(venue.PaymentCash, snap.Selection.PaymentType)
	s.Equal(resolver.StatusIdle, snap.Slots.Status, "no date yet, no slot lookup")
}

func (s *FlowTestSuite) TestScheduleGate() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)

	s.Run("blocked without a slot", func() {
		s.Require().NoError(f.SelectDate(bookingDate))
		s.waitSlots(f)
		s.True(errs.Is(f.Next(), errs.ErrValidationBlocked))
		s.False(s.snapshot(f).Gates.Schedule)
	})

	s.Run("slot outside the list is refused", func() {
		err := f.SelectSlot(venue.Slot{StartTime: "06:00", EndTime: "07:00"})
		s.True(errs.Is(err, errs.ErrSlotUnavailable))
	})

	s.Run("advances once complete", func() {
		s.Require().NoError(f.SelectSlot(builder.Slots()[1]))
		s.Require().NoError(f.Next())
		s.Equal(booking.StepPlayers, s.snapshot(f).Step)

		s.stepMu.Lock()
		s.Equal([]booking.Step{booking.StepPlayers}, s.steps)
		s.stepMu.Unlock()
	})

	s.Run("invalid date is rejected", func() {
		s.True(errs.Is(f.SelectDate("20/10/2026"), errs.ErrInvalidSelection))
	})

	s.Run("unknown duration is rejected", func() {
		s.True(errs.Is(f.SelectDuration("d45"), errs.ErrInvalidSelection))
	})
}

func (s *FlowTestSuite) TestPlayersGate() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.fillSchedule(f)
	s.Require().NoError(f.Next())

	s.Require().NoError(f.SetPlayers(1))
	s.True(errs.Is(f.Next(), errs.ErrValidationBlocked))
	s.False(s.snapshot(f).Gates.Players)

	s.Require().NoError(f.SetPlayers(2))
	s.Require().NoError(f.Next())
	s.Equal(booking.StepPayment, s.snapshot(f).Step)
}

func (s *FlowTestSuite) TestChangingDurationClearsSlot() {
	s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil)
	s.mockCatalog.EXPECT().FetchSlots(gomock.Any(), s.venue.ID(), bookingDate, 60).Return(builder.Slots(), nil)
	long := []venue.Slot{{StartTime: "17:00", EndTime: "18:30"}}
	s.mockCatalog.EXPECT().FetchSlots(gomock.Any(), s.venue.ID(), bookingDate, 90).Return(long, nil)

	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.fillSchedule(f)
	s.Require().True(s.snapshot(f).Selection.HasSlot())

	s.Require().NoError(f.SelectDuration("d90"))
	s.False(s.snapshot(f).Selection.HasSlot(), "slot is cleared as soon as the key changes")

	s.waitSlots(f)
	snap := s.snapshot(f)
	s.Equal(long, snap.Slots.Items)
	s.Equal(venue.SlotKey{Date: bookingDate, DurationID: "d90"}, snap.Slots.Key)
}

func (s *FlowTestSuite) TestClearingDateDropsSlotList() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.fillSchedule(f)

	s.Require().NoError(f.SelectDate(""))

	snap := s.snapshot(f)
	s.Empty(snap.Selection.BookingDate)
	s.False(snap.Selection.HasSlot())
	s.Equal(resolver.StatusIdle, snap.Slots.Status)
}

func (s *FlowTestSuite) TestPaymentRules() {
	s.serveCatalog()

	s.Run("cliq refused by cash only venue", func() {
		s.drafts.Clear(context.Background())
		s.venue = builder.NewVenueBuilder().CashOnly().MustBuild(s.T())
		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)

		s.True(errs.Is(f.SetPaymentType(venue.PaymentCliq), errs.ErrPaymentNotAllowed))
		s.True(errs.Is(f.AttachEvidence(builder.Evidence()), errs.ErrPaymentNotAllowed))
		s.Require().NoError(f.SetCashOnDate(true))
		s.True(s.snapshot(f).Selection.CashOnDate)
	})

	s.Run("switching away from cliq drops evidence", func() {
		s.drafts.Clear(context.Background())
		s.venue = builder.NewVenueBuilder().MustBuild(s.T())
		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)

		s.Require().NoError(f.SetPaymentType(venue.PaymentCliq))
		s.True(errs.Is(f.SetCashOnDate(true), errs.ErrPaymentNotAllowed))
		s.Require().NoError(f.AttachEvidence(builder.Evidence()))
		s.True(s.snapshot(f).Selection.HasEvidence())

		s.Require().NoError(f.SetPaymentType(venue.PaymentCash))
		s.False(s.snapshot(f).Selection.HasEvidence())
	})

	s.Run("cliq payment gate needs evidence", func() {
		s.drafts.Clear(context.Background())
		s.venue = builder.NewVenueBuilder().MustBuild(s.T())
		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)
		s.fillSchedule(f)
		s.Require().NoError(f.Next())
		s.Require().NoError(f.Next())

		s.Require().NoError(f.SetPaymentType(venue.PaymentCliq))
		s.True(errs.Is(f.Next(), errs.ErrValidationBlocked))

		s.Require().NoError(f.AttachEvidence(builder.Evidence()))
		s.Require().NoError(f.Next())

		s.Require().NoError(f.RemoveEvidence())
		s.False(s.snapshot(f).Gates.Payment)
	})
}

func (s *FlowTestSuite) TestDraftIsPersisted() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.fillSchedule(f)
	s.Require().NoError(f.SetPlayers(3))

	d, ok := s.drafts.Load(context.Background(), s.venue.ID())
	s.Require().True(ok)
	s.Equal(3, d.Selection.Players)
	s.Equal(bookingDate, d.Selection.BookingDate)
	s.True(d.Selection.HasSlot())
}

func (s *FlowTestSuite) TestRestoreDraft() {
	s.serveCatalog()

	s.Run("restores selection and keeps an offered slot", func() {
		sel := builder.NewSelectionBuilder().With(func(b *builder.SelectionBuilder) {
			b.Players = 3
			b.Slot = &builder.Slots()[1]
		}).AtStep(booking.StepPayment).Build()
		s.drafts.Save(context.Background(), s.venue.ID(), sel)

		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)
		s.waitSlots(f)

		snap := s.snapshot(f)
		s.Equal(booking.StepPayment, snap.Step)
		s.Equal(3, snap.Selection.Players)
		s.Require().True(snap.Selection.HasSlot())
		s.Equal(builder.Slots()[1], *snap.Selection.SelectedSlot)
	})

	s.Run("drops a restored slot that is no longer offered", func() {
		sel := builder.NewSelectionBuilder().With(func(b *builder.SelectionBuilder) {
			b.Slot = &venue.Slot{StartTime: "06:00", EndTime: "07:00"}
		}).Build()
		s.drafts.Save(context.Background(), s.venue.ID(), sel)

		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)
		s.waitSlots(f)

		s.False(s.snapshot(f).Selection.HasSlot())
	})

	s.Run("ignores a draft of another venue", func() {
		s.drafts.Save(context.Background(), "venue-9", builder.NewSelectionBuilder().Build())

		f := s.newFlow(identity.ModeGuestCheckout, true)
		s.start(f)

		snap := s.snapshot(f)
		s.Equal(booking.StepSchedule, snap.Step)
		s.Empty(snap.Selection.BookingDate)
	})
}

// restoreUnofferedSlot saves a draft whose slot no list has confirmed yet.
func (s *FlowTestSuite) restoreUnofferedSlot() {
	sel := builder.NewSelectionBuilder().With(func(b *builder.SelectionBuilder) {
		b.Slot = &venue.Slot{StartTime: "06:00", EndTime: "07:00"}
	}).Build()
	s.drafts.Save(context.Background(), s.venue.ID(), sel)
}

func (s *FlowTestSuite) TestRestoredSlotDroppedWhenSlotLookupFails() {
	s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil).AnyTimes()
	s.mockCatalog.EXPECT().FetchSlots(gomock.Any(), s.venue.ID(), bookingDate, 60).Return(nil, errs.New("upstream down"))
	s.restoreUnofferedSlot()

	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.waitSlots(f)

	snap := s.snapshot(f)
	s.Equal(resolver.StatusFailed, snap.Slots.Status)
	s.False(snap.Selection.HasSlot())
	s.False(snap.Gates.Schedule)

	d, ok := s.drafts.Load(context.Background(), s.venue.ID())
	s.Require().True(ok)
	s.False(d.Selection.HasSlot(), "the unverified slot is not kept in the draft")

	_, err := f.Submit(context.Background(), client.RegisteredClient("42"))
	s.True(errs.Is(err, errs.ErrValidationBlocked))
}

func (s *FlowTestSuite) TestRestoredSlotDroppedWhenDurationLookupFails() {
	s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(nil, errs.New("upstream down"))
	s.restoreUnofferedSlot()

	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)

	snap := s.snapshot(f)
	s.Equal(resolver.StatusFailed, snap.Durations.Status)
	s.False(snap.Selection.HasSlot())
	s.False(snap.Gates.Schedule)
}

func (s *FlowTestSuite) TestSubmitIgnoresCallerCancellation() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile := builder.NewGuestBuilder().BuildDomain()
	s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), profile).
		DoAndReturn(func(gctx context.Context, _ client.GuestProfile) (string, error) {
			cancel()
			s.NoError(gctx.Err(), "registration keeps running after the caller goes away")
			return "guest-5", nil
		})
	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(gctx context.Context, _ shared.BookingRequest) (*shared.Confirmation, error) {
			s.NoError(gctx.Err(), "booking create is not cancelled with the request")
			return &shared.Confirmation{BookingID: "b-9"}, nil
		})

	out, err := f.SubmitAsGuest(ctx, client.NoClient(), profile)
	s.Require().NoError(err)
	s.Equal(flow.OutcomeConfirmed, out.Kind)
	s.Error(ctx.Err())
}

func (s *FlowTestSuite) TestSubmitRegisteredClient() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeAuthRequired, false)
	s.toReview(f)

	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.BookingRequest) (*shared.Confirmation, error) {
			s.Equal("42", req.UserID)
			return &shared.Confirmation{BookingID: "b-77"}, nil
		})

	out, err := f.Submit(context.Background(), client.RegisteredClient("42"))
	s.Require().NoError(err)
	s.Equal(flow.OutcomeConfirmed, out.Kind)
	s.Equal("b-77", out.Confirmation.BookingID)

	snap := s.snapshot(f)
	s.True(snap.Completed)
	s.True(errs.Is(f.SetPlayers(3), errs.ErrFlowClosed))

	_, ok := s.drafts.Load(context.Background(), s.venue.ID())
	s.False(ok, "draft is cleared after a confirmed booking")
}

func (s *FlowTestSuite) TestSubmitOnlyFromReview() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.fillSchedule(f)

	_, err := f.Submit(context.Background(), client.RegisteredClient("42"))
	s.True(errs.Is(err, errs.ErrValidationBlocked))
}

func (s *FlowTestSuite) TestSubmitWithoutClientAsksForGuestDetails() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	out, err := f.Submit(context.Background(), client.NoClient())
	s.Require().NoError(err)
	s.Equal(flow.OutcomeGuestDetailsRequired, out.Kind)
	s.False(s.snapshot(f).Completed)
}

func (s *FlowTestSuite) TestSubmitAsGuest() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	profile := builder.NewGuestBuilder().BuildDomain()
	s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), profile).Return("guest-5", nil)
	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.BookingRequest) (*shared.Confirmation, error) {
			s.Equal("guest-5", req.UserID)
			return &shared.Confirmation{BookingID: "b-1"}, nil
		})

	out, err := f.SubmitAsGuest(context.Background(), client.NoClient(), profile)
	s.Require().NoError(err)
	s.Equal(flow.OutcomeConfirmed, out.Kind)
}

func (s *FlowTestSuite) TestGuestConflictRedirectsWithDraft() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	profile := builder.NewGuestBuilder().BuildDomain()
	s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), profile).
		Return("", &shared.RegistrationRejection{Code: "phone_already_registered", Message: "Phone already registered"})
	s.mockRedirector.EXPECT().RequireAuthentication(gomock.Any(), deviceID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, d booking.Draft) (*shared.Continuation, error) {
			s.Equal(s.venue.ID(), d.VenueID)
			s.Equal(booking.StepReview, d.Selection.CurrentStepIndex)
			return &shared.Continuation{Token: "resume-token"}, nil
		})

	out, err := f.SubmitAsGuest(context.Background(), client.NoClient(), profile)
	s.Require().NoError(err)
	s.Equal(flow.OutcomeAuthRequired, out.Kind)
	s.Equal("guest_conflict", out.Reason)
	s.Equal("resume-token", out.Continuation.Token)

	d, ok := s.drafts.Load(context.Background(), s.venue.ID())
	s.Require().True(ok, "draft survives the redirect")
	s.Equal(booking.StepReview, d.Selection.CurrentStepIndex)
}

func (s *FlowTestSuite) TestGuestConflictByMessageOnly() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	profile := builder.NewGuestBuilder().BuildDomain()
	s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), profile).
		Return("", &shared.RegistrationRejection{Message: "User already registered with this phone"})
	s.mockRedirector.EXPECT().RequireAuthentication(gomock.Any(), deviceID, gomock.Any()).
		Return(&shared.Continuation{Token: "resume-token"}, nil)

	out, err := f.SubmitAsGuest(context.Background(), client.NoClient(), profile)
	s.Require().NoError(err)
	s.Equal(flow.OutcomeAuthRequired, out.Kind)
	s.Equal("guest_conflict", out.Reason)
	s.False(s.snapshot(f).Submitting)
}

func (s *FlowTestSuite) TestGuestRegistrationFailure() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.toReview(f)

	profile := builder.NewGuestBuilder().BuildDomain()
	s.mockRegistrar.EXPECT().QuickRegister(gomock.Any(), profile).Return("", errs.New("timeout"))

	_, err := f.SubmitAsGuest(context.Background(), client.NoClient(), profile)
	s.True(errs.Is(err, errs.ErrGuestRegistration))

	snap := s.snapshot(f)
	s.False(snap.Submitting)
	s.Error(snap.LastError)
	s.NoError(f.SetPlayers(3), "flow stays editable")
}

func (s *FlowTestSuite) TestAuthRequiredMode() {
	s.serveCatalog()

	s.Run("redirects without a session", func() {
		f := s.newFlow(identity.ModeAuthRequired, true)
		s.toReview(f)
		s.mockRedirector.EXPECT().RequireAuthentication(gomock.Any(), deviceID, gomock.Any()).
			Return(&shared.Continuation{Token: "t"}, nil)

		out, err := f.Submit(context.Background(), client.NoClient())
		s.Require().NoError(err)
		s.Equal(flow.OutcomeAuthRequired, out.Kind)
		s.Equal("auth_required", out.Reason)
	})

	s.Run("blocked without a redirect path", func() {
		s.drafts.Clear(context.Background())
		f := s.newFlow(identity.ModeAuthRequired, false)
		s.toReview(f)

		s.Equal(booking.IdentityBlocked, s.snapshot(f).Identity)
		s.False(s.snapshot(f).Gates.Submit)

		_, err := f.Submit(context.Background(), client.NoClient())
		s.True(errs.Is(err, errs.ErrValidationBlocked))
	})
}

func (s *FlowTestSuite) TestSubmitFailureKeepsSelection() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeAuthRequired, false)
	s.toReview(f)
	before := f.Selection()

	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errs.New("bad gateway"))
	_, err := f.Submit(context.Background(), client.RegisteredClient("42"))
	s.True(errs.Is(err, errs.ErrSubmitFailed))

	snap := s.snapshot(f)
	s.False(snap.Completed)
	s.Equal(before, snap.Selection)
	s.Error(snap.LastError)

	s.mockBookings.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(&shared.Confirmation{BookingID: "b-2"}, nil)
	out, err := f.Submit(context.Background(), client.RegisteredClient("42"))
	s.Require().NoError(err)
	s.Equal("b-2", out.Confirmation.BookingID)
}

func (s *FlowTestSuite) TestBack() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)

	s.True(errs.Is(f.Back(), errs.ErrValidationBlocked))

	s.fillSchedule(f)
	s.Require().NoError(f.Next())
	s.Require().NoError(f.Back())
	s.Equal(booking.StepSchedule, s.snapshot(f).Step)
}

func (s *FlowTestSuite) TestRetry() {
	gomock.InOrder(
		s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(nil, errs.New("unreachable")),
		s.mockCatalog.EXPECT().FetchDurations(gomock.Any(), s.venue.ID()).Return(builder.Durations(), nil),
	)

	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.Equal(resolver.StatusFailed, s.snapshot(f).Durations.Status)

	s.True(errs.Is(f.Retry(resolver.ResourceSlots), errs.ErrInvalidSelection), "slots did not fail")

	s.Require().NoError(f.Retry(resolver.ResourceDurations))
	s.Require().Eventually(func() bool {
		return s.snapshot(f).Durations.Status == resolver.StatusLoaded
	}, 2*time.Second, 5*time.Millisecond)
	s.Equal("d60", s.snapshot(f).Selection.DurationID)
}

func (s *FlowTestSuite) TestCloseWithDiscard() {
	s.serveCatalog()
	f := s.newFlow(identity.ModeGuestCheckout, true)
	s.start(f)
	s.Require().NoError(f.SetPlayers(3))

	f.Close(context.Background(), true)

	s.True(f.Closed())
	s.True(errs.Is(f.SetPlayers(2), errs.ErrFlowClosed))
	_, ok := s.drafts.Load(context.Background(), s.venue.ID())
	s.False(ok)
}
