package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/client"
	"academy-booking/internal/domain/venue"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/draft"
	"academy-booking/internal/usecase/shared"
)

var (
	ErrMissingClient   = errors.New("acting client has no identifier")
	ErrMissingDuration = errors.New("duration is not selected")
	ErrMissingDate     = errors.New("booking date is not selected")
	ErrMissingSlot     = errors.New("slot is not selected")
	ErrMissingPayment  = errors.New("payment method is not selected")
	ErrMissingEvidence = errors.New("cliq payment requires evidence")
	ErrPlayersOutRange = errors.New("number of players is out of range")
)

// Coordinator performs the final booking call. At most one submission runs
// at a time; a concurrent attempt fails with ErrSubmitInFlight.
type Coordinator struct {
	gateway  shared.BookingGateway
	drafts   *draft.Store
	logger   *slog.Logger
	inFlight atomic.Bool
}

func NewCoordinator(gateway shared.BookingGateway, drafts *draft.Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		gateway: gateway,
		drafts:  drafts,
		logger:  logger,
	}
}

func (c *Coordinator) InFlight() bool {
	return c.inFlight.Load()
}

// Submit sends the booking for acting. On success the draft slot is cleared;
// on any failure the caller's selection is left as it was.
func (c *Coordinator) Submit(ctx context.Context, v *venue.Venue, sel booking.Selection, acting client.Acting) (*shared.Confirmation, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, errs.ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	req, err := BuildRequest(v, sel, acting)
	if err != nil {
		// The gate should have prevented this.
		c.logger.Error("submit precondition failed",
			"venue_id", v.ID(),
			"client", acting.String(),
			"error", err)
		return nil, err
	}

	conf, err := c.gateway.CreateBooking(ctx, req)
	if err != nil {
		c.logger.Warn("booking submission failed", "venue_id", v.ID(), "error", err)
		return nil, errs.Mark(err, errs.ErrSubmitFailed)
	}
	if conf == nil {
		conf = &shared.Confirmation{}
	}

	c.drafts.Clear(ctx)
	c.logger.Info("booking submitted",
		"venue_id", v.ID(),
		"booking_id", conf.BookingID,
		"client", acting.String())
	return conf, nil
}

// BuildRequest checks every submit precondition and assembles the create call.
func BuildRequest(v *venue.Venue, sel booking.Selection, acting client.Acting) (shared.BookingRequest, error) {
	if !acting.HasIdentifier() {
		return shared.BookingRequest{}, precondition(ErrMissingClient)
	}
	if err := checkSelection(v, sel); err != nil {
		return shared.BookingRequest{}, precondition(err)
	}

	req := shared.BookingRequest{
		AcademyProfileID:  v.AcademyProfileID(),
		UserID:            acting.ID(),
		ActivityID:        v.ActivityID(),
		VenueID:           v.ID(),
		DurationID:        sel.DurationID,
		BookingDate:       sel.BookingDate,
		StartTime:         sel.SelectedSlot.StartTime,
		NumberOfPlayers:   sel.Players,
		PaymentType:       sel.PaymentType.String(),
		CashPaymentOnDate: sel.PaymentType == venue.PaymentCash && sel.CashOnDate,
	}
	if sel.PaymentType == venue.PaymentCliq {
		req.CliqImage = sel.CliqEvidence
	}
	return req, nil
}

func checkSelection(v *venue.Venue, sel booking.Selection) error {
	switch {
	case sel.DurationID == "":
		return ErrMissingDuration
	case sel.BookingDate == "":
		return ErrMissingDate
	case !sel.HasSlot():
		return ErrMissingSlot
	case !v.AllowsPlayers(sel.Players):
		return ErrPlayersOutRange
	case sel.PaymentType == "" || !v.Allows(sel.PaymentType):
		return ErrMissingPayment
	case sel.PaymentType == venue.PaymentCliq && !sel.HasEvidence():
		return ErrMissingEvidence
	}
	return nil
}

func precondition(err error) error {
	return errs.Mark(err, errs.ErrSubmitPrecondition)
}
