package api

import (
	"net/http"

	"academy-booking/internal/domain/client"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// writeFlowError maps the booking error taxonomy onto HTTP responses.
func writeFlowError(c *gin.Context, err error, detail any) {
	switch {
	case errs.Is(err, errs.ErrFlowNotFound):
		httperr.AbortWithCode(c, http.StatusNotFound, "flow_not_found", err, "Booking flow not found", nil)
	case errs.Is(err, errs.ErrFlowClosed):
		httperr.AbortWithCode(c, http.StatusGone, "flow_closed", err, "Booking flow is closed", nil)
	case errs.Is(err, errs.ErrVenueUnavailable):
		httperr.AbortWithCode(c, http.StatusBadGateway, "venue_unavailable", err, "Venue could not be loaded", nil)
	case errs.Is(err, errs.ErrInvalidResume):
		httperr.AbortWithCode(c, http.StatusUnauthorized, "invalid_resume_token", err, "Invalid or expired resume token", nil)
	case errs.Is(err, errs.ErrSubmitInFlight):
		httperr.AbortWithCode(c, http.StatusConflict, "submit_in_flight", err, "Booking is already being submitted", detail)
	case errs.Is(err, errs.ErrValidationBlocked):
		httperr.AbortWithCode(c, http.StatusConflict, "step_blocked", err, "Step requirements are not met", detail)
	case errs.Is(err, errs.ErrSlotUnavailable):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "slot_unavailable", err, "Slot is not available", detail)
	case errs.Is(err, errs.ErrPaymentNotAllowed):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "payment_not_allowed", err, "Payment option is not allowed for this venue", detail)
	case errs.Is(err, errs.ErrInvalidSelection):
		httperr.AbortWithCode(c, http.StatusBadRequest, "invalid_selection", err, "Invalid selection", detail)
	case errs.Is(err, errs.ErrInvalidGuestProfile):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "invalid_guest_details", err, guestProfileMessage(err), nil)
	case errs.Is(err, errs.ErrGuestRegistration):
		httperr.AbortWithCode(c, http.StatusBadGateway, "guest_registration_failed", err, "Guest registration failed, please try again", detail)
	case errs.Is(err, errs.ErrSubmitPrecondition):
		httperr.AbortWithCode(c, http.StatusInternalServerError, "submit_precondition_failed", err, "Booking could not be submitted", nil)
	case errs.Is(err, errs.ErrSubmitFailed) && infra.IsKind(err, infra.KindRejected):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, "booking_rejected", err, "Booking was rejected by the academy", detail)
	case errs.Is(err, errs.ErrSubmitFailed):
		httperr.AbortWithCode(c, http.StatusBadGateway, "booking_failed", err, "Booking could not be submitted, please try again", detail)
	default:
		httperr.AbortWithCode(c, http.StatusInternalServerError, "internal_error", err, "Internal server error", nil)
	}
}

func guestProfileMessage(err error) string {
	switch {
	case errs.Is(err, client.ErrEmptyFirstName):
		return "First name is required"
	case errs.Is(err, client.ErrEmptyLastName):
		return "Last name is required"
	case errs.Is(err, client.ErrInvalidPhone):
		return "Phone number is invalid"
	default:
		return "Invalid guest details"
	}
}
