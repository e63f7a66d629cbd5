package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"academy-booking/internal/domain/booking"
	reqdto "academy-booking/internal/handler/dto/request"
	resdto "academy-booking/internal/handler/dto/response"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/pkg/patch"
	"academy-booking/internal/usecase/flow"
	"academy-booking/internal/usecase/resolver"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errInvalidFlowID   = errors.New("invalid flow id")
	errInvalidRequest  = errors.New("invalid request format")
	errMissingEvidence = errors.New("evidence file is required")
)

type FlowHandler struct {
	manager *flow.Manager
}

func NewFlowHandler(manager *flow.Manager) *FlowHandler {
	return &FlowHandler{
		manager: manager,
	}
}

// @Summary Open booking flow
// @Description Start a booking for a venue, restoring this device's draft when it matches
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param request body reqdto.CreateFlowRequest true "Flow request"
// @Success 201 {object} resdto.FlowResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/flows [post]
func (h *FlowHandler) CreateFlow(c *gin.Context) {
	var req reqdto.CreateFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, errInvalidRequest.Error()), "Invalid request format", nil)
		return
	}

	f, err := h.manager.Open(c.Request.Context(), flow.OpenParams{
		DeviceID: middleware.GetDeviceID(c),
		VenueID:  req.VenueID,
		Mode:     req.GetMode(),
	})
	if err != nil {
		writeFlowError(c, err, nil)
		return
	}

	h.respond(c, http.StatusCreated, f)
}

// @Summary Resume booking flow
// @Description Reopen a booking from the continuation issued at an authentication redirect
// @Tags flows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Device-ID header string true "Client device id"
// @Param request body reqdto.ResumeFlowRequest true "Resume request"
// @Success 201 {object} resdto.FlowResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/flows/resume [post]
func (h *FlowHandler) ResumeFlow(c *gin.Context) {
	var req reqdto.ResumeFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, errInvalidRequest.Error()), "Invalid request format", nil)
		return
	}

	f, err := h.manager.Resume(c.Request.Context(), middleware.GetDeviceID(c), req.Token, req.GetMode())
	if err != nil {
		writeFlowError(c, err, nil)
		return
	}

	h.respond(c, http.StatusCreated, f)
}

// @Summary Get booking flow
// @Tags flows
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Success 200 {object} resdto.FlowResponse
// @Failure 404 {object} httperr.Response
// @Router /api/flows/{id} [get]
func (h *FlowHandler) GetFlow(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, f)
}

// @Summary Close booking flow
// @Description Leave the flow. discard=true also deletes the saved draft
// @Tags flows
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param discard query bool false "Delete the draft"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /api/flows/{id} [delete]
func (h *FlowHandler) DeleteFlow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidFlowID, "Invalid flow ID format", nil)
		return
	}
	discard, _ := strconv.ParseBool(c.Query("discard"))

	if err := h.manager.Close(c.Request.Context(), middleware.GetDeviceID(c), id, discard); err != nil {
		writeFlowError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Select duration
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.SelectDurationRequest true "Duration"
// @Success 200 {object} resdto.FlowResponse
// @Failure 400 {object} httperr.Response
// @Router /api/flows/{id}/duration [put]
func (h *FlowHandler) SelectDuration(c *gin.Context) {
	var req reqdto.SelectDurationRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		return f.SelectDuration(req.DurationID)
	})
}

// @Summary Select booking date
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.SelectDateRequest true "ISO date, empty to clear"
// @Success 200 {object} resdto.FlowResponse
// @Failure 400 {object} httperr.Response
// @Router /api/flows/{id}/date [put]
func (h *FlowHandler) SelectDate(c *gin.Context) {
	var req reqdto.SelectDateRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		return f.SelectDate(req.Date)
	})
}

// @Summary Select slot
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.SelectSlotRequest true "Slot of the loaded list"
// @Success 200 {object} resdto.FlowResponse
// @Failure 422 {object} httperr.Response
// @Router /api/flows/{id}/slot [put]
func (h *FlowHandler) SelectSlot(c *gin.Context) {
	var req reqdto.SelectSlotRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		return f.SelectSlot(req.ToDomain())
	})
}

// @Summary Set number of players
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.SetPlayersRequest true "Players"
// @Success 200 {object} resdto.FlowResponse
// @Router /api/flows/{id}/players [put]
func (h *FlowHandler) SetPlayers(c *gin.Context) {
	var req reqdto.SetPlayersRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		return f.SetPlayers(*req.Players)
	})
}

// @Summary Set payment
// @Description Change the payment method and/or the cash-on-date flag
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.SetPaymentRequest true "Payment"
// @Success 200 {object} resdto.FlowResponse
// @Failure 422 {object} httperr.Response
// @Router /api/flows/{id}/payment [put]
func (h *FlowHandler) SetPayment(c *gin.Context) {
	var req reqdto.SetPaymentRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		if m := req.GetPaymentType(); m != nil {
			if err := f.SetPaymentType(*m); err != nil {
				return err
			}
		}
		current := f.Selection().CashOnDate
		if patch.Changed(req.CashOnDate, current) {
			return f.SetCashOnDate(patch.Coalesce(req.CashOnDate, current))
		}
		return nil
	})
}

// @Summary Attach CliQ evidence
// @Tags flows
// @Accept multipart/form-data
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param file formData file true "Transfer screenshot"
// @Success 200 {object} resdto.FlowResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Router /api/flows/{id}/evidence [put]
func (h *FlowHandler) AttachEvidence(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, errMissingEvidence.Error()), "Evidence file is required", nil)
		return
	}
	if header.Size > booking.MaxEvidenceBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, booking.ErrEvidenceTooLarge, "Evidence file is too large", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Evidence file could not be read", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, booking.MaxEvidenceBytes+1))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Evidence file could not be read", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	att, err := booking.NewAttachment(header.Filename, contentType, data)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, booking.ErrEvidenceTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httperr.AbortWithError(c, status, err, "Invalid evidence file", nil)
		return
	}

	if err := f.AttachEvidence(att); err != nil {
		writeFlowError(c, err, h.snapshot(c, f))
		return
	}
	h.respond(c, http.StatusOK, f)
}

// @Summary Remove CliQ evidence
// @Tags flows
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Success 200 {object} resdto.FlowResponse
// @Router /api/flows/{id}/evidence [delete]
func (h *FlowHandler) RemoveEvidence(c *gin.Context) {
	h.mutate(c, func(f *flow.Flow) error {
		return f.RemoveEvidence()
	})
}

// @Summary Next step
// @Description Advance when the current step's requirements are met
// @Tags flows
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Success 200 {object} resdto.FlowResponse
// @Failure 409 {object} httperr.Response
// @Router /api/flows/{id}/next [post]
func (h *FlowHandler) Next(c *gin.Context) {
	h.mutate(c, func(f *flow.Flow) error {
		return f.Next()
	})
}

// @Summary Previous step
// @Tags flows
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Success 200 {object} resdto.FlowResponse
// @Failure 409 {object} httperr.Response
// @Router /api/flows/{id}/back [post]
func (h *FlowHandler) Back(c *gin.Context) {
	h.mutate(c, func(f *flow.Flow) error {
		return f.Back()
	})
}

// @Summary Retry a failed lookup
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.RetryRequest true "Resource"
// @Success 200 {object} resdto.FlowResponse
// @Router /api/flows/{id}/retry [post]
func (h *FlowHandler) Retry(c *gin.Context) {
	var req reqdto.RetryRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		return f.Retry(resolver.Resource(req.Resource))
	})
}

// @Summary Submit booking
// @Description Submit from the review step. Without a client the outcome asks for guest details or authentication
// @Tags flows
// @Produce json
// @Security BearerAuth
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Success 200 {object} resdto.FlowResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/flows/{id}/submit [post]
func (h *FlowHandler) Submit(c *gin.Context) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}

	if _, err := f.Submit(c.Request.Context(), middleware.GetSessionClient(c)); err != nil {
		writeFlowError(c, err, h.snapshot(c, f))
		return
	}
	h.respond(c, http.StatusOK, f)
}

// @Summary Guest checkout
// @Description Quick-register the guest and submit the booking for them
// @Tags flows
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Client device id"
// @Param id path string true "Flow ID"
// @Param request body reqdto.GuestCheckoutRequest true "Guest details"
// @Success 200 {object} resdto.FlowResponse
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/flows/{id}/guest [post]
func (h *FlowHandler) GuestCheckout(c *gin.Context) {
	var req reqdto.GuestCheckoutRequest
	h.mutateJSON(c, &req, func(f *flow.Flow) error {
		_, err := f.SubmitAsGuest(c.Request.Context(), middleware.GetSessionClient(c), req.ToDomain())
		return err
	})
}

func (h *FlowHandler) lookup(c *gin.Context) (*flow.Flow, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidFlowID, "Invalid flow ID format", nil)
		return nil, false
	}

	f, err := h.manager.Get(middleware.GetDeviceID(c), id)
	if err != nil {
		writeFlowError(c, err, nil)
		return nil, false
	}
	return f, true
}

func (h *FlowHandler) mutate(c *gin.Context, fn func(f *flow.Flow) error) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := fn(f); err != nil {
		writeFlowError(c, err, h.snapshot(c, f))
		return
	}
	h.respond(c, http.StatusOK, f)
}

func (h *FlowHandler) mutateJSON(c *gin.Context, req any, fn func(f *flow.Flow) error) {
	f, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, errInvalidRequest.Error()), "Invalid request format", nil)
		return
	}
	if err := fn(f); err != nil {
		writeFlowError(c, err, h.snapshot(c, f))
		return
	}
	h.respond(c, http.StatusOK, f)
}

func (h *FlowHandler) snapshot(c *gin.Context, f *flow.Flow) *resdto.FlowResponse {
	return resdto.FromSnapshot(f.Snapshot(c.Request.Context(), middleware.GetSessionClient(c)))
}

func (h *FlowHandler) respond(c *gin.Context, status int, f *flow.Flow) {
	c.JSON(status, h.snapshot(c, f))
}
